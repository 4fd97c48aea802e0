package app

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/portfolio/admin"
)

func init() { //nolint: gochecknoinits
	for _, c := range []*cobra.Command{projectAddCmd, projectUpdateCmd} {
		c.Flags().StringVar(&projectIn.Title, "title", "", "Project title")
		c.Flags().StringVar(&projectIn.Description, "description", "", "Project description")
		c.Flags().StringSliceVar(&projectIn.Technologies, "tech", nil, "Technologies, comma separated")
		c.Flags().StringVar(&projectIn.GitHubURL, "github", "", "Repository URL")
		c.Flags().StringVar(&projectIn.LiveURL, "live", "", "Demo URL")
		c.Flags().StringVar(&projectIn.ImageURL, "image", "", "Image key")
		c.Flags().BoolVar(&projectIn.Featured, "featured", false, "Show the project as featured")
	}

	skillAddCmd.Flags().StringVar(&skillIn.Name, "name", "", "Skill name")
	skillAddCmd.Flags().IntVar(&skillIn.Level, "level", 0, "Level from 1 to 100")
	skillAddCmd.Flags().StringVar(&skillIn.Category, "category", "", "Skill category")
	skillDeleteCmd.Flags().BoolVar(&skillByIndex, "index", false, "Treat the argument as the position in the skill list")

	personalCmd.Flags().StringVar(&personalIn.Name, "name", "", "Full name")
	personalCmd.Flags().StringVar(&personalIn.Title, "title", "", "Job title")
	personalCmd.Flags().StringVar(&personalIn.Description, "description", "", "Short bio")
	personalCmd.Flags().StringVar(&personalIn.Email, "email", "", "Email address")
	personalCmd.Flags().StringVar(&personalIn.Phone, "phone", "", "Phone number")
	personalCmd.Flags().StringVar(&personalIn.Location, "location", "", "Location")
	personalCmd.Flags().StringVar(&personalIn.GitHub, "github", "", "GitHub profile URL")
	personalCmd.Flags().StringVar(&personalIn.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	personalCmd.Flags().StringVar(&personalIn.Avatar, "avatar", "", "Avatar initials")

	themeCmd.Flags().StringVar(&themeIn.PrimaryColor, "color", "", "Primary color")
	themeCmd.Flags().BoolVar(&themeIn.DarkMode, "dark-mode", false, "Dark mode")
	themeCmd.Flags().BoolVar(&themeIn.Animations, "animations", false, "Animations")
	themeCmd.Flags().BoolVar(&themeIn.ShowFloatingElements, "floating", false, "Floating elements")

	projectCmd.AddCommand(projectAddCmd, projectUpdateCmd, projectDeleteCmd)
	skillCmd.AddCommand(skillAddCmd, skillDeleteCmd)
	adminCmd.AddCommand(projectCmd, skillCmd, personalCmd, themeCmd)
}

var (
	projectIn    admin.ProjectInput
	skillIn      admin.SkillInput
	skillByIndex bool
	personalIn   portfolio.PersonalInfo
	themeIn      portfolio.ThemeSettings

	projectCmd = &cobra.Command{
		Use:   "project",
		Short: "Add, update or delete projects",
	}

	projectAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a project and save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				_, n, err := w.editor.AddProject(projectIn)

				return w.apply(cmd, n, err)
			})
		},
	}

	projectUpdateCmd = &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a project and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				p, ok := w.editor.Snapshot().ProjectByID(args[0])
				if !ok {
					return admin.ErrProjectNotFound
				}

				mergeProject(cmd, &p)
				n, err := w.editor.UpdateProject(p)

				return w.apply(cmd, n, err)
			})
		},
	}

	projectDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				n, err := w.editor.DeleteProject(args[0])

				return w.apply(cmd, n, err)
			})
		},
	}

	skillCmd = &cobra.Command{
		Use:   "skill",
		Short: "Add or delete skills",
	}

	skillAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Add a skill and save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				_, n, err := w.editor.AddSkill(skillIn)

				return w.apply(cmd, n, err)
			})
		},
	}

	skillDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a skill by id, or by position with --index, and save",
		Long: `Delete a skill by id, or by position with --index, and save.

Skills that the web service stores without an id get a fresh one each time
the portfolio is loaded. Ids printed by "admin pull --json" are kept in the
local cache but the web service only learns them on the next save, so use
--index for such skills until the portfolio has been saved once.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int

			if skillByIndex {
				i, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}

				index = i
			}

			return withWorkspace(cmd, func(w *workspace) error {
				var (
					n   admin.Notice
					err error
				)

				if skillByIndex {
					n, err = w.editor.DeleteSkillAt(index)
				} else {
					n, err = w.editor.DeleteSkill(args[0])
				}

				return w.apply(cmd, n, err)
			})
		},
	}

	personalCmd = &cobra.Command{
		Use:   "personal",
		Short: "Change the given personal info fields and save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				info := w.editor.Snapshot().PersonalInfo
				mergePersonal(cmd, &info)

				return w.apply(cmd, w.editor.SetPersonalInfo(info), nil)
			})
		},
	}

	themeCmd = &cobra.Command{
		Use:   "theme",
		Short: "Change the given theme settings and save",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWorkspace(cmd, func(w *workspace) error {
				theme := w.editor.Snapshot().ThemeSettings
				mergeTheme(cmd, &theme)

				return w.apply(cmd, w.editor.SetTheme(theme), nil)
			})
		},
	}
)

// apply reports an edit and saves when it succeeded.
func (w *workspace) apply(cmd *cobra.Command, n admin.Notice, err error) error {
	printNotice(cmd.OutOrStdout(), n)

	if err != nil {
		return err
	}

	return w.save(cmd)
}

// mergeProject copies the flags given on the command line into p.
func mergeProject(cmd *cobra.Command, p *portfolio.Project) {
	f := cmd.Flags()

	if f.Changed("title") {
		p.Title = projectIn.Title
	}

	if f.Changed("description") {
		p.Description = projectIn.Description
	}

	if f.Changed("tech") {
		p.Technologies = projectIn.Technologies
	}

	if f.Changed("github") {
		p.GitHubURL = projectIn.GitHubURL
	}

	if f.Changed("live") {
		p.LiveURL = projectIn.LiveURL
	}

	if f.Changed("image") {
		p.ImageURL = projectIn.ImageURL
	}

	if f.Changed("featured") {
		p.Featured = projectIn.Featured
	}
}

func mergePersonal(cmd *cobra.Command, info *portfolio.PersonalInfo) {
	f := cmd.Flags()

	for name, field := range map[string]struct{ dst, src *string }{
		"name":        {&info.Name, &personalIn.Name},
		"title":       {&info.Title, &personalIn.Title},
		"description": {&info.Description, &personalIn.Description},
		"email":       {&info.Email, &personalIn.Email},
		"phone":       {&info.Phone, &personalIn.Phone},
		"location":    {&info.Location, &personalIn.Location},
		"github":      {&info.GitHub, &personalIn.GitHub},
		"linkedin":    {&info.LinkedIn, &personalIn.LinkedIn},
		"avatar":      {&info.Avatar, &personalIn.Avatar},
	} {
		if f.Changed(name) {
			*field.dst = *field.src
		}
	}
}

func mergeTheme(cmd *cobra.Command, theme *portfolio.ThemeSettings) {
	f := cmd.Flags()

	if f.Changed("color") {
		theme.PrimaryColor = themeIn.PrimaryColor
	}

	if f.Changed("dark-mode") {
		theme.DarkMode = themeIn.DarkMode
	}

	if f.Changed("animations") {
		theme.Animations = themeIn.Animations
	}

	if f.Changed("floating") {
		theme.ShowFloatingElements = themeIn.ShowFloatingElements
	}
}
