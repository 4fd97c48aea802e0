// Package cv renders a portfolio snapshot as a plain text CV.
package cv

import (
	"bytes"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/devportfolio/devportfolio/internal/portfolio"
)

const (
	fallbackName    = "Alex Kumar"
	fallbackTitle   = "DevOps Engineer"
	fallbackSummary = "Passionate DevOps Engineer focused on automation and cloud technologies."
	na              = "N/A"

	dateLayout = "1/2/2006"
)

var whitespace = regexp.MustCompile(`\s+`)

var funcs = template.FuncMap{
	"upper":  strings.ToUpper,
	"join":   strings.Join,
	"repeat": strings.Repeat,
	"inc":    func(i int) int { return i + 1 },
}

var cvTemplate = template.Must(template.New("cv").Funcs(funcs).Parse(`
{{ upper .Name }}
{{ .Title }}
{{ repeat "=" 50 }}

CONTACT INFORMATION
{{ repeat "-" 20 }}
Email: {{ or .Info.Email "N/A" }}
Phone: {{ or .Info.Phone "N/A" }}
Location: {{ or .Info.Location "N/A" }}
GitHub: {{ or .Info.GitHub "N/A" }}
LinkedIn: {{ or .Info.LinkedIn "N/A" }}

PROFESSIONAL SUMMARY
{{ repeat "-" 20 }}
{{ .Summary }}

TECHNICAL SKILLS
{{ repeat "-" 20 }}
{{- range .Groups }}

{{ .Category }}:
{{ range .Skills }}• {{ .Name }} ({{ .Level }}%)
{{ end }}
{{- end }}

PROJECTS
{{ repeat "-" 20 }}
{{- range $i, $p := .Projects }}

{{ inc $i }}. {{ $p.Title }}{{ if $p.Featured }} ⭐ FEATURED{{ end }}
   {{ $p.Description }}
   Technologies: {{ if $p.Technologies }}{{ join $p.Technologies ", " }}{{ else }}N/A{{ end }}
   GitHub: {{ or $p.GitHubURL "N/A" }}
   Live Demo: {{ or $p.LiveURL "N/A" }}
{{- end }}

{{ repeat "=" 50 }}
Generated from Portfolio - {{ .Date }}
Portfolio Website: {{ .SiteURL }}
`))

type view struct {
	Name     string
	Title    string
	Summary  string
	Info     portfolio.PersonalInfo
	Groups   []portfolio.CategoryGroup
	Projects []portfolio.Project
	Date     string
	SiteURL  string
}

// Generate renders the CV of s. siteURL is printed as the portfolio website.
func Generate(s portfolio.Snapshot, generatedAt time.Time, siteURL string) (string, error) {
	v := view{
		Name:     or(s.PersonalInfo.Name, fallbackName),
		Title:    or(s.PersonalInfo.Title, fallbackTitle),
		Summary:  or(s.PersonalInfo.Description, fallbackSummary),
		Info:     s.PersonalInfo,
		Groups:   portfolio.GroupSkills(s.Skills),
		Projects: s.Projects,
		Date:     generatedAt.Format(dateLayout),
		SiteURL:  or(siteURL, na),
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, v); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Filename is the download name of the CV: the name with whitespace runs
// replaced by underscores, suffixed with _CV.txt.
func Filename(name string) string {
	return whitespace.ReplaceAllString(or(name, fallbackName), "_") + "_CV.txt"
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
