// Package admin is the admin write path: an in-memory editor over a snapshot
// and the save that writes it to the local cache and the web service.
package admin

import (
	"context"
	"errors"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/portfolio/remote"
)

const (
	defaultImage = "default"

	msgProjectFields = "Please fill in all required fields."
	msgSkillFields   = "Please fill in all skill fields."
	msgInvalidFile   = "Invalid file format."
)

// SnapshotWriter is the local cache the editor saves to.
type SnapshotWriter interface {
	WriteSnapshot(s portfolio.Snapshot) error
}

// Pusher sends a snapshot to the web service.
type Pusher interface {
	PushSnapshot(ctx context.Context, s portfolio.Snapshot) (remote.PushResult, error)
}

// Publisher receives the snapshot after each save, usually a *loader.Loader.
type Publisher interface {
	Publish(s portfolio.Snapshot)
}

// ProjectInput are the fields of a new project.
type ProjectInput struct {
	Title        string `validate:"required"`
	Description  string `validate:"required"`
	Technologies []string
	GitHubURL    string
	LiveURL      string
	ImageURL     string
	Featured     bool
}

// SkillInput are the fields of a new skill. A level of 0 counts as missing.
type SkillInput struct {
	Name     string `validate:"required"`
	Level    int    `validate:"required,min=0,max=100"`
	Category string `validate:"required"`
}

// Editor holds the snapshot being edited. It is safe for concurrent use.
// Mutations only change memory; SaveAll persists.
type Editor struct {
	mu   sync.Mutex
	snap portfolio.Snapshot

	cache     SnapshotWriter
	remote    Pusher
	publisher Publisher
	validate  *validator.Validate
	now       func() time.Time
	newID     func() string
}

// Option configures an Editor.
type Option func(*Editor)

// WithPublisher publishes every saved snapshot to p.
func WithPublisher(p Publisher) Option {
	return func(e *Editor) { e.publisher = p }
}

// WithClock replaces time.Now, used for project ids and export dates.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// New creates an editor starting from initial.
func New(initial portfolio.Snapshot, cache SnapshotWriter, pusher Pusher, opts ...Option) *Editor {
	e := &Editor{
		cache:    cache,
		remote:   pusher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.snap = e.adopt(initial)

	return e
}

// adopt copies s and gives skills without an id a fresh one.
func (e *Editor) adopt(s portfolio.Snapshot) portfolio.Snapshot {
	s = s.Clone()
	s.Normalize()

	for i := range s.Skills {
		if s.Skills[i].ID == "" {
			s.Skills[i].ID = e.newID()
		}
	}

	return s
}

// Snapshot returns a copy of the edited snapshot.
func (e *Editor) Snapshot() portfolio.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snap.Clone()
}

// Reset replaces the edited snapshot, as after loading.
func (e *Editor) Reset(s portfolio.Snapshot) {
	s = e.adopt(s)

	e.mu.Lock()
	e.snap = s
	e.mu.Unlock()
}

// AddProject appends a project with a fresh id taken from the clock.
func (e *Editor) AddProject(in ProjectInput) (portfolio.Project, Notice, error) {
	if err := e.check(in, msgProjectFields); err != nil {
		return portfolio.Project{}, failure(msgProjectFields), err
	}

	p := portfolio.Project{
		Title:        in.Title,
		Description:  in.Description,
		Technologies: append([]string{}, in.Technologies...),
		GitHubURL:    in.GitHubURL,
		LiveURL:      in.LiveURL,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
	}

	if p.ImageURL == "" {
		p.ImageURL = defaultImage
	}

	e.mu.Lock()
	p.ID = e.uniqueProjectID()
	e.snap.Projects = append(e.snap.Projects, p)
	e.mu.Unlock()

	return p, success("Project added successfully."), nil
}

// uniqueProjectID must be called with mu held.
func (e *Editor) uniqueProjectID() string {
	ms := e.now().UnixMilli()

	for {
		id := strconv.FormatInt(ms, 10)
		if _, taken := e.snap.ProjectByID(id); !taken {
			return id
		}

		ms++
	}
}

// UpdateProject replaces the project with the same id.
func (e *Editor) UpdateProject(p portfolio.Project) (Notice, error) {
	if p.Technologies == nil {
		p.Technologies = []string{}
	} else {
		p.Technologies = append([]string{}, p.Technologies...)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.IndexFunc(e.snap.Projects, func(x portfolio.Project) bool { return x.ID == p.ID })
	if i < 0 {
		return failure(ErrProjectNotFound.Error()), ErrProjectNotFound
	}

	e.snap.Projects[i] = p

	return success("Project updated successfully."), nil
}

// DeleteProject removes the project with the given id.
func (e *Editor) DeleteProject(id string) (Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := len(e.snap.Projects)
	e.snap.Projects = slices.DeleteFunc(e.snap.Projects, func(p portfolio.Project) bool { return p.ID == id })

	if len(e.snap.Projects) == before {
		return failure(ErrProjectNotFound.Error()), ErrProjectNotFound
	}

	return success("Project deleted successfully."), nil
}

// AddSkill appends a skill with a fresh id.
func (e *Editor) AddSkill(in SkillInput) (portfolio.Skill, Notice, error) {
	if err := e.check(in, msgSkillFields); err != nil {
		return portfolio.Skill{}, failure(msgSkillFields), err
	}

	s := portfolio.Skill{
		ID:       e.newID(),
		Name:     in.Name,
		Level:    in.Level,
		Category: in.Category,
	}

	e.mu.Lock()
	e.snap.Skills = append(e.snap.Skills, s)
	e.mu.Unlock()

	return s, success("Skill added successfully."), nil
}

// DeleteSkill removes the skill with the given id.
func (e *Editor) DeleteSkill(id string) (Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.deleteSkill(id)
}

// DeleteSkillAt removes the skill shown at index, keeping the order of the rest.
func (e *Editor) DeleteSkillAt(index int) (Notice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.snap.Skills) {
		return failure(ErrSkillIndexOutOfRange.Error()), ErrSkillIndexOutOfRange
	}

	return e.deleteSkill(e.snap.Skills[index].ID)
}

// deleteSkill must be called with mu held.
func (e *Editor) deleteSkill(id string) (Notice, error) {
	before := len(e.snap.Skills)
	e.snap.Skills = slices.DeleteFunc(e.snap.Skills, func(s portfolio.Skill) bool { return s.ID == id })

	if len(e.snap.Skills) == before {
		return failure(ErrSkillNotFound.Error()), ErrSkillNotFound
	}

	return success("Skill deleted successfully."), nil
}

// SetPersonalInfo replaces the personal info.
func (e *Editor) SetPersonalInfo(info portfolio.PersonalInfo) Notice {
	e.mu.Lock()
	e.snap.PersonalInfo = info
	e.mu.Unlock()

	return success("Personal information updated.")
}

// SetTheme replaces the theme settings.
func (e *Editor) SetTheme(theme portfolio.ThemeSettings) Notice {
	e.mu.Lock()
	e.snap.ThemeSettings = theme
	e.mu.Unlock()

	return success("Theme settings updated.")
}

// Export writes the edited snapshot as an export document.
func (e *Editor) Export(w io.Writer) error {
	return portfolio.WriteDocument(w, e.Snapshot(), e.now())
}

// Import overlays the sections present in the document. Nothing changes
// when the document does not parse.
func (e *Editor) Import(r io.Reader) (Notice, error) {
	doc, err := portfolio.ReadDocument(r)
	if err != nil {
		return failure(msgInvalidFile), err
	}

	e.mu.Lock()
	e.snap = e.adopt(doc.Apply(e.snap))
	e.mu.Unlock()

	return success("Data imported successfully."), nil
}

func (e *Editor) check(in any, message string) error {
	err := e.validate.Struct(in)
	if err == nil {
		return nil
	}

	verr := &ValidationError{Message: message}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Fields = append(verr.Fields, fe.Field())
		}
	}

	log.Debug().Strs("fields", verr.Fields).Msg("admin input rejected")

	return verr
}
