package admin

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/portfolio/cache"
	"github.com/devportfolio/devportfolio/internal/portfolio/remote"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

// pushFunc is a Pusher test double.
type pushFunc func(ctx context.Context, s portfolio.Snapshot) (remote.PushResult, error)

func (f pushFunc) PushSnapshot(ctx context.Context, s portfolio.Snapshot) (remote.PushResult, error) {
	return f(ctx, s)
}

func pushOK() pushFunc {
	return func(context.Context, portfolio.Snapshot) (remote.PushResult, error) {
		return remote.PushResult{Success: true, Status: remote.StatusDurable}, nil
	}
}

// publisher records published snapshots.
type publisher struct {
	got []portfolio.Snapshot
}

func (p *publisher) Publish(s portfolio.Snapshot) { p.got = append(p.got, s) }

func newTestEditor(t *testing.T, initial portfolio.Snapshot, push Pusher, opts ...Option) (*Editor, *cache.Cache) {
	t.Helper()

	c, err := cache.New(memory.New())
	require.NoError(t, err)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)

	return New(initial, c, push, opts...), c
}

func TestAddProject(t *testing.T) {
	tests := []struct {
		name    string
		in      ProjectInput
		wantErr bool
	}{
		{name: "missing title", in: ProjectInput{Description: "d"}, wantErr: true},
		{name: "missing description", in: ProjectInput{Title: "t"}, wantErr: true},
		{name: "valid", in: ProjectInput{Title: "t", Description: "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, portfolio.Default(), pushOK())

			p, notice, err := e.AddProject(tt.in)

			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Please fill in all required fields.", verr.Message)
				assert.Equal(t, Notice{Title: "Error", Description: verr.Message, Destructive: true}, notice)
				assert.Empty(t, e.Snapshot().Projects, "snapshot unchanged")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Success!", notice.Title)
			assert.Equal(t, "Project added successfully. Don't forget to save!", notice.Description)

			assert.Equal(t, strconv.FormatInt(fixedNow.UnixMilli(), 10), p.ID)
			assert.Equal(t, "default", p.ImageURL)
			assert.False(t, p.Featured)
			assert.Equal(t, []string{}, p.Technologies)
			assert.Equal(t, []portfolio.Project{p}, e.Snapshot().Projects)
		})
	}
}

func TestAddProjectIDsAreUnique(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Default(), pushOK())

	first, _, err := e.AddProject(ProjectInput{Title: "a", Description: "a", ImageURL: "cicd"})
	require.NoError(t, err)

	second, _, err := e.AddProject(ProjectInput{Title: "b", Description: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "cicd", first.ImageURL)
}

func TestUpdateAndDeleteProject(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Sample(), pushOK())

	p := e.Snapshot().Projects[1]
	p.Title = "Renamed"
	p.Technologies = nil

	notice, err := e.UpdateProject(p)
	require.NoError(t, err)
	assert.Equal(t, "Project updated successfully. Don't forget to save!", notice.Description)

	got, ok := e.Snapshot().ProjectByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, []string{}, got.Technologies)

	_, err = e.UpdateProject(portfolio.Project{ID: "missing"})
	require.ErrorIs(t, err, ErrProjectNotFound)

	notice, err = e.DeleteProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Project deleted successfully. Don't forget to save!", notice.Description)
	assert.Len(t, e.Snapshot().Projects, 2)

	_, err = e.DeleteProject(p.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestAddSkill(t *testing.T) {
	tests := []struct {
		name    string
		in      SkillInput
		wantErr bool
	}{
		{name: "valid", in: SkillInput{Name: "Go", Level: 90, Category: "Languages"}},
		{name: "upper bound", in: SkillInput{Name: "Go", Level: 100, Category: "Languages"}},
		{name: "level zero counts as missing", in: SkillInput{Name: "Go", Level: 0, Category: "Languages"}, wantErr: true},
		{name: "negative level", in: SkillInput{Name: "Go", Level: -1, Category: "Languages"}, wantErr: true},
		{name: "level above 100", in: SkillInput{Name: "Go", Level: 101, Category: "Languages"}, wantErr: true},
		{name: "missing name", in: SkillInput{Level: 50, Category: "Languages"}, wantErr: true},
		{name: "missing category", in: SkillInput{Name: "Go", Level: 50}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, portfolio.Default(), pushOK())

			s, notice, err := e.AddSkill(tt.in)

			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "Please fill in all skill fields.", notice.Description)
				assert.Empty(t, e.Snapshot().Skills)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, s.ID)
			assert.Equal(t, "Skill added successfully. Don't forget to save!", notice.Description)
			assert.Equal(t, []portfolio.Skill{s}, e.Snapshot().Skills)
		})
	}
}

func TestLoadedSkillsGetIDs(t *testing.T) {
	initial := portfolio.Sample()
	e, _ := newTestEditor(t, initial, pushOK())

	seen := map[string]bool{}
	for _, s := range e.Snapshot().Skills {
		require.NotEmpty(t, s.ID)
		assert.False(t, seen[s.ID], "ids are unique")
		seen[s.ID] = true
	}

	assert.Empty(t, initial.Skills[0].ID, "the caller's snapshot is not rewritten")
}

func TestDeleteSkillAtKeepsOrder(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Default(), pushOK())

	for _, name := range []string{"A", "B", "C", "D"} {
		_, _, err := e.AddSkill(SkillInput{Name: name, Level: 50, Category: "X"})
		require.NoError(t, err)
	}

	notice, err := e.DeleteSkillAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Skill deleted successfully. Don't forget to save!", notice.Description)

	var names []string
	for _, s := range e.Snapshot().Skills {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"A", "C", "D"}, names)

	_, err = e.DeleteSkillAt(3)
	require.ErrorIs(t, err, ErrSkillIndexOutOfRange)

	_, err = e.DeleteSkillAt(-1)
	require.ErrorIs(t, err, ErrSkillIndexOutOfRange)
}

func TestDeleteSkillByID(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Default(), pushOK())

	// two skills with identical content stay distinguishable
	first, _, err := e.AddSkill(SkillInput{Name: "Go", Level: 50, Category: "X"})
	require.NoError(t, err)

	second, _, err := e.AddSkill(SkillInput{Name: "Go", Level: 50, Category: "X"})
	require.NoError(t, err)

	_, err = e.DeleteSkill(second.ID)
	require.NoError(t, err)
	assert.Equal(t, []portfolio.Skill{first}, e.Snapshot().Skills)

	_, err = e.DeleteSkill(second.ID)
	require.ErrorIs(t, err, ErrSkillNotFound)
}

func TestSetPersonalInfoAndTheme(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Default(), pushOK())

	info := portfolio.Default().PersonalInfo
	info.Name = "Jane Doe"
	e.SetPersonalInfo(info)

	theme := portfolio.ThemeSettings{PrimaryColor: "#ff0000"}
	notice := e.SetTheme(theme)
	assert.Equal(t, "Success!", notice.Title)

	s := e.Snapshot()
	assert.Equal(t, "Jane Doe", s.PersonalInfo.Name)
	assert.Equal(t, theme, s.ThemeSettings)
}

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestEditor(t, portfolio.Sample(), pushOK())

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))
	assert.Contains(t, buf.String(), `"exportDate": "2026-05-04T10:00:00Z"`)

	dst, _ := newTestEditor(t, portfolio.Default(), pushOK())

	notice, err := dst.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Data imported successfully. Don't forget to save!", notice.Description)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestImportPartialAndInvalid(t *testing.T) {
	e, _ := newTestEditor(t, portfolio.Sample(), pushOK())
	before := e.Snapshot()

	notice, err := e.Import(strings.NewReader("not json"))
	require.ErrorIs(t, err, portfolio.ErrInvalidDocument)
	assert.Equal(t, Notice{Title: "Error", Description: "Invalid file format.", Destructive: true}, notice)
	assert.Equal(t, before, e.Snapshot())

	_, err = e.Import(strings.NewReader(`{"themeSettings":{"primaryColor":"#111111"}}`))
	require.NoError(t, err)

	after := e.Snapshot()
	assert.Equal(t, "#111111", after.ThemeSettings.PrimaryColor)
	assert.Equal(t, before.Projects, after.Projects)
	assert.Equal(t, before.Skills, after.Skills)
	assert.Equal(t, before.PersonalInfo, after.PersonalInfo)
}

func TestSaveAll(t *testing.T) {
	tests := []struct {
		name      string
		push      pushFunc
		wantKind  Kind
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "durable",
			push:      pushOK(),
			wantKind:  Saved,
			wantTitle: "Success!",
			wantDesc:  "Portfolio data saved permanently to backend.",
		},
		{
			name: "local only with message",
			push: func(context.Context, portfolio.Snapshot) (remote.PushResult, error) {
				return remote.PushResult{
					Success: true,
					Message: "Data saved locally (backend not available)",
					Status:  remote.StatusLocalOnly,
				}, nil
			},
			wantKind:  Partial,
			wantTitle: "Partial Success",
			wantDesc:  "Data saved locally (backend not available)",
		},
		{
			name: "success false without message",
			push: func(context.Context, portfolio.Snapshot) (remote.PushResult, error) {
				return remote.PushResult{Status: remote.StatusLocalOnly}, nil
			},
			wantKind:  Partial,
			wantTitle: "Partial Success",
			wantDesc:  "Data saved locally but backend sync failed.",
		},
		{
			name: "push error",
			push: func(context.Context, portfolio.Snapshot) (remote.PushResult, error) {
				return remote.PushResult{}, &remote.Error{Op: "push", Err: errors.New("connection refused")}
			},
			wantKind:  Failed,
			wantTitle: "Error",
			wantDesc:  "Failed to save data. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pushed portfolio.Snapshot

			push := func(ctx context.Context, s portfolio.Snapshot) (remote.PushResult, error) {
				pushed = s
				return tt.push(ctx, s)
			}

			pub := &publisher{}
			e, c := newTestEditor(t, portfolio.Sample(), pushFunc(push), WithPublisher(pub))

			_, _, err := e.AddProject(ProjectInput{Title: "New", Description: "Project"})
			require.NoError(t, err)

			want := e.Snapshot()
			out := e.SaveAll(context.Background())

			assert.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, tt.wantTitle, out.Notice.Title)
			assert.Equal(t, tt.wantDesc, out.Notice.Description)
			assert.Equal(t, tt.wantKind != Saved, out.Notice.Destructive)

			if tt.wantKind == Failed {
				require.ErrorIs(t, out.Err, remote.ErrUnavailable)
			}

			// the cache holds exactly the saved snapshot whatever the push did
			cached, ok := c.ReadSnapshot()
			require.True(t, ok)
			assert.Equal(t, want, cached)

			assert.Equal(t, want, pushed)
			assert.Equal(t, []portfolio.Snapshot{want}, pub.got)
		})
	}
}
