// Package portfolio holds the portfolio snapshot model shared by the web service,
// the store backend and the admin client.
package portfolio

import (
	"bytes"
	"encoding/json"
)

// PersonalInfo is the identity block shown in the hero and contact sections.
type PersonalInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	GitHub      string `json:"github"`
	LinkedIn    string `json:"linkedin"`
	Avatar      string `json:"avatar"` // short label, at most two characters
}

// Project is a single portfolio project. ID is unique within a project list.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url"`
	ImageURL     string   `json:"image_url"`
	Featured     bool     `json:"featured"`
}

// Skill is a named proficiency. ID is a stable synthetic identifier; skills
// written by older clients may not carry one.
type Skill struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// ThemeSettings are the display toggles of the public site.
type ThemeSettings struct {
	PrimaryColor         string `json:"primaryColor"`
	DarkMode             bool   `json:"darkMode"`
	Animations           bool   `json:"animations"`
	ShowFloatingElements bool   `json:"showFloatingElements"`
}

// Snapshot is the aggregate of all four records.
type Snapshot struct {
	PersonalInfo  PersonalInfo  `json:"personalInfo"`
	Projects      []Project     `json:"projects"`
	Skills        []Skill       `json:"skills"`
	ThemeSettings ThemeSettings `json:"themeSettings"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s

	if s.Projects != nil {
		out.Projects = make([]Project, len(s.Projects))
		for i, p := range s.Projects {
			if p.Technologies != nil {
				p.Technologies = append(make([]string, 0, len(p.Technologies)), p.Technologies...)
			}

			out.Projects[i] = p
		}
	}

	if s.Skills != nil {
		out.Skills = append(make([]Skill, 0, len(s.Skills)), s.Skills...)
	}

	return out
}

// Normalize replaces nil lists with empty ones so the snapshot always
// serializes projects and skills as JSON arrays.
func (s *Snapshot) Normalize() {
	if s.Projects == nil {
		s.Projects = []Project{}
	}

	if s.Skills == nil {
		s.Skills = []Skill{}
	}

	for i := range s.Projects {
		if s.Projects[i].Technologies == nil {
			s.Projects[i].Technologies = []string{}
		}
	}
}

// ProjectByID returns the project with the given id.
func (s Snapshot) ProjectByID(id string) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}

	return Project{}, false
}

// Decode parses a snapshot leniently: projects and skills that are not JSON
// arrays become empty lists instead of failing the whole document. The
// document itself must be a JSON object; null is rejected.
func Decode(data []byte) (Snapshot, error) {
	var raw struct {
		PersonalInfo  PersonalInfo    `json:"personalInfo"`
		Projects      json.RawMessage `json:"projects"`
		Skills        json.RawMessage `json:"skills"`
		ThemeSettings ThemeSettings   `json:"themeSettings"`
	}

	if err := DecodeObject(data, &raw); err != nil {
		return Snapshot{}, err
	}

	s := Snapshot{
		PersonalInfo:  raw.PersonalInfo,
		ThemeSettings: raw.ThemeSettings,
	}

	s.Projects, _ = DecodeProjects(raw.Projects)
	s.Skills, _ = DecodeSkills(raw.Skills)
	s.Normalize()

	return s, nil
}

// DecodeProjects parses a project list. Anything that is not a JSON array of
// projects yields an empty list and ErrNotSequence.
func DecodeProjects(data []byte) ([]Project, error) {
	var projects []Project
	if err := decodeSequence(data, &projects); err != nil {
		return []Project{}, err
	}

	if projects == nil {
		projects = []Project{}
	}

	return projects, nil
}

// DecodeSkills parses a skill list with the same coercion as DecodeProjects.
func DecodeSkills(data []byte) ([]Skill, error) {
	var skills []Skill
	if err := decodeSequence(data, &skills); err != nil {
		return []Skill{}, err
	}

	if skills == nil {
		skills = []Skill{}
	}

	return skills, nil
}

// DecodeObject unmarshals data into v only when it is a JSON object.
func DecodeObject(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}

	return json.Unmarshal(trimmed, v)
}

func decodeSequence(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return ErrNotSequence
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return ErrNotSequence
	}

	return nil
}
