package portfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Document is the export file format: the snapshot plus the export time.
type Document struct {
	Snapshot
	ExportDate time.Time `json:"exportDate"`
}

// ImportedDocument is a parsed export file. Sections missing from the file
// are nil.
type ImportedDocument struct {
	PersonalInfo  *PersonalInfo  `json:"personalInfo"`
	Projects      *[]Project     `json:"projects"`
	Skills        *[]Skill       `json:"skills"`
	ThemeSettings *ThemeSettings `json:"themeSettings"`
}

// WriteDocument writes the snapshot as an indented export document.
func WriteDocument(w io.Writer, s Snapshot, exportedAt time.Time) error {
	s = s.Clone()
	s.Normalize()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(Document{Snapshot: s, ExportDate: exportedAt.UTC()})
}

// ReadDocument parses an export document.
func ReadDocument(r io.Reader) (ImportedDocument, error) {
	var doc ImportedDocument

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ImportedDocument{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return doc, nil
}

// Apply overlays the sections present in the document onto base.
func (d ImportedDocument) Apply(base Snapshot) Snapshot {
	out := base.Clone()

	if d.PersonalInfo != nil {
		out.PersonalInfo = *d.PersonalInfo
	}

	if d.Projects != nil {
		out.Projects = *d.Projects
	}

	if d.Skills != nil {
		out.Skills = *d.Skills
	}

	if d.ThemeSettings != nil {
		out.ThemeSettings = *d.ThemeSettings
	}

	out.Normalize()

	return out
}
