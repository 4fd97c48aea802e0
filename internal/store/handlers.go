package store

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/devportfolio/internal/db/controller/contact"
	"github.com/devportfolio/devportfolio/internal/db/controller/setting"
	"github.com/devportfolio/devportfolio/internal/db/controller/snapshot"
	"github.com/devportfolio/devportfolio/internal/db/models"
	"github.com/devportfolio/devportfolio/internal/portfolio"
)

// MessageResponse acknowledges a request.
type MessageResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	DataExists bool      `json:"data_exists"`
}

// ContactForm is the body of POST /api/contact.
type ContactForm struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// load returns the stored record, or the sample snapshot if nothing was
// stored yet.
func (s *Server) load() (snapshot.Record, error) {
	var r snapshot.Record

	err := r.Load(s.db)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return snapshot.Record{Snapshot: portfolio.Sample()}, nil
	}

	return r, err
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, MessageResponse{
		Message:   "Portfolio API is running!",
		Timestamp: s.now(),
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  s.now(),
		DataExists: snapshot.Exists(s.db),
	})
}

func (s *Server) getPortfolio(w http.ResponseWriter, _ *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to load portfolio data")

		return
	}

	log.Debug().Int("projects", len(r.Projects)).Msg("sending portfolio")
	respondJSON(w, http.StatusOK, r)
}

func (s *Server) updatePortfolio(w http.ResponseWriter, req *http.Request) {
	body, err := readBody(w, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")

		return
	}

	snap, err := portfolio.Decode(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid portfolio data")

		return
	}

	r := snapshot.Record{Snapshot: snap}
	if err := r.Save(s.db, s.now()); err != nil {
		log.Error().Err(err).Msg("failed to save portfolio")
		respondError(w, http.StatusInternalServerError, "Failed to save portfolio data")

		return
	}

	log.Info().
		Int("projects", len(r.Projects)).
		Int("skills", len(r.Skills)).
		Msg("portfolio updated")

	respondJSON(w, http.StatusOK, MessageResponse{
		Message:   "Portfolio updated successfully",
		Timestamp: s.now(),
	})
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load projects")
		respondError(w, http.StatusInternalServerError, "Failed to load projects")

		return
	}

	respondJSON(w, http.StatusOK, r.Projects)
}

func (s *Server) getProject(w http.ResponseWriter, req *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load project")
		respondError(w, http.StatusInternalServerError, "Failed to load project")

		return
	}

	p, ok := r.ProjectByID(chi.URLParam(req, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Project not found")

		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (s *Server) skills(w http.ResponseWriter, _ *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load skills")
		respondError(w, http.StatusInternalServerError, "Failed to load skills")

		return
	}

	out := make(map[string][]portfolio.SkillLevel)

	for _, g := range portfolio.GroupSkills(r.Skills) {
		levels := make([]portfolio.SkillLevel, 0, len(g.Skills))
		for _, sk := range g.Skills {
			levels = append(levels, portfolio.SkillLevel{Name: sk.Name, Level: sk.Level})
		}

		out[g.Category] = levels
	}

	respondJSON(w, http.StatusOK, out)
}

func (s *Server) personalInfo(w http.ResponseWriter, _ *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load personal info")
		respondError(w, http.StatusInternalServerError, "Failed to load personal info")

		return
	}

	respondJSON(w, http.StatusOK, r.PersonalInfo)
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	r, err := s.load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load stats")
		respondError(w, http.StatusInternalServerError, "Failed to load stats")

		return
	}

	respondJSON(w, http.StatusOK, portfolio.ComputeStats(r.Snapshot, r.LastUpdated))
}

func (s *Server) createContact(w http.ResponseWriter, req *http.Request) {
	var form ContactForm

	body, err := readBody(w, req)
	if err == nil {
		err = json.Unmarshal(body, &form)
	}

	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")

		return
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Subject = strings.TrimSpace(form.Subject)
	form.Message = strings.TrimSpace(form.Message)

	if err := s.validate.Struct(form); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid contact message")

		return
	}

	msg := models.ContactMessage{
		Name:      form.Name,
		Email:     form.Email,
		Subject:   form.Subject,
		Message:   form.Message,
		CreatedAt: s.now().UTC(),
	}

	if err := contact.Create(s.db, &msg); err != nil {
		log.Error().Err(err).Msg("failed to store contact message")
		respondError(w, http.StatusInternalServerError, "Failed to process message")

		return
	}

	log.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("subject", msg.Subject).
		Msg("new contact message")

	respondJSON(w, http.StatusOK, MessageResponse{
		Message:   "Thank you for your message! I'll get back to you soon.",
		Timestamp: s.now(),
	})
}

func (s *Server) listContacts(w http.ResponseWriter, _ *http.Request) {
	messages, err := contact.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to load contact messages")
		respondError(w, http.StatusInternalServerError, "Failed to load contact messages")

		return
	}

	respondJSON(w, http.StatusOK, messages)
}

func readBody(w http.ResponseWriter, req *http.Request) ([]byte, error) {
	defer req.Body.Close()

	return io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
}
