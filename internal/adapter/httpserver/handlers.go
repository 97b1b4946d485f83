package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg       config.Config
	Ingest    usecase.IngestService
	Vacancies usecase.VacancyService
	Match     usecase.MatchService
	Rank      usecase.RankService
}

// NewServer constructs an HTTP server with all handlers wired.
func NewServer(cfg config.Config, ingest usecase.IngestService, vac usecase.VacancyService, match usecase.MatchService, rank usecase.RankService) *Server {
	return &Server{Cfg: cfg, Ingest: ingest, Vacancies: vac, Match: match, Rank: rank}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

type vacancyRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=300"`
	Description  string `json:"description" validate:"max=20000"`
	Requirements string `json:"requirements" validate:"max=20000"`
}

type vacancyResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	CreatedAt    string `json:"created_at"`
}

type resumeResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

func toVacancyResponse(v domain.Vacancy) vacancyResponse {
	return vacancyResponse{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Requirements: v.Requirements,
		CreatedAt:    v.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

func toResumeResponse(r domain.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID,
		Filename:   r.Filename,
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		Education:  r.Education,
		Skills:     r.Skills,
		Experience: r.Experience,
	}
}

// CreateVacancyHandler stores a new vacancy.
func (s *Server) CreateVacancyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vacancyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		v, err := s.Vacancies.Create(r.Context(), req.Title, req.Description, req.Requirements)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, toVacancyResponse(v))
	}
}

// ListVacanciesHandler returns all vacancies.
func (s *Server) ListVacanciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vs, err := s.Vacancies.List(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]vacancyResponse, 0, len(vs))
		for _, v := range vs {
			out = append(out, toVacancyResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GetVacancyHandler returns one vacancy.
func (s *Server) GetVacancyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := s.Vacancies.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toVacancyResponse(v))
	}
}

// allowedExt enforces the upload allowlist: .pdf, .docx.
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func docTypeFor(name string, data []byte) (domain.DocType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mt := mimetype.Detect(data)
	switch ext {
	case ".pdf":
		if !mt.Is("application/pdf") {
			return "", fmt.Errorf("%w: content does not look like pdf (%s)", domain.ErrInvalidArgument, mt.String())
		}
		return domain.DocTypePDF, nil
	case ".docx":
		// DOCX is a zip container; some detectors report the generic type.
		if !mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document") && !mt.Is("application/zip") {
			return "", fmt.Errorf("%w: content does not look like docx (%s)", domain.ErrInvalidArgument, mt.String())
		}
		return domain.DocTypeDOCX, nil
	}
	return "", fmt.Errorf("%w: unsupported extension %q", domain.ErrInvalidArgument, ext)
}

// UploadResumeHandler handles multipart resume upload and ingestion.
func (s *Server) UploadResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		if maxBytes <= 0 {
			maxBytes = 10 * 1024 * 1024
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{Code: "PAYLOAD_TOO_LARGE", Message: "upload exceeds limit"}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: file part required", domain.ErrInvalidArgument), nil)
			return
		}
		defer func() { _ = file.Close() }()
		if header.Filename == "" || !allowedExt(header.Filename) {
			writeError(w, r, fmt.Errorf("%w: only .pdf and .docx uploads are accepted", domain.ErrInvalidArgument), nil)
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInternal, err), nil)
			return
		}
		kind, err := docTypeFor(header.Filename, data)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		res, err := s.Ingest.Ingest(r.Context(), filepath.Base(header.Filename), data, kind)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, toResumeResponse(res))
	}
}

// ListResumesHandler returns all stored resumes.
func (s *Server) ListResumesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rs, err := s.Ingest.List(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]resumeResponse, 0, len(rs))
		for _, res := range rs {
			out = append(out, toResumeResponse(res))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type applyRequest struct {
	ResumeID string `json:"resume_id" validate:"required"`
}

// ApplyHandler associates a resume with a vacancy.
func (s *Server) ApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json body", domain.ErrInvalidArgument), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		a, err := s.Vacancies.Apply(r.Context(), chi.URLParam(r, "id"), req.ResumeID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{
			"id":         a.ID,
			"vacancy_id": a.VacancyID,
			"resume_id":  a.ResumeID,
		})
	}
}

type matchEntry struct {
	Resume   resumeResponse `json:"resume"`
	Evidence string         `json:"evidence"`
}

type matchResponse struct {
	VacancyID string       `json:"vacancy_id"`
	Matched   []matchEntry `json:"matched"`
	Warning   string       `json:"warning,omitempty"`
}

// MatchVacancyHandler filters a vacancy's applicants by requirement keywords.
func (s *Server) MatchVacancyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, out, err := s.Match.MatchVacancy(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		resp := matchResponse{VacancyID: v.ID, Matched: make([]matchEntry, 0, len(out.Matched)), Warning: out.Warning}
		for _, m := range out.Matched {
			resp.Matched = append(resp.Matched, matchEntry{Resume: toResumeResponse(m.Resume), Evidence: m.Evidence})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type rankResponse struct {
	VacancyID     string         `json:"vacancy_id"`
	Winner        resumeResponse `json:"winner"`
	Justification string         `json:"justification"`
	RawResponse   string         `json:"raw_response"`
}

// RankVacancyHandler consults the oracle for a best-candidate verdict. Oracle
// failures carry the raw reply in the error details for diagnosis.
func (s *Server) RankVacancyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		verdict, err := s.Rank.RankVacancy(r.Context(), id)
		if err != nil {
			observability.ObserveOracleCall("failure")
			var details interface{}
			if verdict.RawResponse != "" {
				details = map[string]string{"raw_response": verdict.RawResponse}
			}
			writeError(w, r, err, details)
			return
		}
		observability.ObserveOracleCall("success")
		writeJSON(w, http.StatusOK, rankResponse{
			VacancyID:     id,
			Winner:        toResumeResponse(verdict.Winner),
			Justification: verdict.Justification,
			RawResponse:   verdict.RawResponse,
		})
	}
}
