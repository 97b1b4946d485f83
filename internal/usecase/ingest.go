package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// IngestService turns uploaded document bytes into a stored candidate record.
type IngestService struct {
	Resumes   domain.ResumeRepository
	Extractor domain.TextExtractor
	Snapshots domain.SnapshotStore
}

// NewIngestService constructs an IngestService with its dependencies.
func NewIngestService(r domain.ResumeRepository, e domain.TextExtractor, s domain.SnapshotStore) IngestService {
	return IngestService{Resumes: r, Extractor: e, Snapshots: s}
}

// Ingest extracts text, infers fields, and persists the record. The extractor
// is silent on failure, so an empty result is surfaced here as
// ErrExtractionFailed instead of persisting an empty record.
func (s IngestService) Ingest(ctx domain.Context, filename string, data []byte, kind domain.DocType) (domain.Resume, error) {
	text := textx.SanitizeText(s.Extractor.Extract(ctx, data, kind))
	if text == "" {
		return domain.Resume{}, fmt.Errorf("op=ingest: %w: %s", domain.ErrExtractionFailed, filename)
	}

	fields := ParseFields(text)
	r := domain.Resume{
		Filename:   filename,
		FullName:   fields.FullName.OrSentinel(),
		Email:      fields.Email.OrSentinel(),
		Phone:      fields.Phone.OrSentinel(),
		Education:  fields.Education.OrSentinel(),
		Skills:     fields.Skills.OrSentinel(),
		Experience: fields.Experience.OrSentinel(),
		Content:    text,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := s.Resumes.Create(ctx, r)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("op=ingest.create: %w", err)
	}
	r.ID = id

	s.mirror(ctx)
	return r, nil
}

// List returns all stored resumes.
func (s IngestService) List(ctx domain.Context) ([]domain.Resume, error) {
	return s.Resumes.List(ctx)
}

// mirror rewrites the resumes JSON snapshot; best-effort.
func (s IngestService) mirror(ctx domain.Context) {
	if s.Snapshots == nil {
		return
	}
	rs, err := s.Resumes.List(ctx)
	if err == nil {
		err = s.Snapshots.WriteResumes(ctx, rs)
	}
	if err != nil {
		slog.Warn("resume snapshot mirror failed", slog.Any("error", err))
	}
}
