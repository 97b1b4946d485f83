package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// VacancyService manages job vacancies and their applications.
type VacancyService struct {
	Vacancies    domain.VacancyRepository
	Resumes      domain.ResumeRepository
	Applications domain.ApplicationRepository
	Snapshots    domain.SnapshotStore
}

// NewVacancyService constructs a VacancyService with its dependencies.
func NewVacancyService(v domain.VacancyRepository, r domain.ResumeRepository, a domain.ApplicationRepository, s domain.SnapshotStore) VacancyService {
	return VacancyService{Vacancies: v, Resumes: r, Applications: a, Snapshots: s}
}

// Create validates and stores a vacancy, then refreshes the JSON mirror.
func (s VacancyService) Create(ctx domain.Context, title, description, requirements string) (domain.Vacancy, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Vacancy{}, fmt.Errorf("op=vacancy.create: %w: title required", domain.ErrInvalidArgument)
	}
	v := domain.Vacancy{
		Title:        strings.TrimSpace(title),
		Description:  description,
		Requirements: requirements,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.Vacancies.Create(ctx, v)
	if err != nil {
		return domain.Vacancy{}, fmt.Errorf("op=vacancy.create: %w", err)
	}
	v.ID = id

	s.mirror(ctx)
	return v, nil
}

// Get returns one vacancy by id.
func (s VacancyService) Get(ctx domain.Context, id string) (domain.Vacancy, error) {
	return s.Vacancies.Get(ctx, id)
}

// List returns all vacancies.
func (s VacancyService) List(ctx domain.Context) ([]domain.Vacancy, error) {
	return s.Vacancies.List(ctx)
}

// Apply associates a resume with a vacancy. Both sides must exist; the
// association is what scopes matching and ranking.
func (s VacancyService) Apply(ctx domain.Context, vacancyID, resumeID string) (domain.Application, error) {
	if _, err := s.Vacancies.Get(ctx, vacancyID); err != nil {
		return domain.Application{}, fmt.Errorf("op=vacancy.apply: %w", err)
	}
	if _, err := s.Resumes.Get(ctx, resumeID); err != nil {
		return domain.Application{}, fmt.Errorf("op=vacancy.apply: %w", err)
	}
	a := domain.Application{VacancyID: vacancyID, ResumeID: resumeID, CreatedAt: time.Now().UTC()}
	id, err := s.Applications.Create(ctx, a)
	if err != nil {
		return domain.Application{}, fmt.Errorf("op=vacancy.apply: %w", err)
	}
	a.ID = id
	return a, nil
}

// mirror rewrites the vacancies JSON snapshot; best-effort.
func (s VacancyService) mirror(ctx domain.Context) {
	if s.Snapshots == nil {
		return
	}
	vs, err := s.Vacancies.List(ctx)
	if err == nil {
		err = s.Snapshots.WriteVacancies(ctx, vs)
	}
	if err != nil {
		slog.Warn("vacancy snapshot mirror failed", slog.Any("error", err))
	}
}
