package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// ApplicationRepo persists resume-to-vacancy associations.
type ApplicationRepo struct{ Pool PgxPool }

// NewApplicationRepo constructs an ApplicationRepo with the given pool.
func NewApplicationRepo(p PgxPool) *ApplicationRepo { return &ApplicationRepo{Pool: p} }

// Create stores a new application and returns its id (generates one if empty).
// A duplicate application for the same vacancy/resume pair fails on the
// table's unique constraint.
func (r *ApplicationRepo) Create(ctx domain.Context, a domain.Application) (string, error) {
	tracer := otel.Tracer("repo.applications")
	ctx, span := tracer.Start(ctx, "applications.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "applications"),
	)
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO applications (id, vacancy_id, resume_id, created_at) VALUES ($1,$2,$3,$4)`
	if _, err := r.Pool.Exec(ctx, q, id, a.VacancyID, a.ResumeID, a.CreatedAt); err != nil {
		return "", fmt.Errorf("op=application.create: %w", err)
	}
	return id, nil
}
