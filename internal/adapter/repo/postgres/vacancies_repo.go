package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// VacancyRepo persists and loads vacancies.
type VacancyRepo struct{ Pool PgxPool }

// NewVacancyRepo constructs a VacancyRepo with the given pool.
func NewVacancyRepo(p PgxPool) *VacancyRepo { return &VacancyRepo{Pool: p} }

// Create stores a new vacancy and returns its id (generates one if empty).
func (r *VacancyRepo) Create(ctx domain.Context, v domain.Vacancy) (string, error) {
	tracer := otel.Tracer("repo.vacancies")
	ctx, span := tracer.Start(ctx, "vacancies.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "vacancies"),
	)
	id := v.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO vacancies (id, title, description, requirements, created_at) VALUES ($1,$2,$3,$4,$5)`
	if _, err := r.Pool.Exec(ctx, q, id, v.Title, v.Description, v.Requirements, v.CreatedAt); err != nil {
		return "", fmt.Errorf("op=vacancy.create: %w", err)
	}
	return id, nil
}

// Get loads a vacancy by id.
func (r *VacancyRepo) Get(ctx domain.Context, id string) (domain.Vacancy, error) {
	tracer := otel.Tracer("repo.vacancies")
	ctx, span := tracer.Start(ctx, "vacancies.Get")
	defer span.End()
	q := `SELECT id, title, description, requirements, created_at FROM vacancies WHERE id=$1`
	var v domain.Vacancy
	err := r.Pool.QueryRow(ctx, q, id).Scan(&v.ID, &v.Title, &v.Description, &v.Requirements, &v.CreatedAt)
	if err != nil {
		return domain.Vacancy{}, fmt.Errorf("op=vacancy.get: %w: %v", domain.ErrNotFound, err)
	}
	return v, nil
}

// List returns all vacancies in insertion order.
func (r *VacancyRepo) List(ctx domain.Context) ([]domain.Vacancy, error) {
	tracer := otel.Tracer("repo.vacancies")
	ctx, span := tracer.Start(ctx, "vacancies.List")
	defer span.End()
	q := `SELECT id, title, description, requirements, created_at FROM vacancies ORDER BY created_at, id`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("op=vacancy.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Requirements, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=vacancy.list: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=vacancy.list: %w", err)
	}
	return out, nil
}
