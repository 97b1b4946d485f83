package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// ResumeRepo persists and loads candidate records.
type ResumeRepo struct{ Pool PgxPool }

// NewResumeRepo constructs a ResumeRepo with the given pool.
func NewResumeRepo(p PgxPool) *ResumeRepo { return &ResumeRepo{Pool: p} }

const resumeColumns = `id, filename, full_name, email, phone, education, skills, experience, content, created_at`

// Create stores a new resume and returns its id (generates one if empty).
func (r *ResumeRepo) Create(ctx domain.Context, res domain.Resume) (string, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.Create")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "resumes"),
	)
	id := res.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO resumes (` + resumeColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.Pool.Exec(ctx, q, id, res.Filename, res.FullName, res.Email, res.Phone,
		res.Education, res.Skills, res.Experience, res.Content, res.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("op=resume.create: %w", err)
	}
	return id, nil
}

// Get loads a resume by id.
func (r *ResumeRepo) Get(ctx domain.Context, id string) (domain.Resume, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.Get")
	defer span.End()
	q := `SELECT ` + resumeColumns + ` FROM resumes WHERE id=$1`
	var res domain.Resume
	err := r.Pool.QueryRow(ctx, q, id).Scan(&res.ID, &res.Filename, &res.FullName, &res.Email,
		&res.Phone, &res.Education, &res.Skills, &res.Experience, &res.Content, &res.CreatedAt)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("op=resume.get: %w: %v", domain.ErrNotFound, err)
	}
	return res, nil
}

// List returns all resumes in insertion order.
func (r *ResumeRepo) List(ctx domain.Context) ([]domain.Resume, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.List")
	defer span.End()
	q := `SELECT ` + resumeColumns + ` FROM resumes ORDER BY created_at, id`
	return r.scanMany(ctx, q)
}

// ListByVacancy returns the resumes that applied to one vacancy, in
// application order. Matching and ranking must never see anything wider.
func (r *ResumeRepo) ListByVacancy(ctx domain.Context, vacancyID string) ([]domain.Resume, error) {
	tracer := otel.Tracer("repo.resumes")
	ctx, span := tracer.Start(ctx, "resumes.ListByVacancy")
	defer span.End()
	span.SetAttributes(attribute.String("vacancy.id", vacancyID))
	q := `SELECT r.id, r.filename, r.full_name, r.email, r.phone, r.education, r.skills, r.experience, r.content, r.created_at
		FROM resumes r
		JOIN applications a ON a.resume_id = r.id
		WHERE a.vacancy_id = $1
		ORDER BY a.created_at, r.id`
	return r.scanMany(ctx, q, vacancyID)
}

func (r *ResumeRepo) scanMany(ctx domain.Context, q string, args ...any) ([]domain.Resume, error) {
	rows, err := r.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	defer rows.Close()
	var out []domain.Resume
	for rows.Next() {
		var res domain.Resume
		if err := rows.Scan(&res.ID, &res.Filename, &res.FullName, &res.Email, &res.Phone,
			&res.Education, &res.Skills, &res.Experience, &res.Content, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("op=resume.list: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=resume.list: %w", err)
	}
	return out, nil
}
