// Package snapshot mirrors the relational tables to JSON files.
//
// The mirror exists for operator tooling that reads plain files; it is
// best-effort and write failures never fail the originating request.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

const (
	vacanciesFile = "vacancies.json"
	resumesFile   = "resumes.json"
)

// Store writes snapshots under a single directory.
type Store struct{ dir string }

// New constructs a Store rooted at dir.
func New(dir string) *Store { return &Store{dir: dir} }

type vacancyJSON struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	CreatedAt    string `json:"created_at"`
}

type resumeJSON struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Education  string `json:"education"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

// WriteVacancies replaces the vacancies snapshot with the full table state.
func (s *Store) WriteVacancies(_ domain.Context, vs []domain.Vacancy) error {
	out := make([]vacancyJSON, 0, len(vs))
	for _, v := range vs {
		out = append(out, vacancyJSON{
			ID:           v.ID,
			Title:        v.Title,
			Description:  v.Description,
			Requirements: v.Requirements,
			CreatedAt:    v.CreatedAt.UTC().Format(time.DateTime),
		})
	}
	return s.write(vacanciesFile, out)
}

// WriteResumes replaces the resumes snapshot with the full table state.
// Raw content is omitted to keep the file reviewable.
func (s *Store) WriteResumes(_ domain.Context, rs []domain.Resume) error {
	out := make([]resumeJSON, 0, len(rs))
	for _, r := range rs {
		out = append(out, resumeJSON{
			ID:         r.ID,
			Filename:   r.Filename,
			FullName:   r.FullName,
			Email:      r.Email,
			Phone:      r.Phone,
			Education:  r.Education,
			Skills:     r.Skills,
			Experience: r.Experience,
		})
	}
	return s.write(resumesFile, out)
}

// write marshals v and replaces the target file atomically via rename.
func (s *Store) write(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("op=snapshot.write: %w", err)
	}
	return nil
}
