// Package domain holds the core entities, error taxonomy, and ports of the
// resume screener. It has no dependencies on adapters or transport.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	// ErrExtractionFailed marks a document that produced no text. The extractor
	// itself is silent; callers surface this instead of persisting empty records.
	ErrExtractionFailed = errors.New("text extraction failed")
	// Oracle failure modes. Each is recoverable at the request boundary.
	ErrOracleNotConfigured = errors.New("oracle not configured")
	ErrOracleUnavailable   = errors.New("oracle unavailable")
	ErrOracleParseFailure  = errors.New("oracle reply unparseable")
	ErrOracleBlocked       = errors.New("oracle blocked the prompt")
	// ErrDataConsistency marks an oracle verdict referencing a candidate that
	// was never part of the request.
	ErrDataConsistency = errors.New("data consistency violation")
	// ErrNoApplicants is reported instead of consulting the oracle when a
	// vacancy has no associated resumes.
	ErrNoApplicants = errors.New("no applicants")
	ErrInternal     = errors.New("internal error")
)

// NotFoundSentinel is the projection of an absent extracted field. Downstream
// consumers rely on every field being either extracted text or this literal.
const NotFoundSentinel = "Not found"

// DocType enumerates the document formats the extractor accepts.
type DocType string

const (
	DocTypePDF  DocType = "pdf"
	DocTypeDOCX DocType = "docx"
)

// Field is a tagged extraction result. The sentinel projection happens only at
// the serialization boundary, never inside the parsing pipeline.
type Field struct {
	Text  string
	Found bool
}

// FoundField returns a populated Field.
func FoundField(text string) Field { return Field{Text: text, Found: true} }

// OrSentinel projects the field to its stored string form. The projection
// never yields an empty string.
func (f Field) OrSentinel() string {
	if !f.Found || f.Text == "" {
		return NotFoundSentinel
	}
	return f.Text
}

// ResumeFields is the output of the field parser, before projection.
type ResumeFields struct {
	FullName   Field
	Email      Field
	Phone      Field
	Education  Field
	Skills     Field
	Experience Field
}

// Resume is a stored candidate record. Every extractable field is either
// extracted text or NotFoundSentinel; Content is the full extracted text and
// is never defaulted.
type Resume struct {
	ID         string
	Filename   string
	FullName   string
	Email      string
	Phone      string
	Education  string
	Skills     string
	Experience string
	Content    string
	CreatedAt  time.Time
}

// Vacancy is a job opening. Requirements stays free-form; tokenization into
// required skills happens at match time.
type Vacancy struct {
	ID           string
	Title        string
	Description  string
	Requirements string
	CreatedAt    time.Time
}

// Application associates one resume with one vacancy and scopes which
// candidates are eligible for matching and ranking.
type Application struct {
	ID        string
	VacancyID string
	ResumeID  string
	CreatedAt time.Time
}

// MatchResult reports one matched candidate. Evidence is the first required
// token found in the candidate's corpus; matching stops at the first hit.
type MatchResult struct {
	Resume   Resume
	Evidence string
}

// RankingVerdict is the parsed outcome of one oracle consultation.
type RankingVerdict struct {
	Winner        Resume
	Justification string
	RawResponse   string
}

// Generation is the oracle's reply. BlockReason is non-empty when the service
// refused the prompt on content-policy grounds.
type Generation struct {
	Text        string
	BlockReason string
}

// Repositories (ports)

type ResumeRepository interface {
	Create(ctx Context, r Resume) (string, error)
	Get(ctx Context, id string) (Resume, error)
	List(ctx Context) ([]Resume, error)
	ListByVacancy(ctx Context, vacancyID string) ([]Resume, error)
}

type VacancyRepository interface {
	Create(ctx Context, v Vacancy) (string, error)
	Get(ctx Context, id string) (Vacancy, error)
	List(ctx Context) ([]Vacancy, error)
}

type ApplicationRepository interface {
	Create(ctx Context, a Application) (string, error)
}

// TextExtractor (port)
// Extract converts document bytes into plain text. Failure is silent at this
// layer: unsupported or corrupt input yields an empty string, and no decoding
// panic escapes the implementation.
type TextExtractor interface {
	Extract(ctx Context, data []byte, kind DocType) string
}

// Generator (port)
// Generate performs one synchronous call to the external generation service.
// Implementations must be replaceable by deterministic stubs in tests.
type Generator interface {
	Generate(ctx Context, prompt string) (Generation, error)
}

// SnapshotStore (port)
// Best-effort JSON mirroring of the relational tables; write failures are
// logged and never fail the originating request.
type SnapshotStore interface {
	WriteVacancies(ctx Context, vs []Vacancy) error
	WriteResumes(ctx Context, rs []Resume) error
}

// Context aliases context.Context so usecases read in domain terms.
type Context = context.Context
