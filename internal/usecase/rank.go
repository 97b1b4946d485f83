package usecase

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// Prompt-size bounds per candidate digest.
const (
	maxExperienceChars = 1000
	maxContentChars    = 1500
)

const resumeTagPrefix = "RESUME_ID_"

// bestLineRe locates the fixed-format answer line. The oracle contract is a
// negotiated protocol: one line "Best Candidate: RESUME_ID_<id>", then
// justification text.
var bestLineRe = regexp.MustCompile(`(?i)best\s*candidate\s*:\s*RESUME_ID_([A-Za-z0-9-]+)`)

var justificationLabelRe = regexp.MustCompile(`(?i)^justification\s*:\s*`)

// RankService consults the generation oracle for a best-candidate verdict.
// Oracle may be nil when no credential was configured; the service then
// refuses to execute before attempting any call.
type RankService struct {
	Vacancies domain.VacancyRepository
	Resumes   domain.ResumeRepository
	Oracle    domain.Generator
}

// NewRankService constructs a RankService with its dependencies.
func NewRankService(v domain.VacancyRepository, r domain.ResumeRepository, g domain.Generator) RankService {
	return RankService{Vacancies: v, Resumes: r, Oracle: g}
}

// RankVacancy loads the vacancy and its applicants and delegates to
// RankBestCandidate.
func (s RankService) RankVacancy(ctx domain.Context, vacancyID string) (domain.RankingVerdict, error) {
	v, err := s.Vacancies.Get(ctx, vacancyID)
	if err != nil {
		return domain.RankingVerdict{}, fmt.Errorf("op=rank.vacancy: %w", err)
	}
	candidates, err := s.Resumes.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return domain.RankingVerdict{}, fmt.Errorf("op=rank.candidates: %w", err)
	}
	return s.RankBestCandidate(ctx, v, candidates)
}

// RankBestCandidate formats one prompt for the vacancy and candidate set,
// performs a single synchronous oracle call, and parses the free-text reply.
// Every failure mode is a typed outcome; transport faults never propagate
// unwrapped, and the raw oracle text is always attached for diagnosis.
func (s RankService) RankBestCandidate(ctx domain.Context, v domain.Vacancy, candidates []domain.Resume) (domain.RankingVerdict, error) {
	if s.Oracle == nil {
		return domain.RankingVerdict{}, fmt.Errorf("op=rank: %w", domain.ErrOracleNotConfigured)
	}
	if len(candidates) == 0 {
		return domain.RankingVerdict{}, fmt.Errorf("op=rank: %w", domain.ErrNoApplicants)
	}

	byID := make(map[string]domain.Resume, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	prompt := buildRankingPrompt(v, candidates)
	gen, err := s.Oracle.Generate(ctx, prompt)
	if err != nil {
		return domain.RankingVerdict{}, fmt.Errorf("op=rank.generate: %w: %v", domain.ErrOracleUnavailable, err)
	}
	raw := gen.Text

	m := bestLineRe.FindStringSubmatchIndex(raw)
	if m == nil {
		if gen.BlockReason != "" {
			return verdictRaw(raw), fmt.Errorf("op=rank.parse: %w: reason=%s", domain.ErrOracleBlocked, gen.BlockReason)
		}
		slog.Warn("oracle reply missing answer line", slog.String("raw", raw))
		return verdictRaw(raw), fmt.Errorf("op=rank.parse: %w: raw=%q", domain.ErrOracleParseFailure, textx.Truncate(raw, 500))
	}

	id := raw[m[2]:m[3]]
	winner, ok := byID[id]
	if !ok {
		slog.Warn("oracle referenced unknown candidate", slog.String("resume_id", id))
		return verdictRaw(raw), fmt.Errorf("op=rank.parse: %w: oracle referenced unknown candidate %s%s", domain.ErrDataConsistency, resumeTagPrefix, id)
	}

	justification := strings.TrimSpace(raw[m[1]:])
	justification = justificationLabelRe.ReplaceAllString(justification, "")

	return domain.RankingVerdict{
		Winner:        winner,
		Justification: strings.TrimSpace(justification),
		RawResponse:   raw,
	}, nil
}

func verdictRaw(raw string) domain.RankingVerdict {
	return domain.RankingVerdict{RawResponse: raw}
}

// buildRankingPrompt embeds the vacancy and a bounded digest of every
// candidate under a stable RESUME_ID tag, then pins the reply format.
func buildRankingPrompt(v domain.Vacancy, candidates []domain.Resume) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced technical recruiter selecting the single best candidate for a vacancy.\n\n")
	sb.WriteString("Vacancy title: " + v.Title + "\n")
	sb.WriteString("Description: " + v.Description + "\n")
	sb.WriteString("Requirements: " + v.Requirements + "\n\n")
	sb.WriteString("Candidates:\n")
	for _, c := range candidates {
		sb.WriteString("\n--- " + resumeTagPrefix + c.ID + " ---\n")
		sb.WriteString("Name: " + c.FullName + "\n")
		sb.WriteString("Skills: " + c.Skills + "\n")
		sb.WriteString("Experience: " + textx.Truncate(c.Experience, maxExperienceChars) + "\n")
		sb.WriteString("Resume text: " + textx.Truncate(c.Content, maxContentChars) + "\n")
	}
	sb.WriteString("\nPick exactly one candidate. Reply with the line\n")
	sb.WriteString("Best Candidate: " + resumeTagPrefix + "<id>\n")
	sb.WriteString("on its own, followed by\nJustification: <why this candidate fits the requirements best>\n")
	return sb.String()
}
