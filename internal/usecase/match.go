package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// Matcher warnings. Informational outcomes, not errors: an empty token list is
// a property of the vacancy, not a fault in the request.
const (
	WarnNoRequirements = "no requirements text"
	WarnNoKeywords     = "no extractable keywords"
)

// MatchOutput is the filtered candidate view for one vacancy.
type MatchOutput struct {
	Matched []domain.MatchResult
	Warning string
}

// MatchService filters a vacancy's applicants against its requirement tokens.
type MatchService struct {
	Vacancies domain.VacancyRepository
	Resumes   domain.ResumeRepository
}

// NewMatchService constructs a MatchService with its repositories.
func NewMatchService(v domain.VacancyRepository, r domain.ResumeRepository) MatchService {
	return MatchService{Vacancies: v, Resumes: r}
}

// MatchVacancy loads the vacancy and the resumes that applied to it, then
// filters them. Candidates that never applied are out of scope by construction.
func (s MatchService) MatchVacancy(ctx domain.Context, vacancyID string) (domain.Vacancy, MatchOutput, error) {
	v, err := s.Vacancies.Get(ctx, vacancyID)
	if err != nil {
		return domain.Vacancy{}, MatchOutput{}, fmt.Errorf("op=match.vacancy: %w", err)
	}
	candidates, err := s.Resumes.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return domain.Vacancy{}, MatchOutput{}, fmt.Errorf("op=match.candidates: %w", err)
	}
	return v, FilterByRequirements(v.Requirements, candidates), nil
}

// FilterByRequirements tokenizes the requirements string and keeps, in input
// order, every candidate whose corpus contains a required token as a whole
// word. Scanning is first-hit: the first token found becomes the evidence and
// the remaining tokens are not consulted for that candidate. Non-matched
// candidates are dropped; this is a filter, not a ranking.
func FilterByRequirements(requirements string, candidates []domain.Resume) MatchOutput {
	if strings.TrimSpace(requirements) == "" {
		return MatchOutput{Warning: WarnNoRequirements}
	}
	tokens := tokenizeRequirements(requirements)
	if len(tokens) == 0 {
		return MatchOutput{Warning: WarnNoKeywords}
	}
	var out MatchOutput
	for _, c := range candidates {
		corpus := matchCorpus(c)
		if corpus == "" {
			continue
		}
		for _, tok := range tokens {
			if containsWord(corpus, tok) {
				out.Matched = append(out.Matched, domain.MatchResult{Resume: c, Evidence: tok})
				break
			}
		}
	}
	return out
}

// tokenizeRequirements splits on runs of commas and whitespace and lower-cases
// the result. Duplicates are kept; first-hit scanning makes them harmless.
func tokenizeRequirements(s string) []string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchCorpus builds the lower-cased search text for one candidate. The
// sentinel skills value is excluded so the literal "Not found" never matches a
// requirement token.
func matchCorpus(c domain.Resume) string {
	skills := c.Skills
	if skills == domain.NotFoundSentinel {
		skills = ""
	}
	return strings.ToLower(strings.TrimSpace(skills + "\n" + c.Content))
}
