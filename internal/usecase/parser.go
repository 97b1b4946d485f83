// Package usecase contains application business logic services.
package usecase

import (
	"regexp"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// Field inference is a deterministic, single-pass pipeline of ordered rules.
// Each rule is an independent lookahead over the entire text; no rule consumes
// input from another. ParseFields is total and pure: same text, same fields.

var (
	// Two or three capitalized words, e.g. "Jane Doe" or "John A. Smith".
	capitalizedNameRe = regexp.MustCompile(`^[A-Z][A-Za-z'.-]*(?:[ \t]+[A-Z][A-Za-z'.-]*){1,2}`)

	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

	// Optional country code, digits with -.() separators. Candidate spans are
	// validated by digit count afterwards.
	phoneRe = regexp.MustCompile(`\+?[0-9][0-9 \t().-]{8,18}[0-9]`)

	digitRe = regexp.MustCompile(`[0-9]`)

	educationRe  = sectionRe("education", "academic background")
	skillsRe     = sectionRe("technical skills", "core competencies", "skills")
	experienceRe = sectionRe("work experience", "employment history", "experience")
)

// sectionRe builds a section-capture expression: a recognized header at line
// start, followed by a colon or newline, capturing up to the next heading-like
// line (uppercase start with a colon) or end of text. The body can therefore
// never include the next section's header line.
func sectionRe(headers ...string) *regexp.Regexp {
	alt := strings.Join(headers, "|")
	// Header match is case-insensitive; the heading-like terminator is not, so
	// only an uppercase-starting line closes a section body.
	return regexp.MustCompile(`(?:^|\n)[ \t]*(?i:` + alt + `)[ \t]*(?::|\n)((?s:.*?))(?:\n[A-Z][^\n]*:|\z)`)
}

// knownSkills is the fixed vocabulary used when no skills header exists.
// Matches are case-insensitive; hits are reported in vocabulary order.
var knownSkills = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#",
	"React", "Vue", "Angular", "Node.js", "Docker", "Kubernetes", "Terraform",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka", "SQL",
	"AWS", "Azure", "GCP", "Linux", "Git", "CI/CD", "REST", "GraphQL",
	"Machine Learning", "Data Science", "DevOps",
}

// ParseFields applies the ordered heuristics to extracted plain text. Every
// field is a tagged result; projection to the stored sentinel happens in the
// caller. It never panics on any input.
func ParseFields(text string) domain.ResumeFields {
	text = textx.NormalizeNewlines(text)
	return domain.ResumeFields{
		FullName:   parseName(text),
		Email:      parseFirstMatch(text, emailRe),
		Phone:      parsePhone(text),
		Education:  parseSection(text, educationRe),
		Skills:     parseSkills(text),
		Experience: parseSection(text, experienceRe),
	}
}

// parseName inspects the first non-empty line only.
func parseName(text string) domain.Field {
	var first string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			first = s
			break
		}
	}
	if first == "" {
		return domain.Field{}
	}
	if m := capitalizedNameRe.FindString(first); m != "" {
		return domain.FoundField(m)
	}
	if len(strings.Fields(first)) <= 4 {
		return domain.FoundField(first)
	}
	return domain.Field{}
}

func parseFirstMatch(text string, re *regexp.Regexp) domain.Field {
	if m := re.FindString(text); m != "" {
		return domain.FoundField(strings.TrimSpace(m))
	}
	return domain.Field{}
}

// parsePhone takes the first candidate span and accepts it only when its
// digit-only projection has at least ten digits. There is no second chance:
// a short first span means the sentinel.
func parsePhone(text string) domain.Field {
	m := phoneRe.FindString(text)
	if m == "" {
		return domain.Field{}
	}
	if len(digitRe.FindAllString(m, -1)) < 10 {
		return domain.Field{}
	}
	return domain.FoundField(strings.TrimSpace(m))
}

func parseSection(text string, re *regexp.Regexp) domain.Field {
	sub := re.FindStringSubmatch(text)
	if sub == nil {
		return domain.Field{}
	}
	body := strings.TrimSpace(sub[1])
	if body == "" {
		return domain.Field{}
	}
	return domain.FoundField(body)
}

// parseSkills tries section capture first and falls back to scanning the whole
// text for the known-technology vocabulary.
func parseSkills(text string) domain.Field {
	if f := parseSection(text, skillsRe); f.Found {
		return f
	}
	lower := strings.ToLower(text)
	seen := make(map[string]bool, len(knownSkills))
	var hits []string
	for _, skill := range knownSkills {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		if containsWord(lower, key) {
			seen[key] = true
			hits = append(hits, skill)
		}
	}
	if len(hits) == 0 {
		return domain.Field{}
	}
	return domain.FoundField(strings.Join(hits, ", "))
}

// containsWord reports a word-boundary-delimited occurrence of token in
// corpus. Both arguments must already be lower-cased. Boundaries are computed
// without \b so tokens like "c++" or "node.js" keep their trailing symbols.
func containsWord(corpus, token string) bool {
	if token == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(corpus[from:], token)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(token)
		if (start == 0 || !isWordByte(corpus[start-1])) && (end == len(corpus) || !isWordByte(corpus[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
