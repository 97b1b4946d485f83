package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

type stubGenerator struct {
	gen     domain.Generation
	err     error
	calls   int
	prompts []string
}

func (g *stubGenerator) Generate(_ domain.Context, prompt string) (domain.Generation, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.gen, g.err
}

func rankFixture() (domain.Vacancy, []domain.Resume) {
	v := domain.Vacancy{ID: "v-1", Title: "Backend Engineer", Requirements: "Go, SQL"}
	cs := []domain.Resume{
		{ID: "r-1", FullName: "Jane Doe", Skills: "Go, SQL", Experience: "five years", Content: "full text one"},
		{ID: "r-2", FullName: "John Roe", Skills: "Python", Experience: "two years", Content: "full text two"},
	}
	return v, cs
}

func TestRankBestCandidate_Success(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	raw := "Best Candidate: RESUME_ID_r-1\nJustification: strongest SQL background."
	g := &stubGenerator{gen: domain.Generation{Text: raw}}
	svc := usecase.NewRankService(nil, nil, g)

	verdict, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.NoError(t, err)
	assert.Equal(t, "r-1", verdict.Winner.ID)
	assert.Equal(t, "strongest SQL background.", verdict.Justification)
	assert.Equal(t, raw, verdict.RawResponse)
	assert.Equal(t, 1, g.calls)
}

func TestRankBestCandidate_AnswerLineCaseInsensitive(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	g := &stubGenerator{gen: domain.Generation{Text: "Sure!\nbest candidate:RESUME_ID_r-2\nhe fits."}}
	svc := usecase.NewRankService(nil, nil, g)

	verdict, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.NoError(t, err)
	assert.Equal(t, "r-2", verdict.Winner.ID)
	assert.Equal(t, "he fits.", verdict.Justification)
}

func TestRankBestCandidate_JustificationWithoutLabel(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	g := &stubGenerator{gen: domain.Generation{Text: "Best Candidate: RESUME_ID_r-1\nThe stronger match overall."}}
	svc := usecase.NewRankService(nil, nil, g)

	verdict, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.NoError(t, err)
	assert.Equal(t, "The stronger match overall.", verdict.Justification)
}

func TestRankBestCandidate_NotConfigured(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	svc := usecase.NewRankService(nil, nil, nil)

	_, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.ErrorIs(t, err, domain.ErrOracleNotConfigured)
}

func TestRankBestCandidate_NoApplicantsSkipsOracle(t *testing.T) {
	t.Parallel()
	v, _ := rankFixture()
	g := &stubGenerator{gen: domain.Generation{Text: "Best Candidate: RESUME_ID_r-1"}}
	svc := usecase.NewRankService(nil, nil, g)

	_, err := svc.RankBestCandidate(context.Background(), v, nil)
	require.ErrorIs(t, err, domain.ErrNoApplicants)
	assert.Zero(t, g.calls, "oracle must not be consulted for an empty candidate set")
}

func TestRankBestCandidate_TransportFailure(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	g := &stubGenerator{err: errors.New("connection reset")}
	svc := usecase.NewRankService(nil, nil, g)

	_, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.ErrorIs(t, err, domain.ErrOracleUnavailable)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRankBestCandidate_ParseFailureKeepsRaw(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	raw := "I cannot pick just one, they are all wonderful."
	g := &stubGenerator{gen: domain.Generation{Text: raw}}
	svc := usecase.NewRankService(nil, nil, g)

	verdict, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.ErrorIs(t, err, domain.ErrOracleParseFailure)
	assert.Equal(t, raw, verdict.RawResponse)
}

func TestRankBestCandidate_Blocked(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	g := &stubGenerator{gen: domain.Generation{Text: "", BlockReason: "SAFETY"}}
	svc := usecase.NewRankService(nil, nil, g)

	_, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.ErrorIs(t, err, domain.ErrOracleBlocked)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestRankBestCandidate_UnknownWinner(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	raw := "Best Candidate: RESUME_ID_r-99\nJustification: hallucinated."
	g := &stubGenerator{gen: domain.Generation{Text: raw}}
	svc := usecase.NewRankService(nil, nil, g)

	verdict, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.ErrorIs(t, err, domain.ErrDataConsistency)
	assert.Equal(t, raw, verdict.RawResponse)
}

func TestRankBestCandidate_PromptShape(t *testing.T) {
	t.Parallel()
	v, cs := rankFixture()
	cs[0].Experience = strings.Repeat("e", 5000)
	cs[0].Content = strings.Repeat("c", 5000)
	g := &stubGenerator{gen: domain.Generation{Text: "Best Candidate: RESUME_ID_r-1\nok"}}
	svc := usecase.NewRankService(nil, nil, g)

	_, err := svc.RankBestCandidate(context.Background(), v, cs)
	require.NoError(t, err)
	require.Len(t, g.prompts, 1)
	prompt := g.prompts[0]

	assert.Contains(t, prompt, "RESUME_ID_r-1")
	assert.Contains(t, prompt, "RESUME_ID_r-2")
	assert.Contains(t, prompt, v.Title)
	assert.Contains(t, prompt, v.Requirements)
	assert.NotContains(t, prompt, strings.Repeat("e", 1001), "experience digest must be bounded")
	assert.NotContains(t, prompt, strings.Repeat("c", 1501), "content digest must be bounded")
	assert.Contains(t, prompt, "Best Candidate: RESUME_ID_<id>")
}

func TestRankVacancy_LoadsApplicants(t *testing.T) {
	t.Parallel()
	vac := &stubVacancyRepo{vacancy: domain.Vacancy{ID: "v-1", Title: "Backend Engineer"}}
	res := &stubResumeRepo{byVacancy: []domain.Resume{{ID: "r-1", FullName: "Jane Doe"}}}
	g := &stubGenerator{gen: domain.Generation{Text: "Best Candidate: RESUME_ID_r-1\nJustification: only applicant."}}
	svc := usecase.NewRankService(vac, res, g)

	verdict, err := svc.RankVacancy(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, "r-1", verdict.Winner.ID)
}
