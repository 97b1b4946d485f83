package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
		domain.ErrExtractionFailed,
		domain.ErrOracleNotConfigured,
		domain.ErrOracleUnavailable,
		domain.ErrOracleParseFailure,
		domain.ErrOracleBlocked,
		domain.ErrDataConsistency,
		domain.ErrNoApplicants,
		domain.ErrInternal,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestSentinelErrorsSurviveWrapping(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("op=rank: %w", domain.ErrOracleParseFailure)
	assert.True(t, errors.Is(err, domain.ErrOracleParseFailure))
	assert.False(t, errors.Is(err, domain.ErrOracleBlocked))
}

func TestFieldOrSentinel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Jane Doe", domain.FoundField("Jane Doe").OrSentinel())
	assert.Equal(t, domain.NotFoundSentinel, domain.Field{}.OrSentinel())

	// A found-but-empty field still projects to the sentinel; downstream
	// consumers never see an empty field value.
	assert.Equal(t, domain.NotFoundSentinel, domain.Field{Text: "", Found: true}.OrSentinel())
}
