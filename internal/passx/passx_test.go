package passx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	require.NoError(t, Validate("mySecret1"))
	require.NoError(t, Validate("abc1234"))          // exactly 7
	require.NoError(t, Validate("a234567890123456")) // exactly 16
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"too short", "abc", ErrTooShort},
		{"six chars", "abc123", ErrTooShort},
		{"too long", "a2345678901234567", ErrTooLong},
		{"no digit", "abcdefgh", ErrMissingDigit},
		{"no letter", "12345678", ErrMissingLetter},
		{"empty", "", ErrTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, Validate(tt.password), tt.want)
		})
	}
}

func TestAnalyzeStrength_TopBand(t *testing.T) {
	s := AnalyzeStrength("Tr0ub4dor&9!xy")
	require.Equal(t, 4, s.Score)
	require.Equal(t, "Very strong", s.Label)
	require.True(t, s.IsValid)
}

func TestAnalyzeStrength_RepetitionPenalized(t *testing.T) {
	s := AnalyzeStrength("aaaaaaaa1")
	require.Equal(t, 0, s.Score)
	require.Equal(t, "Very weak", s.Label)
	require.Contains(t, s.Feedback, "avoid common patterns")
}

func TestAnalyzeStrength_BlocklistPenalized(t *testing.T) {
	// 12 chars (+2), three classes (+1), then -1 for the numeric run.
	s := AnalyzeStrength("Abcdefg12345")
	require.Equal(t, 2, s.Score)
	require.Contains(t, s.Feedback, "avoid common patterns")

	s = AnalyzeStrength("Qwerty99x")
	require.Contains(t, s.Feedback, "avoid common patterns")
}

func TestAnalyzeStrength_LengthAndVarietyScoring(t *testing.T) {
	// 9 chars (+1), lower+digit only (+0).
	s := AnalyzeStrength("abcdefg12")
	require.Equal(t, 1, s.Score)
	require.Equal(t, "Weak", s.Label)

	// 9 chars (+1), three classes (+1).
	s = AnalyzeStrength("Abcdefg12")
	require.Equal(t, 2, s.Score)
	require.Equal(t, "Fair", s.Label)
}

func TestAnalyzeStrength_FeedbackCappedAtThree(t *testing.T) {
	s := AnalyzeStrength("ab1")
	require.LessOrEqual(t, len(s.Feedback), 3)
	require.False(t, s.IsValid)
}

func TestAnalyzeStrength_Deterministic(t *testing.T) {
	a := AnalyzeStrength("mySecret1")
	b := AnalyzeStrength("mySecret1")
	require.Equal(t, a, b)
}
