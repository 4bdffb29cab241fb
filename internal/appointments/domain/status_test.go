package domain

import (
	"testing"

	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
	}{
		{"SCHEDULED", StatusScheduled},
		{"checked_in", StatusCheckedIn},
		{" In_Progress ", StatusInProgress},
		{"completed", StatusCompleted},
		{"CANCELLED", StatusCancelled},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			status, err := ParseStatus(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, input := range []string{"", "WAITING", "done"} {
		_, err := ParseStatus(input)
		assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range AllStatuses {
		assert.Equal(t, s == StatusCompleted || s == StatusCancelled, s.IsTerminal(), s.String())
	}
}
