package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVotingEndDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	assert.True(t, VotingEndDate(now, 7).Equal(now.Add(7*24*time.Hour)))
	assert.True(t, VotingEndDate(now, 1).Equal(now.Add(24*time.Hour)))
	assert.True(t, VotingEndDate(now, 0).Equal(now))
}

func TestTimeLeftLabel(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"already over", -time.Hour, "Ended"},
		{"exactly at the end", 0, "Ended"},
		{"final hour", time.Hour, "1 day left"},
		{"exactly one day", 24 * time.Hour, "1 day left"},
		{"just past one day rounds up", 24*time.Hour + time.Second, "2 days left"},
		{"two days", 48 * time.Hour, "2 days left"},
		{"partial week rounds up", 6*24*time.Hour + 23*time.Hour, "7 days left"},
		{"full window", 7 * 24 * time.Hour, "7 days left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeLeftLabel(now, now.Add(tt.remaining)))
		})
	}
}
