package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveQuorum(t *testing.T) {
	tests := []struct {
		name         string
		votesFor     uint64
		votesAgainst uint64
		quorum       uint64
		wantStatus   ProposalStatus
		wantDone     bool
	}{
		{"no participation", 0, 0, 100, "", false},
		{"one short of quorum", 60, 39, 100, "", false},
		{"majority at quorum passes", 51, 49, 100, StatusPassed, true},
		{"exact tie rejects", 50, 50, 100, StatusRejected, true},
		{"minority rejects", 40, 60, 100, StatusRejected, true},
		{"unanimous for", 100, 0, 100, StatusPassed, true},
		{"unanimous against", 0, 100, 100, StatusRejected, true},
		{"one vote over half", 501, 499, 1000, StatusPassed, true},
		{"participation beyond quorum", 700, 500, 100, StatusPassed, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := tt.votesFor + tt.votesAgainst
			status, done := ResolveQuorum(tt.votesFor, tt.votesAgainst, total, tt.quorum)
			assert.Equal(t, tt.wantDone, done)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestForPercentage(t *testing.T) {
	assert.Zero(t, ForPercentage(0, 0), "no participation reads as zero")
	assert.InDelta(t, 51.0, ForPercentage(51, 100), 0.0001)
	assert.InDelta(t, 50.0, ForPercentage(50, 100), 0.0001)
	assert.InDelta(t, 100.0, ForPercentage(75, 75), 0.0001)
	assert.InDelta(t, 33.3333, ForPercentage(1, 3), 0.001)
}
