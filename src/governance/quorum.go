package governance

// ResolveQuorum decides whether current tallies finalize a proposal.
// It returns the terminal status and true once total participation has
// reached the quorum, or the zero status and false while the proposal
// should stay active.
//
// Passing requires a strict majority: 2*votesFor > totalVotes, the integer
// form of forPercentage > 50. An exact 50/50 split is NOT a pass and
// resolves to rejected. That tie policy is inherited platform behavior,
// kept for compatibility; flagged for product confirmation.
func ResolveQuorum(votesFor, votesAgainst, totalVotes, quorumRequired uint64) (ProposalStatus, bool) {
	_ = votesAgainst // tallied into totalVotes by the caller

	if totalVotes < quorumRequired {
		return "", false
	}
	if 2*votesFor > totalVotes {
		return StatusPassed, true
	}
	return StatusRejected, true
}

// ForPercentage is the share of total weight cast in favor, as a 0-100
// figure for display and event payloads. Zero participation reports 0.
func ForPercentage(votesFor, totalVotes uint64) float64 {
	if totalVotes == 0 {
		return 0
	}
	return float64(votesFor) / float64(totalVotes) * 100
}
