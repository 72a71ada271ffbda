package governance

import "time"

// EventName identifies a lifecycle notification.
type EventName string

const (
	EventProposalApproved EventName = "proposal.approved"
	EventProposalRejected EventName = "proposal.rejected"
	EventChangesRequested EventName = "changes.requested"
	EventVotingStarted    EventName = "voting.started"
	EventQuorumResolved   EventName = "quorum.resolved"
)

// Event is the notification payload handed to the Emitter when a proposal
// crosses a reviewable or votable boundary. Tally fields are populated on
// quorum resolution, review fields on administrative actions.
type Event struct {
	Name          EventName      `json:"name"`
	ProposalID    string         `json:"proposalId"`
	Title         string         `json:"title"`
	Status        ProposalStatus `json:"status"`
	Reviewer      string         `json:"reviewer,omitempty"`
	Comments      string         `json:"comments,omitempty"`
	VotesFor      uint64         `json:"votesFor,omitempty"`
	VotesAgainst  uint64         `json:"votesAgainst,omitempty"`
	TotalVotes    uint64         `json:"totalVotes,omitempty"`
	ForPercentage float64        `json:"forPercentage,omitempty"`
	At            time.Time      `json:"at"`
}

// Emitter receives lifecycle events. Delivery is fire-and-forget: the
// engine never blocks on, retries, or inspects the result of an emit, and
// a nil emitter silently drops everything.
type Emitter interface {
	Emit(ev Event)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(Event)

// Emit calls f.
func (f EmitterFunc) Emit(ev Event) { f(ev) }
