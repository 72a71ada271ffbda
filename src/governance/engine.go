package governance

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Platform constants used when Config leaves the corresponding field zero.
const (
	DefaultQuorumRequired     = 100
	DefaultVotingDurationDays = 7
)

// Config wires an Engine to its collaborators.
type Config struct {
	// Store holds the proposal collection. Required.
	Store Store
	// Emitter receives lifecycle events. Optional; nil drops them.
	Emitter Emitter
	// Now is the wall-clock source. Optional; defaults to time.Now.
	Now func() time.Time
	// QuorumRequired is the total vote weight a proposal needs before its
	// outcome is finalized. Fixed onto each proposal at submission.
	QuorumRequired uint64
	// DefaultVotingDays applies when a submission carries no duration.
	DefaultVotingDays int
}

// Engine owns the proposal collection and is the only mutation path into
// it. Every write takes the engine lock, loads the full record, computes
// the next state and stores it back as one step, so tallies and statuses
// can never tear. Reads copy under the read lock and filter afterwards.
type Engine struct {
	mu                sync.RWMutex
	store             Store
	emitter           Emitter
	now               func() time.Time
	quorumRequired    uint64
	defaultVotingDays int
}

// NewEngine constructs an Engine. A nil Store is a programmer error and
// panics; everything else falls back to platform defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Store == nil {
		panic("governance: Config.Store is required")
	}
	e := &Engine{
		store:             cfg.Store,
		emitter:           cfg.Emitter,
		now:               cfg.Now,
		quorumRequired:    cfg.QuorumRequired,
		defaultVotingDays: cfg.DefaultVotingDays,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.quorumRequired == 0 {
		e.quorumRequired = DefaultQuorumRequired
	}
	if e.defaultVotingDays <= 0 {
		e.defaultVotingDays = DefaultVotingDurationDays
	}
	return e
}

func newDraftID() string    { return "draft-" + uuid.NewString() }
func newProposalID() string { return "prop-" + uuid.NewString() }

// SaveDraft stores a new draft. The payload is coerced into a total record
// but not validated: drafts may be arbitrarily incomplete.
func (e *Engine) SaveDraft(in ProposalInput) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := NormalizeProposal(in)
	p.ID = newDraftID()
	p.CreatedDate = e.now()
	if err := e.store.Put(p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// UpdateDraft merges a patch into a draft. Calling it on a proposal that
// has left the draft state is a silent no-op returning the unchanged
// record: the draft-edit path must never become a side door for mutating
// submitted proposals.
func (e *Engine) UpdateDraft(id string, patch ProposalPatch) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	if p.Status != StatusDraft {
		return p, nil
	}
	applyPatch(&p, patch)
	if err := e.store.Put(p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// DeleteDraft removes a draft entirely. Only drafts can be deleted; once
// submitted a proposal persists for good.
func (e *Engine) DeleteDraft(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound(id)
	}
	if p.Status != StatusDraft {
		return errInvalidState(id, "deleteDraft", p.Status)
	}
	return e.store.Delete(id)
}

// SubmitDraft moves a draft into the review pipeline. The draft identity is
// retired and a proposal identity issued in its place: drafts and live
// proposals are separate namespaces. Tallies are zeroed, the quorum is
// pinned to the platform constant and the voting window is scheduled.
func (e *Engine) SubmitDraft(id string) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	if p.Status != StatusDraft {
		return Proposal{}, errInvalidState(id, "submitDraft", p.Status)
	}
	if err := requireSubmittable(p); err != nil {
		return Proposal{}, err
	}

	submitted := e.materializeSubmission(p)
	if err := e.store.Put(submitted); err != nil {
		return Proposal{}, err
	}
	if err := e.store.Delete(id); err != nil {
		return Proposal{}, err
	}
	return submitted, nil
}

// AddProposal creates and submits in one step, for callers that skip the
// draft stage. Validation matches SubmitDraft.
func (e *Engine) AddProposal(in ProposalInput) (Proposal, error) {
	if err := ValidateInput(in); err != nil {
		return Proposal{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := NormalizeProposal(in)
	if err := requireSubmittable(p); err != nil {
		return Proposal{}, err
	}
	p.CreatedDate = e.now()

	submitted := e.materializeSubmission(p)
	if err := e.store.Put(submitted); err != nil {
		return Proposal{}, err
	}
	return submitted, nil
}

// materializeSubmission stamps the submission-time fields onto p. Caller
// holds the write lock.
func (e *Engine) materializeSubmission(p Proposal) Proposal {
	now := e.now()
	days := p.VotingDurationDays
	if days <= 0 {
		days = e.defaultVotingDays
	}
	end := VotingEndDate(now, days)

	p.ID = newProposalID()
	p.Status = StatusSubmitted
	p.SubmissionDate = &now
	p.EndDate = &end
	p.VotingDurationDays = days
	p.VotesFor = 0
	p.VotesAgainst = 0
	p.TotalVotes = 0
	p.QuorumRequired = e.quorumRequired
	return p
}

// BeginReview claims a submitted proposal for a reviewer, parking it in
// under_review so the rest of the queue knows it is being handled.
func (e *Engine) BeginReview(id, reviewer string) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	if p.Status != StatusSubmitted {
		return Proposal{}, errInvalidState(id, "beginReview", p.Status)
	}
	p.Status = StatusUnderReview
	p.ReviewedBy = reviewer
	if err := e.store.Put(p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// ApproveProposal moves a reviewed proposal into the active, votable state
// and announces that voting is open.
func (e *Engine) ApproveProposal(id, reviewer, comments string) (Proposal, error) {
	p, err := e.review(id, "approveProposal", StatusActive, reviewer, comments,
		StatusSubmitted, StatusUnderReview, StatusChangesRequested)
	if err != nil {
		return Proposal{}, err
	}
	e.emit(reviewEvent(EventProposalApproved, p))
	e.emit(reviewEvent(EventVotingStarted, p))
	return p, nil
}

// RejectProposal terminates a proposal during review. Rejection is final.
func (e *Engine) RejectProposal(id, reviewer, comments string) (Proposal, error) {
	p, err := e.review(id, "rejectProposal", StatusRejected, reviewer, comments,
		StatusSubmitted, StatusUnderReview, StatusChangesRequested)
	if err != nil {
		return Proposal{}, err
	}
	e.emit(reviewEvent(EventProposalRejected, p))
	return p, nil
}

// RequestChanges sends a proposal back to its author with reviewer
// comments. The author resubmits via ResubmitProposal.
func (e *Engine) RequestChanges(id, reviewer, comments string) (Proposal, error) {
	p, err := e.review(id, "requestChanges", StatusChangesRequested, reviewer, comments,
		StatusSubmitted, StatusUnderReview)
	if err != nil {
		return Proposal{}, err
	}
	e.emit(reviewEvent(EventChangesRequested, p))
	return p, nil
}

// review performs one administrative transition with reviewer metadata.
func (e *Engine) review(id, op string, target ProposalStatus, reviewer, comments string, from ...ProposalStatus) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	if !statusIn(p.Status, from...) {
		return Proposal{}, errInvalidState(id, op, p.Status)
	}

	now := e.now()
	p.Status = target
	p.ReviewedBy = reviewer
	p.ReviewComments = comments
	p.ReviewDate = &now
	if err := e.store.Put(p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// ResubmitProposal returns a changes_requested proposal to the review
// queue. The patch is applied, review feedback cleared and a fresh
// submission date stamped; identity and tallies are untouched.
func (e *Engine) ResubmitProposal(id string, patch ProposalPatch) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	if p.Status != StatusChangesRequested {
		return Proposal{}, errInvalidState(id, "resubmitProposal", p.Status)
	}

	applyPatch(&p, patch)
	now := e.now()
	p.Status = StatusSubmitted
	p.SubmissionDate = &now
	p.ReviewComments = ""
	p.ReviewedBy = ""
	p.ReviewDate = nil
	if err := e.store.Put(p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// VoteOnProposal adds weight to one side of an active proposal's tally and
// immediately checks the quorum. It reports false instead of returning an
// error when the vote cannot be counted (unknown proposal, voting not
// open, bad choice, zero weight): this non-throwing contract is deliberate
// so voting surfaces can degrade gracefully instead of surfacing faults.
//
// One ballot per principal is the caller's contract to enforce; the engine
// does not keep per-voter records.
func (e *Engine) VoteOnProposal(id string, choice VoteChoice, weight uint64) bool {
	var resolved *Event

	e.mu.Lock()
	p, ok, err := e.store.Get(id)
	if err != nil || !ok {
		e.mu.Unlock()
		log.Printf("governance: vote on %s dropped: proposal unavailable", id)
		return false
	}
	if p.Status != StatusActive {
		e.mu.Unlock()
		log.Printf("governance: vote on %s dropped: status %s", id, p.Status)
		return false
	}
	if !choice.IsValid() || weight == 0 {
		e.mu.Unlock()
		log.Printf("governance: vote on %s dropped: choice %q weight %d", id, choice, weight)
		return false
	}

	switch choice {
	case VoteFor:
		p.VotesFor += weight
	case VoteAgainst:
		p.VotesAgainst += weight
	}
	p.TotalVotes += weight

	if status, done := ResolveQuorum(p.VotesFor, p.VotesAgainst, p.TotalVotes, p.QuorumRequired); done {
		p.Status = status
		ev := tallyEvent(EventQuorumResolved, p, e.now())
		resolved = &ev
	}

	if err := e.store.Put(p); err != nil {
		e.mu.Unlock()
		log.Printf("governance: vote on %s dropped: store: %v", id, err)
		return false
	}
	e.mu.Unlock()

	if resolved != nil {
		e.emit(*resolved)
	}
	return true
}

// GetProposalByID returns a snapshot of one proposal.
func (e *Engine) GetProposalByID(id string) (Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok, err := e.store.Get(id)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, errNotFound(id)
	}
	return p, nil
}

// GetProposalsByStatus lists proposals in one lifecycle state.
func (e *Engine) GetProposalsByStatus(status ProposalStatus) ([]Proposal, error) {
	return e.filter(func(p Proposal) bool { return p.Status == status })
}

// GetProposalsByType lists proposals of one proposal type, drafts excluded.
func (e *Engine) GetProposalsByType(pt ProposalType) ([]Proposal, error) {
	return e.filter(func(p Proposal) bool {
		return p.ProposalType == pt && p.Status != StatusDraft
	})
}

// GetProposalsForAdmin returns the review queue: everything awaiting an
// administrative decision.
func (e *Engine) GetProposalsForAdmin() ([]Proposal, error) {
	return e.filter(func(p Proposal) bool {
		return statusIn(p.Status, StatusSubmitted, StatusUnderReview, StatusChangesRequested)
	})
}

// GetProposalsForVoting returns the proposals a viewer with the given
// holdings may see on the voting board: open votes plus decided outcomes,
// private ones only for holders of the underlying asset.
func (e *Engine) GetProposalsForVoting(holdings HoldingSet) ([]Proposal, error) {
	return e.filter(func(p Proposal) bool {
		if !statusIn(p.Status, StatusActive, StatusPassed, StatusRejected) {
			return false
		}
		return IsVisible(p, holdings)
	})
}

// GetDraftsByAuthor lists an author's unsubmitted drafts.
func (e *Engine) GetDraftsByAuthor(address string) ([]Proposal, error) {
	return e.filter(func(p Proposal) bool {
		return p.Status == StatusDraft && p.ProposedByAddress == address
	})
}

// GetProposalsByAuthor lists everything an author has created, drafts
// included, so they can track their own pipeline.
func (e *Engine) GetProposalsByAuthor(address string) ([]Proposal, error) {
	return e.filter(func(p Proposal) bool {
		return p.ProposedByAddress == address
	})
}

// filter snapshots the collection under the read lock, then keeps matching
// records, newest first.
func (e *Engine) filter(keep func(Proposal) bool) ([]Proposal, error) {
	e.mu.RLock()
	all, err := e.store.List()
	e.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	out := make([]Proposal, 0, len(all))
	for _, p := range all {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].CreatedDate.After(out[j].CreatedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ViewOf projects a snapshot into the read model the platform UI consumes.
// UserVoted stays VoteNone here; the serving layer overlays the viewer's
// own ballot from its vote receipts.
func (e *Engine) ViewOf(p Proposal) ProposalView {
	v := ProposalView{
		Proposal:      p,
		ForPercentage: ForPercentage(p.VotesFor, p.TotalVotes),
		UserVoted:     VoteNone,
	}
	if p.EndDate != nil {
		v.TimeLeft = TimeLeftLabel(e.now(), *p.EndDate)
	}
	return v
}

func (e *Engine) emit(ev Event) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(ev)
}

func reviewEvent(name EventName, p Proposal) Event {
	ev := Event{
		Name:       name,
		ProposalID: p.ID,
		Title:      p.Title,
		Status:     p.Status,
		Reviewer:   p.ReviewedBy,
		Comments:   p.ReviewComments,
	}
	if p.ReviewDate != nil {
		ev.At = *p.ReviewDate
	}
	return ev
}

func tallyEvent(name EventName, p Proposal, at time.Time) Event {
	return Event{
		Name:          name,
		ProposalID:    p.ID,
		Title:         p.Title,
		Status:        p.Status,
		VotesFor:      p.VotesFor,
		VotesAgainst:  p.VotesAgainst,
		TotalVotes:    p.TotalVotes,
		ForPercentage: ForPercentage(p.VotesFor, p.TotalVotes),
		At:            at,
	}
}

func statusIn(s ProposalStatus, set ...ProposalStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
