package governance

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable wall clock for deterministic scheduling.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingEmitter captures emitted events in order.
type recordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingEmitter) Emit(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingEmitter) Names() []EventName {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]EventName, len(r.events))
	for i, ev := range r.events {
		names[i] = ev.Name
	}
	return names
}

func (r *recordingEmitter) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

func (r *recordingEmitter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func newTestEngine(t *testing.T) (*Engine, *recordingEmitter, *fakeClock) {
	t.Helper()
	clk := newFakeClock(time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	rec := &recordingEmitter{}
	e := NewEngine(Config{
		Store:             NewMemoryStore(),
		Emitter:           rec,
		Now:               clk.Now,
		QuorumRequired:    100,
		DefaultVotingDays: 7,
	})
	return e, rec, clk
}

func renovationInput() ProposalInput {
	return ProposalInput{
		Title:              "Lobby renovation for Sunset Gardens",
		Description:        "Replace flooring and lighting in the main lobby.",
		Rationale:          "Improves tenant retention and appraisal value.",
		AssetName:          "Sunset Gardens Apartments",
		AssetType:          "Residential Real Estate",
		AssetID:            "asset-sunset-gardens",
		ProposalType:       "renovation",
		RequiredAmount:     "45000",
		VotingDurationDays: 10,
		ProposedBy:         "Hazel Daniels",
		ProposedByAddress:  "addr-hazel",
	}
}

// activeProposal shortcuts create+approve so voting tests start from an
// open ballot.
func activeProposal(t *testing.T, e *Engine, in ProposalInput) Proposal {
	t.Helper()
	p, err := e.AddProposal(in)
	require.NoError(t, err)
	p, err = e.ApproveProposal(p.ID, "admin-ruth", "ready for a vote")
	require.NoError(t, err)
	return p
}

func TestNewEngine_RequiresStore(t *testing.T) {
	assert.Panics(t, func() { NewEngine(Config{}) })
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(Config{Store: NewMemoryStore()})
	assert.Equal(t, uint64(DefaultQuorumRequired), e.quorumRequired)
	assert.Equal(t, DefaultVotingDurationDays, e.defaultVotingDays)
	assert.NotNil(t, e.now)
	assert.Nil(t, e.emitter)
}

func TestSaveDraft_AssignsDraftIdentity(t *testing.T) {
	e, _, clk := newTestEngine(t)

	p, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.ID, "draft-"), "draft id %q", p.ID)
	assert.Equal(t, StatusDraft, p.Status)
	assert.True(t, p.CreatedDate.Equal(clk.Now()))
	assert.Nil(t, p.SubmissionDate)
	assert.Nil(t, p.EndDate)
	assert.Zero(t, p.TotalVotes)
}

func TestSaveDraft_AcceptsIncompletePayload(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.SaveDraft(ProposalInput{})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, DefaultProposalType, p.ProposalType)
	assert.Equal(t, DefaultVisibilityPolicy, p.VisibilityPolicy)
	assert.Empty(t, p.Title)
}

func TestUpdateDraft_MergesPatch(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)

	title := "Lobby and elevator renovation"
	days := 14
	updated, err := e.UpdateDraft(p.ID, ProposalPatch{Title: &title, VotingDurationDays: &days})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, days, updated.VotingDurationDays)
	assert.Equal(t, p.Description, updated.Description, "unpatched fields stay put")
	assert.Equal(t, p.ID, updated.ID)
}

func TestUpdateDraft_UnknownID(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.UpdateDraft("draft-missing", ProposalPatch{})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "draft-missing", nf.ID)
}

func TestUpdateDraft_NonDraftIsSilentNoOp(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	title := "should never land"
	got, err := e.UpdateDraft(p.ID, ProposalPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)

	stored, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, stored.Title)
	assert.Equal(t, StatusSubmitted, stored.Status)
}

func TestDeleteDraft(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)
	require.NoError(t, e.DeleteDraft(p.ID))

	_, err = e.GetProposalByID(p.ID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteDraft_RefusesSubmitted(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	err = e.DeleteDraft(p.ID)
	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusSubmitted, ise.Status)
}

func TestSubmitDraft_ReassignsIdentityAndSchedules(t *testing.T) {
	e, _, clk := newTestEngine(t)

	draft, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)

	p, err := e.SubmitDraft(draft.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p.ID, "prop-"), "proposal id %q", p.ID)
	assert.NotEqual(t, draft.ID, p.ID)
	assert.Equal(t, StatusSubmitted, p.Status)
	require.NotNil(t, p.SubmissionDate)
	assert.True(t, p.SubmissionDate.Equal(clk.Now()))
	require.NotNil(t, p.EndDate)
	assert.True(t, p.EndDate.Equal(clk.Now().Add(10*24*time.Hour)), "10 day window from the payload")
	assert.Zero(t, p.VotesFor)
	assert.Zero(t, p.VotesAgainst)
	assert.Zero(t, p.TotalVotes)
	assert.Equal(t, uint64(100), p.QuorumRequired)

	// The draft identity is retired.
	_, err = e.GetProposalByID(draft.ID)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestSubmitDraft_DefaultVotingWindow(t *testing.T) {
	e, _, clk := newTestEngine(t)

	in := renovationInput()
	in.VotingDurationDays = 0
	draft, err := e.SaveDraft(in)
	require.NoError(t, err)

	p, err := e.SubmitDraft(draft.ID)
	require.NoError(t, err)

	assert.Equal(t, 7, p.VotingDurationDays)
	require.NotNil(t, p.EndDate)
	assert.True(t, p.EndDate.Equal(clk.Now().Add(7*24*time.Hour)))
}

func TestSubmitDraft_RequiresTitleAndDescription(t *testing.T) {
	e, _, _ := newTestEngine(t)

	in := renovationInput()
	in.Title = "   "
	draft, err := e.SaveDraft(in)
	require.NoError(t, err)

	_, err = e.SubmitDraft(draft.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	in = renovationInput()
	in.Description = ""
	draft, err = e.SaveDraft(in)
	require.NoError(t, err)

	_, err = e.SubmitDraft(draft.ID)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)
}

func TestSubmitDraft_OnlyFromDraft(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	_, err = e.SubmitDraft(p.ID)
	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "submitDraft", ise.Op)
}

func TestAddProposal_RejectsUnknownEnumLiteral(t *testing.T) {
	e, _, _ := newTestEngine(t)

	in := renovationInput()
	in.ProposalType = "liquidation"
	_, err := e.AddProposal(in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "proposalType", verr.Field)
}

func TestBeginReview(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	p, err = e.BeginReview(p.ID, "admin-ruth")
	require.NoError(t, err)
	assert.Equal(t, StatusUnderReview, p.Status)
	assert.Equal(t, "admin-ruth", p.ReviewedBy)

	_, err = e.BeginReview(p.ID, "admin-noah")
	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
}

func TestApproveProposal_OpensVotingAndEmitsInOrder(t *testing.T) {
	e, rec, clk := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	p, err = e.ApproveProposal(p.ID, "admin-ruth", "budget is reasonable")
	require.NoError(t, err)

	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, "admin-ruth", p.ReviewedBy)
	assert.Equal(t, "budget is reasonable", p.ReviewComments)
	require.NotNil(t, p.ReviewDate)
	assert.True(t, p.ReviewDate.Equal(clk.Now()))

	require.Equal(t, []EventName{EventProposalApproved, EventVotingStarted}, rec.Names())
	assert.Equal(t, p.ID, rec.Last().ProposalID)
	assert.Equal(t, StatusActive, rec.Last().Status)
}

func TestApproveProposal_FromChangesRequested(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	p, err = e.RequestChanges(p.ID, "admin-ruth", "tighten the budget")
	require.NoError(t, err)

	p, err = e.ApproveProposal(p.ID, "admin-ruth", "good now")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, p.Status)
}

func TestRejectProposal_IsTerminal(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	p, err = e.RejectProposal(p.ID, "admin-ruth", "asset is under litigation")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, p.Status)
	assert.Equal(t, []EventName{EventProposalRejected}, rec.Names())

	_, err = e.ApproveProposal(p.ID, "admin-ruth", "changed my mind")
	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)

	_, err = e.RequestChanges(p.ID, "admin-ruth", "rework")
	require.ErrorAs(t, err, &ise)

	assert.False(t, e.VoteOnProposal(p.ID, VoteFor, 10))
}

func TestRequestChanges_ThenResubmit(t *testing.T) {
	e, rec, clk := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	firstSubmission := *p.SubmissionDate

	p, err = e.RequestChanges(p.ID, "admin-ruth", "add a contractor quote")
	require.NoError(t, err)
	assert.Equal(t, StatusChangesRequested, p.Status)
	assert.Equal(t, "add a contractor quote", p.ReviewComments)
	assert.Equal(t, []EventName{EventChangesRequested}, rec.Names())

	clk.Advance(48 * time.Hour)
	title := "Lobby renovation with contractor quote"
	resubmitted, err := e.ResubmitProposal(p.ID, ProposalPatch{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, p.ID, resubmitted.ID, "identity survives resubmission")
	assert.Equal(t, StatusSubmitted, resubmitted.Status)
	assert.Equal(t, title, resubmitted.Title)
	assert.Empty(t, resubmitted.ReviewComments)
	assert.Empty(t, resubmitted.ReviewedBy)
	assert.Nil(t, resubmitted.ReviewDate)
	require.NotNil(t, resubmitted.SubmissionDate)
	assert.True(t, resubmitted.SubmissionDate.After(firstSubmission))
	assert.Zero(t, resubmitted.TotalVotes)
}

func TestResubmitProposal_OnlyFromChangesRequested(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p := activeProposal(t, e, renovationInput())

	_, err := e.ResubmitProposal(p.ID, ProposalPatch{})
	var ise *InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, StatusActive, ise.Status)
}

func TestRequestChanges_NotFromChangesRequested(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	_, err = e.RequestChanges(p.ID, "admin-ruth", "first pass")
	require.NoError(t, err)

	_, err = e.RequestChanges(p.ID, "admin-noah", "second pass")
	var ise *InvalidStateError
	assert.ErrorAs(t, err, &ise)
}

func TestVoteOnProposal_TallyInvariant(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := activeProposal(t, e, renovationInput())

	weights := []struct {
		choice VoteChoice
		weight uint64
	}{
		{VoteFor, 12}, {VoteAgainst, 7}, {VoteFor, 30}, {VoteAgainst, 21}, {VoteFor, 5},
	}
	for _, w := range weights {
		require.True(t, e.VoteOnProposal(p.ID, w.choice, w.weight))

		got, err := e.GetProposalByID(p.ID)
		require.NoError(t, err)
		assert.Equal(t, got.VotesFor+got.VotesAgainst, got.TotalVotes)
	}

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(47), got.VotesFor)
	assert.Equal(t, uint64(28), got.VotesAgainst)
	assert.Equal(t, uint64(75), got.TotalVotes)
	assert.Equal(t, StatusActive, got.Status, "75 of 100 stays open")
}

func TestVoteOnProposal_StaysActiveJustBelowQuorum(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	p := activeProposal(t, e, renovationInput())
	rec.Reset()

	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 99))

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	assert.Empty(t, rec.Names())
}

func TestVoteOnProposal_MajorityPassesAtQuorum(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	p := activeProposal(t, e, renovationInput())
	rec.Reset()

	require.True(t, e.VoteOnProposal(p.ID, VoteAgainst, 49))
	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 51))

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPassed, got.Status)

	require.Equal(t, []EventName{EventQuorumResolved}, rec.Names())
	ev := rec.Last()
	assert.Equal(t, uint64(51), ev.VotesFor)
	assert.Equal(t, uint64(49), ev.VotesAgainst)
	assert.Equal(t, uint64(100), ev.TotalVotes)
	assert.InDelta(t, 51.0, ev.ForPercentage, 0.0001)
}

func TestVoteOnProposal_ExactTieRejects(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := activeProposal(t, e, renovationInput())

	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 50))
	require.True(t, e.VoteOnProposal(p.ID, VoteAgainst, 50))

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status, "a 50/50 split is not a majority")
}

func TestVoteOnProposal_TalliesFreezeAfterResolution(t *testing.T) {
	e, _, _ := newTestEngine(t)
	p := activeProposal(t, e, renovationInput())

	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 100))
	resolved, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPassed, resolved.Status)

	assert.False(t, e.VoteOnProposal(p.ID, VoteFor, 10))
	assert.False(t, e.VoteOnProposal(p.ID, VoteAgainst, 10))

	after, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, resolved.VotesFor, after.VotesFor)
	assert.Equal(t, resolved.TotalVotes, after.TotalVotes)
}

func TestVoteOnProposal_RefusesBadBallots(t *testing.T) {
	e, _, _ := newTestEngine(t)

	assert.False(t, e.VoteOnProposal("prop-missing", VoteFor, 10), "unknown proposal")

	submitted, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	assert.False(t, e.VoteOnProposal(submitted.ID, VoteFor, 10), "voting not open yet")

	p := activeProposal(t, e, renovationInput())
	assert.False(t, e.VoteOnProposal(p.ID, VoteChoice("abstain"), 10), "unknown choice")
	assert.False(t, e.VoteOnProposal(p.ID, VoteNone, 10), "none is not castable")
	assert.False(t, e.VoteOnProposal(p.ID, VoteFor, 0), "zero weight")

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalVotes, "refused ballots leave tallies untouched")
}

func TestGetProposalsByStatus_NewestFirst(t *testing.T) {
	e, _, clk := newTestEngine(t)

	first, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	clk.Advance(time.Hour)

	in := renovationInput()
	in.Title = "Roof replacement at Sunset Gardens"
	second, err := e.AddProposal(in)
	require.NoError(t, err)

	list, err := e.GetProposalsByStatus(StatusSubmitted)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestGetProposalsByType_ExcludesDrafts(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)
	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	list, err := e.GetProposalsByType(TypeRenovation)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}

func TestGetProposalsForAdmin_ReviewQueue(t *testing.T) {
	e, _, clk := newTestEngine(t)

	submitted, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	clk.Advance(time.Minute)

	inReview, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	_, err = e.BeginReview(inReview.ID, "admin-ruth")
	require.NoError(t, err)
	clk.Advance(time.Minute)

	returned, err := e.AddProposal(renovationInput())
	require.NoError(t, err)
	_, err = e.RequestChanges(returned.ID, "admin-ruth", "more detail")
	require.NoError(t, err)
	clk.Advance(time.Minute)

	// Active and draft records never reach the review queue.
	activeProposal(t, e, renovationInput())
	_, err = e.SaveDraft(renovationInput())
	require.NoError(t, err)

	queue, err := e.GetProposalsForAdmin()
	require.NoError(t, err)
	require.Len(t, queue, 3)
	ids := []string{queue[0].ID, queue[1].ID, queue[2].ID}
	assert.ElementsMatch(t, []string{submitted.ID, inReview.ID, returned.ID}, ids)
}

func TestGetProposalsForVoting_GatesPrivateByHoldings(t *testing.T) {
	e, _, clk := newTestEngine(t)

	public := activeProposal(t, e, renovationInput())
	clk.Advance(time.Minute)

	priv := renovationInput()
	priv.Title = "Refinance Harbor Lofts"
	priv.AssetID = "asset-harbor-lofts"
	priv.IsPrivate = true
	priv.VisibilityPolicy = "always_private"
	private := activeProposal(t, e, priv)

	// Submitted proposals are not on the voting board at all.
	_, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	outsider, err := e.GetProposalsForVoting(nil)
	require.NoError(t, err)
	require.Len(t, outsider, 1)
	assert.Equal(t, public.ID, outsider[0].ID)

	holder, err := e.GetProposalsForVoting(NewHoldingSet("asset-harbor-lofts"))
	require.NoError(t, err)
	require.Len(t, holder, 2)
	assert.Equal(t, private.ID, holder[0].ID, "newest first")
}

func TestGetProposalsForVoting_IncludesDecidedOutcomes(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p := activeProposal(t, e, renovationInput())
	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 100))

	list, err := e.GetProposalsForVoting(nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StatusPassed, list[0].Status)
}

func TestGetDraftsByAuthor(t *testing.T) {
	e, _, _ := newTestEngine(t)

	mine := renovationInput()
	d, err := e.SaveDraft(mine)
	require.NoError(t, err)

	other := renovationInput()
	other.ProposedByAddress = "addr-felix"
	_, err = e.SaveDraft(other)
	require.NoError(t, err)

	list, err := e.GetDraftsByAuthor("addr-hazel")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, d.ID, list[0].ID)
}

func TestReadsReturnIndependentSnapshots(t *testing.T) {
	e, _, _ := newTestEngine(t)

	p, err := e.AddProposal(renovationInput())
	require.NoError(t, err)

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	origEnd := *got.EndDate
	got.Title = "mutated copy"
	*got.EndDate = got.EndDate.Add(240 * time.Hour)

	again, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, again.Title)
	assert.True(t, again.EndDate.Equal(origEnd))
}

func TestViewOf(t *testing.T) {
	e, _, clk := newTestEngine(t)

	p := activeProposal(t, e, renovationInput())
	require.True(t, e.VoteOnProposal(p.ID, VoteFor, 30))
	require.True(t, e.VoteOnProposal(p.ID, VoteAgainst, 10))

	got, err := e.GetProposalByID(p.ID)
	require.NoError(t, err)

	view := e.ViewOf(got)
	assert.Equal(t, "10 days left", view.TimeLeft)
	assert.InDelta(t, 75.0, view.ForPercentage, 0.0001)
	assert.Equal(t, VoteNone, view.UserVoted)

	clk.Advance(9*24*time.Hour + 12*time.Hour)
	assert.Equal(t, "1 day left", e.ViewOf(got).TimeLeft)

	clk.Advance(13 * time.Hour)
	assert.Equal(t, "Ended", e.ViewOf(got).TimeLeft)
}

func TestViewOf_DraftHasNoCountdown(t *testing.T) {
	e, _, _ := newTestEngine(t)

	d, err := e.SaveDraft(renovationInput())
	require.NoError(t, err)

	view := e.ViewOf(d)
	assert.Empty(t, view.TimeLeft)
	assert.Zero(t, view.ForPercentage)
}
