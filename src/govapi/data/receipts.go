package data

import (
	"context"
	"errors"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"gorm.io/gorm"
)

// ErrAlreadyVoted reports a second ballot from the same member on the
// same proposal.
var ErrAlreadyVoted = errors.New("vote already cast for this proposal")

// Receipts records one ballot per member per proposal. Record runs before
// the tally is touched so the uniqueness check races against itself at
// the database, not in application code.
type Receipts struct {
	db *gorm.DB
}

func NewReceipts(db *gorm.DB) Receipts {
	return Receipts{db: db}
}

func (r Receipts) Record(ctx context.Context, proposalID, voter string, choice governance.VoteChoice, weight uint64) error {
	rec := types.VoteReceipt{
		ProposalID: proposalID,
		Voter:      voter,
		Choice:     string(choice),
		Weight:     weight,
		CastAt:     time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyVoted
	}
	return err
}

// Revoke removes a receipt whose ballot never reached the tally, so the
// member can try again.
func (r Receipts) Revoke(ctx context.Context, proposalID, voter string) error {
	return r.db.WithContext(ctx).
		Delete(&types.VoteReceipt{}, "proposal_id = ? AND voter = ?", proposalID, voter).Error
}

func (r Receipts) Choice(ctx context.Context, proposalID, voter string) (governance.VoteChoice, bool, error) {
	var rec types.VoteReceipt
	err := r.db.WithContext(ctx).
		First(&rec, "proposal_id = ? AND voter = ?", proposalID, voter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return governance.VoteNone, false, nil
	}
	if err != nil {
		return governance.VoteNone, false, err
	}
	return governance.VoteChoice(rec.Choice), true, nil
}

// ChoicesFor returns the member's ballots across the given proposals,
// keyed by proposal id.
func (r Receipts) ChoicesFor(ctx context.Context, voter string, proposalIDs []string) (map[string]governance.VoteChoice, error) {
	out := make(map[string]governance.VoteChoice, len(proposalIDs))
	if len(proposalIDs) == 0 {
		return out, nil
	}

	var recs []types.VoteReceipt
	err := r.db.WithContext(ctx).
		Where("voter = ? AND proposal_id IN ?", voter, proposalIDs).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		out[rec.ProposalID] = governance.VoteChoice(rec.Choice)
	}
	return out, nil
}
