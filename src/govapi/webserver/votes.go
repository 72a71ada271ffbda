package webserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/data"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
)

// ReceiptStore is the one-ballot-per-member ledger. Record must fail with
// data.ErrAlreadyVoted on a duplicate before the tally is touched.
type ReceiptStore interface {
	Record(ctx context.Context, proposalID, voter string, choice governance.VoteChoice, weight uint64) error
	Revoke(ctx context.Context, proposalID, voter string) error
	Choice(ctx context.Context, proposalID, voter string) (governance.VoteChoice, bool, error)
	ChoicesFor(ctx context.Context, voter string, proposalIDs []string) (map[string]governance.VoteChoice, error)
}

// HoldingsSource reads member token balances, which double as vote weight
// and as the ticket into private proposals.
type HoldingsSource interface {
	Balance(ctx context.Context, address, assetID string) (uint64, error)
	AssetsOf(ctx context.Context, address string) (governance.HoldingSet, error)
}

// visibleTo applies the holdings gate for the authenticated viewer.
func visibleTo(c *gin.Context, holdings HoldingsSource, p governance.Proposal) (bool, error) {
	if !p.IsPrivate {
		return true, nil
	}
	set, err := holdings.AssetsOf(c, c.GetString("addr"))
	if err != nil {
		return false, err
	}
	return governance.IsVisible(p, set), nil
}

type Votes struct {
	engine   *governance.Engine
	receipts ReceiptStore
	holdings HoldingsSource
}

func NewVotes(engine *governance.Engine, receipts ReceiptStore, holdings HoldingsSource) Votes {
	return Votes{engine: engine, receipts: receipts, holdings: holdings}
}

// Cast records the caller's ballot on an active proposal, weighted by
// their token balance in the proposal's asset. The receipt insert comes
// first: its key constraint is what makes double voting impossible, so a
// ballot that later fails to land on the tally revokes the receipt.
func (v Votes) Cast(c *gin.Context) {
	var req struct {
		ProposalID string `json:"proposalId" binding:"required"`
		Choice     string `json:"choice" binding:"required,oneof=for against"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	addr := c.GetString("addr")

	p, err := v.engine.GetProposalByID(req.ProposalID)
	if err != nil {
		writeError(c, err)
		return
	}

	visible, err := visibleTo(c, v.holdings, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal " + req.ProposalID + " not found"})
		return
	}

	weight, err := v.holdings.Balance(c, addr, p.AssetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if weight == 0 {
		c.JSON(http.StatusForbidden, gin.H{"err": "no voting power for this asset"})
		return
	}

	choice := governance.VoteChoice(req.Choice)
	if err := v.receipts.Record(c, p.ID, addr, choice, weight); err != nil {
		if errors.Is(err, data.ErrAlreadyVoted) {
			c.JSON(http.StatusConflict, gin.H{"err": "already voted on this proposal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	if !v.engine.VoteOnProposal(p.ID, choice, weight) {
		if err := v.receipts.Revoke(c, p.ID, addr); err != nil {
			log.Printf("revoke receipt %s/%s: %v", p.ID, addr, err)
		}
		c.JSON(http.StatusConflict, gin.H{"err": "voting is not open for this proposal"})
		return
	}

	votesCast.Inc()

	updated, err := v.engine.GetProposalByID(p.ID)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"weight": weight})
		return
	}
	if updated.Status.Terminal() {
		quorumResolutions.WithLabelValues(string(updated.Status)).Inc()
	}
	view := v.engine.ViewOf(updated)
	view.UserVoted = choice
	c.JSON(http.StatusCreated, view)
}

// Results reports the live tally for one proposal, with the caller's own
// ballot overlaid.
func (v Votes) Results(c *gin.Context) {
	id := c.Param("id")
	addr := c.GetString("addr")

	p, err := v.engine.GetProposalByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if p.Status == governance.StatusDraft {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal " + id + " not found"})
		return
	}

	visible, err := visibleTo(c, v.holdings, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if !visible {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal " + id + " not found"})
		return
	}

	view := v.engine.ViewOf(p)
	if choice, ok, err := v.receipts.Choice(c, p.ID, addr); err == nil && ok {
		view.UserVoted = choice
	}

	c.JSON(http.StatusOK, gin.H{
		"proposalId":     p.ID,
		"status":         p.Status,
		"votesFor":       p.VotesFor,
		"votesAgainst":   p.VotesAgainst,
		"totalVotes":     p.TotalVotes,
		"quorumRequired": p.QuorumRequired,
		"forPercentage":  view.ForPercentage,
		"timeLeft":       view.TimeLeft,
		"userVoted":      view.UserVoted,
	})
}
