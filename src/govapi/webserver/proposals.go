package webserver

import (
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

type Proposals struct {
	engine    *governance.Engine
	receipts  ReceiptStore
	holdings  HoldingsSource
	sanitizer *bluemonday.Policy
}

func NewProposals(engine *governance.Engine, receipts ReceiptStore, holdings HoldingsSource) Proposals {
	// Strict sanitizer for member-authored markdown content.
	sanitizer := bluemonday.StrictPolicy()
	sanitizer.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	sanitizer.AllowElements("ul", "ol", "li")
	sanitizer.AllowAttrs("href").OnElements("a")
	sanitizer.RequireParseableURLs(true)
	sanitizer.AddTargetBlankToFullyQualifiedLinks(true)
	sanitizer.RequireNoFollowOnLinks(true)

	return Proposals{engine: engine, receipts: receipts, holdings: holdings, sanitizer: sanitizer}
}

func (h Proposals) sanitizeInput(in *governance.ProposalInput) {
	in.Title = html.EscapeString(strings.TrimSpace(in.Title))
	in.Description = h.sanitizer.Sanitize(in.Description)
	in.Rationale = h.sanitizer.Sanitize(in.Rationale)
	in.AssetName = html.EscapeString(strings.TrimSpace(in.AssetName))
	in.AssetType = html.EscapeString(strings.TrimSpace(in.AssetType))
}

func (h Proposals) sanitizePatch(patch *governance.ProposalPatch) {
	if patch.Title != nil {
		t := html.EscapeString(strings.TrimSpace(*patch.Title))
		patch.Title = &t
	}
	if patch.Description != nil {
		d := h.sanitizer.Sanitize(*patch.Description)
		patch.Description = &d
	}
	if patch.Rationale != nil {
		r := h.sanitizer.Sanitize(*patch.Rationale)
		patch.Rationale = &r
	}
	if patch.AssetName != nil {
		n := html.EscapeString(strings.TrimSpace(*patch.AssetName))
		patch.AssetName = &n
	}
	if patch.AssetType != nil {
		at := html.EscapeString(strings.TrimSpace(*patch.AssetType))
		patch.AssetType = &at
	}
}

// views projects proposals into the UI read model, overlaying the
// viewer's own ballots from the receipt table.
func (h Proposals) views(c *gin.Context, ps []governance.Proposal) []governance.ProposalView {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	choices, err := h.receipts.ChoicesFor(c, c.GetString("addr"), ids)
	if err != nil {
		log.Printf("receipts lookup for %s: %v", c.GetString("addr"), err)
		choices = nil
	}

	out := make([]governance.ProposalView, len(ps))
	for i, p := range ps {
		v := h.engine.ViewOf(p)
		if choice, ok := choices[p.ID]; ok {
			v.UserVoted = choice
		}
		out[i] = v
	}
	return out
}

// CreateDraft stores an incomplete proposal. Drafts skip content
// validation entirely; they only have to belong to the caller.
func (h Proposals) CreateDraft(c *gin.Context) {
	var in governance.ProposalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.sanitizeInput(&in)
	in.ProposedByAddress = c.GetString("addr")

	draft, err := h.engine.SaveDraft(in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.engine.ViewOf(draft))
}

func (h Proposals) ListDrafts(c *gin.Context) {
	drafts, err := h.engine.GetDraftsByAuthor(c.GetString("addr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": h.views(c, drafts)})
}

// owned fetches a record and enforces that the caller authored it.
// Drafts and resubmissions are author-only surfaces.
func (h Proposals) owned(c *gin.Context, id string) (governance.Proposal, bool) {
	p, err := h.engine.GetProposalByID(id)
	if err != nil {
		writeError(c, err)
		return governance.Proposal{}, false
	}
	if p.ProposedByAddress != c.GetString("addr") {
		c.JSON(http.StatusForbidden, gin.H{"err": "not the proposal author"})
		return governance.Proposal{}, false
	}
	return p, true
}

func (h Proposals) UpdateDraft(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.owned(c, id); !ok {
		return
	}

	var patch governance.ProposalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.sanitizePatch(&patch)

	p, err := h.engine.UpdateDraft(id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.engine.ViewOf(p))
}

func (h Proposals) DeleteDraft(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.owned(c, id); !ok {
		return
	}
	if err := h.engine.DeleteDraft(id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Proposals) SubmitDraft(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.owned(c, id); !ok {
		return
	}

	p, err := h.engine.SubmitDraft(id)
	if err != nil {
		writeError(c, err)
		return
	}

	proposalsSubmitted.Inc()
	log.Printf("proposal %s submitted by %s (was %s)", p.ID, c.GetString("addr"), id)
	c.JSON(http.StatusOK, h.engine.ViewOf(p))
}

// Create submits a proposal in one step for callers that skip drafting.
func (h Proposals) Create(c *gin.Context) {
	var in governance.ProposalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.sanitizeInput(&in)
	in.ProposedByAddress = c.GetString("addr")

	p, err := h.engine.AddProposal(in)
	if err != nil {
		writeError(c, err)
		return
	}

	proposalsSubmitted.Inc()
	log.Printf("proposal %s submitted by %s", p.ID, c.GetString("addr"))
	c.JSON(http.StatusCreated, h.engine.ViewOf(p))
}

// List serves the voting board: open and decided proposals the viewer may
// see, with private ones gated by their holdings.
func (h Proposals) List(c *gin.Context) {
	holdings, err := h.holdings.AssetsOf(c, c.GetString("addr"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	ps, err := h.engine.GetProposalsForVoting(holdings)
	if err != nil {
		writeError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		ps = filterProposals(ps, func(p governance.Proposal) bool {
			return p.Status == governance.ProposalStatus(status)
		})
	}
	if pt := c.Query("type"); pt != "" {
		ps = filterProposals(ps, func(p governance.Proposal) bool {
			return p.ProposalType == governance.ProposalType(pt)
		})
	}

	c.JSON(http.StatusOK, gin.H{"proposals": h.views(c, ps)})
}

// Mine lists everything the caller has authored, across all states.
func (h Proposals) Mine(c *gin.Context) {
	ps, err := h.engine.GetProposalsByAuthor(c.GetString("addr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": h.views(c, ps)})
}

// Get serves one proposal. Records the viewer may not see, drafts of
// other authors included, answer 404 rather than 403: a private proposal
// should not even be confirmed to exist.
func (h Proposals) Get(c *gin.Context) {
	id := c.Param("id")
	addr := c.GetString("addr")

	p, err := h.engine.GetProposalByID(id)
	if err != nil {
		writeError(c, err)
		return
	}

	if p.Status == governance.StatusDraft && p.ProposedByAddress != addr {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal " + id + " not found"})
		return
	}

	visible, err := visibleTo(c, h.holdings, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if !visible && p.ProposedByAddress != addr {
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal " + id + " not found"})
		return
	}

	view := h.engine.ViewOf(p)
	if choice, ok, err := h.receipts.Choice(c, p.ID, addr); err == nil && ok {
		view.UserVoted = choice
	}
	c.JSON(http.StatusOK, view)
}

// Resubmit returns a changes_requested proposal to the review queue with
// the author's revisions applied.
func (h Proposals) Resubmit(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.owned(c, id); !ok {
		return
	}

	var patch governance.ProposalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.sanitizePatch(&patch)

	p, err := h.engine.ResubmitProposal(id, patch)
	if err != nil {
		writeError(c, err)
		return
	}

	log.Printf("proposal %s resubmitted by %s", p.ID, c.GetString("addr"))
	c.JSON(http.StatusOK, h.engine.ViewOf(p))
}

func filterProposals(ps []governance.Proposal, keep func(governance.Proposal) bool) []governance.Proposal {
	out := ps[:0]
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
