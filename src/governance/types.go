package governance

import "time"

// ProposalStatus is the lifecycle state of a proposal.
type ProposalStatus string

const (
	StatusDraft            ProposalStatus = "draft"
	StatusSubmitted        ProposalStatus = "submitted"
	StatusUnderReview      ProposalStatus = "under_review"
	StatusChangesRequested ProposalStatus = "changes_requested"
	StatusActive           ProposalStatus = "active"
	StatusPassed           ProposalStatus = "passed"
	StatusRejected         ProposalStatus = "rejected"
)

// StatusApproved aliases StatusActive: approval moves a proposal straight
// into the votable state, there is no separate approved-but-idle state.
const StatusApproved = StatusActive

// IsValid reports whether s is a known lifecycle state.
func (s ProposalStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderReview,
		StatusChangesRequested, StatusActive, StatusPassed, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted from s.
func (s ProposalStatus) Terminal() bool {
	return s == StatusPassed || s == StatusRejected
}

func (s ProposalStatus) String() string { return string(s) }

// ProposalType classifies what a proposal asks the asset's holders to decide.
type ProposalType string

const (
	TypeDividend   ProposalType = "dividend"
	TypeRenovation ProposalType = "renovation"
	TypeSale       ProposalType = "sale"
	TypeManagement ProposalType = "management"
	TypeExpansion  ProposalType = "expansion"
)

// DefaultProposalType is the fallback when a payload omits the type.
// Dividend distribution is the lowest-risk action on the platform.
const DefaultProposalType = TypeDividend

// IsValid reports whether t is a known proposal type.
func (t ProposalType) IsValid() bool {
	switch t {
	case TypeDividend, TypeRenovation, TypeSale, TypeManagement, TypeExpansion:
		return true
	}
	return false
}

func (t ProposalType) String() string { return string(t) }

// VisibilityPolicy records why a proposal is public or private. It is set
// at asset configuration time and carried as metadata; visibility checks
// consult only the IsPrivate flag.
type VisibilityPolicy string

const (
	VisibilityAlwaysPublic   VisibilityPolicy = "always_public"
	VisibilityAlwaysPrivate  VisibilityPolicy = "always_private"
	VisibilityCreatorDecides VisibilityPolicy = "creator_decides"
)

// DefaultVisibilityPolicy is the fallback when a payload omits the policy.
const DefaultVisibilityPolicy = VisibilityAlwaysPublic

// IsValid reports whether v is a known visibility policy.
func (v VisibilityPolicy) IsValid() bool {
	switch v {
	case VisibilityAlwaysPublic, VisibilityAlwaysPrivate, VisibilityCreatorDecides:
		return true
	}
	return false
}

func (v VisibilityPolicy) String() string { return string(v) }

// VoteChoice is a voter's position on an active proposal.
type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
	VoteNone    VoteChoice = "none"
)

// IsValid reports whether c can be cast as a ballot. VoteNone is a view
// marker, not a castable choice.
func (c VoteChoice) IsValid() bool {
	return c == VoteFor || c == VoteAgainst
}

func (c VoteChoice) String() string { return string(c) }

// Proposal is the canonical governance record. Live proposals and drafts
// share the table; drafts carry a draft-prefixed identity that is replaced
// on submission.
type Proposal struct {
	ID                 string           `gorm:"primaryKey;size:64" json:"id"`
	Title              string           `gorm:"size:255" json:"title"`
	Description        string           `gorm:"type:text" json:"description"`
	Rationale          string           `gorm:"type:text" json:"rationale"`
	AssetName          string           `gorm:"size:128" json:"assetName"`
	AssetType          string           `gorm:"size:64" json:"assetType"`
	AssetID            string           `gorm:"size:64;index" json:"assetId"`
	ProposalType       ProposalType     `gorm:"size:32;index" json:"proposalType"`
	RequiredAmount     string           `gorm:"size:64" json:"requiredAmount,omitempty"`
	Status             ProposalStatus   `gorm:"size:32;index" json:"status"`
	CreatedDate        time.Time        `json:"createdDate"`
	SubmissionDate     *time.Time       `json:"submissionDate,omitempty"`
	EndDate            *time.Time       `json:"endDate,omitempty"`
	VotingDurationDays int              `gorm:"default:0" json:"votingDurationDays"`
	VotesFor           uint64           `gorm:"default:0" json:"votesFor"`
	VotesAgainst       uint64           `gorm:"default:0" json:"votesAgainst"`
	TotalVotes         uint64           `gorm:"default:0" json:"totalVotes"`
	QuorumRequired     uint64           `gorm:"default:0" json:"quorumRequired"`
	ProposedBy         string           `gorm:"size:128" json:"proposedBy"`
	ProposedByAddress  string           `gorm:"size:128;index" json:"proposedByAddress"`
	IsPrivate          bool             `gorm:"default:false" json:"isPrivate"`
	VisibilityPolicy   VisibilityPolicy `gorm:"size:32" json:"visibilityPolicy"`
	ReviewComments     string           `gorm:"type:text" json:"reviewComments,omitempty"`
	ReviewedBy         string           `gorm:"size:128" json:"reviewedBy,omitempty"`
	ReviewDate         *time.Time       `json:"reviewDate,omitempty"`
}

// Clone returns an independent copy of p. Reads hand out clones so a held
// result can never observe a later mutation half-applied.
func (p Proposal) Clone() Proposal {
	c := p
	c.SubmissionDate = cloneTime(p.SubmissionDate)
	c.EndDate = cloneTime(p.EndDate)
	c.ReviewDate = cloneTime(p.ReviewDate)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// ProposalInput is the raw creation payload. Absent fields arrive as zero
// values and are resolved to documented defaults by NormalizeProposal.
type ProposalInput struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Rationale          string `json:"rationale"`
	AssetName          string `json:"assetName"`
	AssetType          string `json:"assetType"`
	AssetID            string `json:"assetId"`
	ProposalType       string `json:"proposalType"`
	RequiredAmount     string `json:"requiredAmount"`
	VotingDurationDays int    `json:"votingDurationDays"`
	ProposedBy         string `json:"proposedBy"`
	ProposedByAddress  string `json:"proposedByAddress"`
	IsPrivate          bool   `json:"isPrivate"`
	VisibilityPolicy   string `json:"visibilityPolicy"`
}

// ProposalPatch is a partial update for drafts and resubmissions. Nil
// fields are left unchanged.
type ProposalPatch struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Rationale          *string `json:"rationale"`
	AssetName          *string `json:"assetName"`
	AssetType          *string `json:"assetType"`
	AssetID            *string `json:"assetId"`
	ProposalType       *string `json:"proposalType"`
	RequiredAmount     *string `json:"requiredAmount"`
	VotingDurationDays *int    `json:"votingDurationDays"`
	IsPrivate          *bool   `json:"isPrivate"`
	VisibilityPolicy   *string `json:"visibilityPolicy"`
}

// ProposalView is a read-model projection: the canonical record plus the
// derived fields the platform UI shows. UserVoted is filled by the serving
// layer from its per-voter records; the engine leaves it at VoteNone.
type ProposalView struct {
	Proposal
	TimeLeft      string     `json:"timeLeft"`
	ForPercentage float64    `json:"forPercentage"`
	UserVoted     VoteChoice `json:"userVoted"`
}

// HoldingSet is the set of asset identities a viewer holds tokens for.
type HoldingSet map[string]struct{}

// NewHoldingSet builds a HoldingSet from asset identities.
func NewHoldingSet(assetIDs ...string) HoldingSet {
	hs := make(HoldingSet, len(assetIDs))
	for _, id := range assetIDs {
		hs[id] = struct{}{}
	}
	return hs
}

// Contains reports whether the viewer holds tokens of the given asset.
func (h HoldingSet) Contains(assetID string) bool {
	_, ok := h[assetID]
	return ok
}
