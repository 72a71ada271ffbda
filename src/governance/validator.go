package governance

import "strings"

// ValidateInput rejects structurally invalid creation payloads. Absent
// fields are acceptable (NormalizeProposal gives them defaults); fields
// the caller did supply must parse into the closed enumerations and
// numeric ranges the record requires.
func ValidateInput(in ProposalInput) error {
	if in.ProposalType != "" && !ProposalType(in.ProposalType).IsValid() {
		return errValidation("proposalType", "unknown proposal type: "+in.ProposalType)
	}
	if in.VisibilityPolicy != "" && !VisibilityPolicy(in.VisibilityPolicy).IsValid() {
		return errValidation("visibilityPolicy", "unknown visibility policy: "+in.VisibilityPolicy)
	}
	if in.VotingDurationDays < 0 {
		return errValidation("votingDurationDays", "must not be negative")
	}
	if in.IsPrivate && VisibilityPolicy(in.VisibilityPolicy) == VisibilityAlwaysPublic {
		return errValidation("visibilityPolicy", "a private proposal cannot use the always_public policy")
	}
	return nil
}

// NormalizeProposal coerces a raw payload into a total, well-typed record.
// Every field gets an explicit default when absent: numerics zero, strings
// empty, enums their first variant. A private proposal with no stated
// policy is recorded as creator_decides so the stored record never pairs
// IsPrivate with always_public.
func NormalizeProposal(in ProposalInput) Proposal {
	pt := ProposalType(in.ProposalType)
	if !pt.IsValid() {
		pt = DefaultProposalType
	}

	vp := VisibilityPolicy(in.VisibilityPolicy)
	if !vp.IsValid() {
		vp = DefaultVisibilityPolicy
		if in.IsPrivate {
			vp = VisibilityCreatorDecides
		}
	}

	days := in.VotingDurationDays
	if days < 0 {
		days = 0
	}

	return Proposal{
		Title:              in.Title,
		Description:        in.Description,
		Rationale:          in.Rationale,
		AssetName:          in.AssetName,
		AssetType:          in.AssetType,
		AssetID:            in.AssetID,
		ProposalType:       pt,
		RequiredAmount:     in.RequiredAmount,
		Status:             StatusDraft,
		VotingDurationDays: days,
		ProposedBy:         in.ProposedBy,
		ProposedByAddress:  in.ProposedByAddress,
		IsPrivate:          in.IsPrivate,
		VisibilityPolicy:   vp,
	}
}

// requireSubmittable checks the fields a proposal must carry to enter
// review. Whitespace-only values do not count.
func requireSubmittable(p Proposal) error {
	if strings.TrimSpace(p.Title) == "" {
		return errValidation("title", "title is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errValidation("description", "description is required")
	}
	return nil
}

// applyPatch merges a partial update into p. Nil fields are untouched.
// Enum fields apply only when the supplied literal is valid, so a patch
// can never corrupt a stored record; negative durations clamp to zero.
func applyPatch(p *Proposal, patch ProposalPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Rationale != nil {
		p.Rationale = *patch.Rationale
	}
	if patch.AssetName != nil {
		p.AssetName = *patch.AssetName
	}
	if patch.AssetType != nil {
		p.AssetType = *patch.AssetType
	}
	if patch.AssetID != nil {
		p.AssetID = *patch.AssetID
	}
	if patch.ProposalType != nil {
		if pt := ProposalType(*patch.ProposalType); pt.IsValid() {
			p.ProposalType = pt
		}
	}
	if patch.RequiredAmount != nil {
		p.RequiredAmount = *patch.RequiredAmount
	}
	if patch.VotingDurationDays != nil {
		days := *patch.VotingDurationDays
		if days < 0 {
			days = 0
		}
		p.VotingDurationDays = days
	}
	if patch.IsPrivate != nil {
		p.IsPrivate = *patch.IsPrivate
	}
	if patch.VisibilityPolicy != nil {
		if vp := VisibilityPolicy(*patch.VisibilityPolicy); vp.IsValid() {
			p.VisibilityPolicy = vp
		}
	}
	if p.IsPrivate && p.VisibilityPolicy == VisibilityAlwaysPublic {
		p.VisibilityPolicy = VisibilityCreatorDecides
	}
}
