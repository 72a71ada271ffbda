package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ProposalInput)
		wantField string
	}{
		{"empty payload is fine", func(in *ProposalInput) { *in = ProposalInput{} }, ""},
		{"complete payload is fine", func(in *ProposalInput) {}, ""},
		{"unknown proposal type", func(in *ProposalInput) { in.ProposalType = "liquidation" }, "proposalType"},
		{"unknown visibility policy", func(in *ProposalInput) { in.VisibilityPolicy = "invite_only" }, "visibilityPolicy"},
		{"negative duration", func(in *ProposalInput) { in.VotingDurationDays = -3 }, "votingDurationDays"},
		{"private with always_public", func(in *ProposalInput) {
			in.IsPrivate = true
			in.VisibilityPolicy = "always_public"
		}, "visibilityPolicy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := renovationInput()
			tt.mutate(&in)

			err := ValidateInput(in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestNormalizeProposal_EmptyPayloadIsTotal(t *testing.T) {
	p := NormalizeProposal(ProposalInput{})

	assert.Equal(t, StatusDraft, p.Status)
	assert.Equal(t, DefaultProposalType, p.ProposalType)
	assert.Equal(t, DefaultVisibilityPolicy, p.VisibilityPolicy)
	assert.Zero(t, p.VotingDurationDays)
	assert.Zero(t, p.VotesFor)
	assert.Zero(t, p.TotalVotes)
	assert.Empty(t, p.Title)
	assert.False(t, p.IsPrivate)
}

func TestNormalizeProposal_CoercesGarbageEnums(t *testing.T) {
	p := NormalizeProposal(ProposalInput{
		ProposalType:     "liquidation",
		VisibilityPolicy: "invite_only",
	})
	assert.Equal(t, DefaultProposalType, p.ProposalType)
	assert.Equal(t, DefaultVisibilityPolicy, p.VisibilityPolicy)
}

func TestNormalizeProposal_PrivateWithoutPolicy(t *testing.T) {
	p := NormalizeProposal(ProposalInput{IsPrivate: true})
	assert.Equal(t, VisibilityCreatorDecides, p.VisibilityPolicy,
		"a private record never pairs with always_public")

	p = NormalizeProposal(ProposalInput{IsPrivate: true, VisibilityPolicy: "always_private"})
	assert.Equal(t, VisibilityAlwaysPrivate, p.VisibilityPolicy)
}

func TestNormalizeProposal_ClampsNegativeDuration(t *testing.T) {
	p := NormalizeProposal(ProposalInput{VotingDurationDays: -5})
	assert.Zero(t, p.VotingDurationDays)
}

func TestApplyPatch(t *testing.T) {
	base := NormalizeProposal(renovationInput())

	t.Run("nil fields leave the record alone", func(t *testing.T) {
		p := base
		applyPatch(&p, ProposalPatch{})
		assert.Equal(t, base, p)
	})

	t.Run("invalid enum literals are ignored", func(t *testing.T) {
		p := base
		bad := "liquidation"
		applyPatch(&p, ProposalPatch{ProposalType: &bad})
		assert.Equal(t, base.ProposalType, p.ProposalType)
	})

	t.Run("negative duration clamps", func(t *testing.T) {
		p := base
		days := -10
		applyPatch(&p, ProposalPatch{VotingDurationDays: &days})
		assert.Zero(t, p.VotingDurationDays)
	})

	t.Run("flipping private fixes a public policy", func(t *testing.T) {
		p := base
		require.Equal(t, VisibilityAlwaysPublic, p.VisibilityPolicy)
		private := true
		applyPatch(&p, ProposalPatch{IsPrivate: &private})
		assert.True(t, p.IsPrivate)
		assert.Equal(t, VisibilityCreatorDecides, p.VisibilityPolicy)
	})
}
