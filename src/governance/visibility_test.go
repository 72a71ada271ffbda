package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVisible(t *testing.T) {
	public := Proposal{AssetID: "asset-sunset-gardens", IsPrivate: false}
	private := Proposal{AssetID: "asset-sunset-gardens", IsPrivate: true}

	holder := NewHoldingSet("asset-sunset-gardens")
	otherHolder := NewHoldingSet("asset-harbor-lofts")

	assert.True(t, IsVisible(public, nil), "public needs no holdings")
	assert.True(t, IsVisible(public, otherHolder))

	assert.False(t, IsVisible(private, nil))
	assert.False(t, IsVisible(private, otherHolder), "holding a different asset does not help")
	assert.True(t, IsVisible(private, holder))
}

func TestIsVisible_IgnoresPolicyMetadata(t *testing.T) {
	// The policy explains the flag; only the flag gates access.
	p := Proposal{
		AssetID:          "asset-sunset-gardens",
		IsPrivate:        false,
		VisibilityPolicy: VisibilityAlwaysPrivate,
	}
	assert.True(t, IsVisible(p, nil))

	p.IsPrivate = true
	p.VisibilityPolicy = VisibilityCreatorDecides
	assert.False(t, IsVisible(p, nil))
	assert.True(t, IsVisible(p, NewHoldingSet("asset-sunset-gardens")))
}

func TestHoldingSet(t *testing.T) {
	hs := NewHoldingSet("asset-a", "asset-b")
	assert.True(t, hs.Contains("asset-a"))
	assert.True(t, hs.Contains("asset-b"))
	assert.False(t, hs.Contains("asset-c"))
	assert.False(t, HoldingSet(nil).Contains("asset-a"))
}
