package governance

// IsVisible decides whether a viewer with the given holdings may see (and
// therefore vote on) a proposal. Public proposals are visible to everyone;
// private proposals only to holders of the proposal's asset.
//
// Only the IsPrivate flag is consulted here. VisibilityPolicy explains why
// the flag is set and is kept consistent with it by whoever configures the
// asset, never re-derived at query time.
func IsVisible(p Proposal, holdings HoldingSet) bool {
	if !p.IsPrivate {
		return true
	}
	return holdings.Contains(p.AssetID)
}
