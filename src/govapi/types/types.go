package types

import "time"

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null;uniqueIndex"`
	Value string `gorm:"size:256;not null"`
}

// Platform members. Admin flag gates the review endpoints.
type Member struct {
	Address string `gorm:"primaryKey;size:128"`
	Name    string `gorm:"size:64"`
	IsAdmin bool   `gorm:"default:false"`
}

// Holding is one member's token balance in one asset. The balance is the
// member's vote weight on that asset's proposals.
type Holding struct {
	AssetID string `gorm:"primaryKey;size:64"`
	Address string `gorm:"primaryKey;size:128"`
	Balance uint64 `gorm:"not null;default:0"`
}

// VoteReceipt pins one ballot per member per proposal. The composite key
// is the whole point: a second INSERT for the same pair fails before the
// tally is ever touched.
type VoteReceipt struct {
	ProposalID string `gorm:"primaryKey;size:64"`
	Voter      string `gorm:"primaryKey;size:128"`
	Choice     string `gorm:"size:16;not null"`
	Weight     uint64 `gorm:"not null"`
	CastAt     time.Time
}
