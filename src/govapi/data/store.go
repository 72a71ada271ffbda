package data

import (
	"errors"

	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"gorm.io/gorm"
)

// ProposalStore backs the governance engine with the proposals table.
// Every read scans into a fresh struct, which satisfies the engine's
// independent-copies requirement.
type ProposalStore struct {
	db *gorm.DB
}

func NewProposalStore(db *gorm.DB) *ProposalStore {
	return &ProposalStore{db: db}
}

func (s *ProposalStore) Get(id string) (governance.Proposal, bool, error) {
	var p governance.Proposal
	err := s.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return governance.Proposal{}, false, nil
	}
	if err != nil {
		return governance.Proposal{}, false, err
	}
	return p, true, nil
}

func (s *ProposalStore) Put(p governance.Proposal) error {
	return s.db.Save(&p).Error
}

func (s *ProposalStore) Delete(id string) error {
	return s.db.Delete(&governance.Proposal{}, "id = ?", id).Error
}

func (s *ProposalStore) List() ([]governance.Proposal, error) {
	var ps []governance.Proposal
	if err := s.db.Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}
