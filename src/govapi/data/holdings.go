package data

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	holdingsPrefix = "holdings:"
	holdingsTTL    = time.Minute
)

// Holdings reads member token balances. A member's balance in an asset is
// their vote weight on that asset's proposals and their ticket into its
// private proposals. Balances are cached per address with a short TTL;
// staleness is bounded by expiry, and a ballot's weight is frozen into its
// receipt at cast time either way.
type Holdings struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHoldings(db *gorm.DB, rdb *redis.Client) Holdings {
	return Holdings{db: db, rdb: rdb}
}

// balances loads the address's full balance map, through the cache.
func (h Holdings) balances(ctx context.Context, address string) (map[string]uint64, error) {
	key := holdingsPrefix + address
	if h.rdb != nil {
		if raw, err := h.rdb.Get(ctx, key).Result(); err == nil {
			var m map[string]uint64
			if json.Unmarshal([]byte(raw), &m) == nil {
				return m, nil
			}
		}
	}

	var rows []types.Holding
	if err := h.db.WithContext(ctx).Where("address = ?", address).Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]uint64, len(rows))
	for _, row := range rows {
		m[row.AssetID] = row.Balance
	}

	if h.rdb != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := h.rdb.Set(ctx, key, raw, holdingsTTL).Err(); err != nil {
				log.Printf("holdings: cache %s: %v", address, err)
			}
		}
	}
	return m, nil
}

// Balance returns the member's token balance in one asset. An unknown
// pair reads as zero, not as an error.
func (h Holdings) Balance(ctx context.Context, address, assetID string) (uint64, error) {
	m, err := h.balances(ctx, address)
	if err != nil {
		return 0, err
	}
	return m[assetID], nil
}

// AssetsOf returns the set of assets the member holds a positive balance
// in.
func (h Holdings) AssetsOf(ctx context.Context, address string) (governance.HoldingSet, error) {
	m, err := h.balances(ctx, address)
	if err != nil {
		return nil, err
	}

	set := make(governance.HoldingSet, len(m))
	for assetID, balance := range m {
		if balance > 0 {
			set[assetID] = struct{}{}
		}
	}
	return set, nil
}
