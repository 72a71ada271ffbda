package data

import (
	"context"
	"log"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/governance"
	"github.com/redis/go-redis/v9"
)

const (
	noncePrefix  = "nonce:"
	streamEvents = "cf1:governance:events"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func SetNonce(ctx context.Context, rdb *redis.Client, addr, nonce string) error {
	return rdb.Set(ctx, noncePrefix+addr, nonce, 5*time.Minute).Err()
}

// ConfirmNonce marks an outstanding challenge as verified. The wallet
// verifier calls this once it has checked the holder's signature; Verify
// then trades the confirmed nonce for a session token.
func ConfirmNonce(ctx context.Context, rdb *redis.Client, addr string) error {
	return rdb.Set(ctx, noncePrefix+addr, "CONFIRMED", 5*time.Minute).Err()
}

func GetAndDelNonce(ctx context.Context, rdb *redis.Client, addr string) (string, error) {
	return rdb.GetDel(ctx, noncePrefix+addr).Result()
}

// PublishEvent appends a lifecycle event to the governance stream for
// downstream consumers (notification fanout, analytics).
func PublishEvent(ctx context.Context, rdb *redis.Client, ev governance.Event) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamEvents,
		Values: map[string]interface{}{
			"name":          string(ev.Name),
			"proposal_id":   ev.ProposalID,
			"title":         ev.Title,
			"status":        string(ev.Status),
			"reviewer":      ev.Reviewer,
			"comments":      ev.Comments,
			"votes_for":     ev.VotesFor,
			"votes_against": ev.VotesAgainst,
			"total_votes":   ev.TotalVotes,
			"for_pct":       ev.ForPercentage,
			"at":            ev.At.Unix(),
		},
	}).Result()
	return err
}

// StreamEmitter forwards engine events onto the redis stream. Delivery is
// fire-and-forget: failures are logged and dropped, never retried, and
// never surface to the lifecycle operation that produced the event.
type StreamEmitter struct {
	rdb *redis.Client
}

func NewStreamEmitter(rdb *redis.Client) StreamEmitter {
	return StreamEmitter{rdb: rdb}
}

func (e StreamEmitter) Emit(ev governance.Event) {
	if err := PublishEvent(context.Background(), e.rdb, ev); err != nil {
		log.Printf("events: publish %s for %s: %v", ev.Name, ev.ProposalID, err)
	}
}
