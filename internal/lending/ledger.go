package lending

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/store"
)

// Points awarded by state-machine transitions. Increment-only, never reversed.
const (
	uploadPoints  = 1
	approvePoints = 5
)

// Ledger applies reward-counter deltas after a book transition has committed.
// A failed award never fails the transition that triggered it: the book state
// is already the source of truth, so the miss is logged and parked as a
// PendingAward for the reconciler to retry.
type Ledger struct {
	Users  store.UserStore
	Awards store.AwardStore
}

func NewLedger(users store.UserStore, awards store.AwardStore) *Ledger {
	return &Ledger{Users: users, Awards: awards}
}

func (l *Ledger) Award(ctx context.Context, userID primitive.ObjectID, delta models.UserDelta, reason string) {
	if delta.IsZero() {
		return
	}

	err := l.Users.ApplyDelta(ctx, userID, delta)
	if err == nil {
		return
	}

	log.Printf("ledger: award %q for user %s failed, parking for reconciliation: %v", reason, userID.Hex(), err)

	award := models.PendingAward{
		UserID:    userID,
		Delta:     delta,
		Reason:    reason,
		Timestamp: time.Now(),
	}
	if l.Awards == nil {
		return
	}
	if err := l.Awards.Add(ctx, award); err != nil {
		log.Printf("ledger: failed to park award %q for user %s: %v", reason, userID.Hex(), err)
	}
}
