package daemon

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anjalik06/bookshare-backend/internal/store"
)

const reconcileInterval = 30 * time.Second

// AwardReconciler retries point awards that failed after their book
// transition committed. Awards are increment-only, so replaying an
// unapplied record is safe; once applied it is marked and never retried.
type AwardReconciler struct {
	Awards store.AwardStore
	Users  store.UserStore
}

func (a *AwardReconciler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(reconcileInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.Run(ctx)
			}
		}
	}()
}

// Run applies every unapplied pending award once. Split out from the loop so
// tests can drive it directly.
func (a *AwardReconciler) Run(ctx context.Context) {
	awards, err := a.Awards.ListUnapplied(ctx)
	if err != nil {
		log.Printf("award reconciler: listing pending awards failed: %v", err)
		return
	}

	for _, award := range awards {
		err := a.Users.ApplyDelta(ctx, award.UserID, award.Delta)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("award reconciler: applying award %s failed: %v", award.ID.Hex(), err)
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			// User record is gone; retrying will never succeed.
			log.Printf("award reconciler: dropping award %s for missing user %s", award.ID.Hex(), award.UserID.Hex())
		}
		if err := a.Awards.MarkApplied(ctx, award.ID); err != nil {
			log.Printf("award reconciler: marking award %s applied failed: %v", award.ID.Hex(), err)
		}
	}
}
