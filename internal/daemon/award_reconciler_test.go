package daemon_test

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anjalik06/bookshare-backend/internal/daemon"
	"github.com/anjalik06/bookshare-backend/internal/models"
	"github.com/anjalik06/bookshare-backend/internal/store"
)

func TestAwardReconciler_Run(t *testing.T) {
	users := store.NewMemoryUserStore()
	awards := store.NewMemoryAwardStore()
	ctx := context.Background()

	user := users.Put(models.User{Name: "Ada"})

	awards.Add(ctx, models.PendingAward{
		UserID:    user.ID,
		Delta:     models.UserDelta{Points: 5, BooksShared: 1},
		Reason:    "loan approval (owner)",
		Timestamp: time.Now(),
	})

	r := &daemon.AwardReconciler{Awards: awards, Users: users}
	r.Run(ctx)

	got, _ := users.Get(ctx, user.ID)
	if got.Points != 5 || got.BooksShared != 1 {
		t.Errorf("award not applied: %+v", got)
	}

	pending, _ := awards.ListUnapplied(ctx)
	if len(pending) != 0 {
		t.Errorf("expected award marked applied, %d still pending", len(pending))
	}

	// Running again must not double-apply.
	r.Run(ctx)
	got, _ = users.Get(ctx, user.ID)
	if got.Points != 5 {
		t.Errorf("award applied twice: %+v", got)
	}
}

func TestAwardReconciler_DropsAwardsForMissingUsers(t *testing.T) {
	users := store.NewMemoryUserStore()
	awards := store.NewMemoryAwardStore()
	ctx := context.Background()

	awards.Add(ctx, models.PendingAward{
		UserID:    primitive.NewObjectID(),
		Delta:     models.UserDelta{Points: 1},
		Timestamp: time.Now(),
	})

	r := &daemon.AwardReconciler{Awards: awards, Users: users}
	r.Run(ctx)

	pending, _ := awards.ListUnapplied(ctx)
	if len(pending) != 0 {
		t.Errorf("award for a deleted user should be dropped, %d still pending", len(pending))
	}
}
