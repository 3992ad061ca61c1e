package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"time"
)

// PendingAward records a points delta that could not be applied when its book
// transition committed. The reconciler daemon retries these until they stick.
type PendingAward struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Delta     UserDelta          `bson:"delta" json:"delta"`
	Reason    string             `bson:"reason" json:"reason"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Applied   bool               `bson:"applied" json:"applied"`
}

const (
	AwardEntity = "award"
)
