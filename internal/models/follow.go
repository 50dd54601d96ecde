package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FollowEdge is a directed relationship. At most one edge exists per ordered
// (followerId, followingId) pair; mutuality means both directions exist.
type FollowEdge struct {
	ID          bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FollowerID  string        `json:"followerId" bson:"followerId"`
	FollowingID string        `json:"followingId" bson:"followingId"`
	CreatedAt   int           `json:"createdAt" bson:"createdAt"`
}
