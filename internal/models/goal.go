package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Goal struct {
	ID            bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string         `json:"userId" bson:"userId"`
	Title         string         `json:"title" bson:"title"`
	Description   string         `json:"description,omitempty" bson:"description,omitempty"`
	Status        GoalStatus     `json:"status" bson:"status"`
	Visibility    GoalVisibility `json:"visibility" bson:"visibility"`
	Partners      []string       `json:"partners,omitempty" bson:"partners,omitempty"`
	CurrentStreak int            `json:"currentStreak" bson:"currentStreak"`
	LongestStreak int            `json:"longestStreak" bson:"longestStreak"`
	Metadata      Metadata       `json:"metadata" bson:"metadata"`
}

func (g *Goal) HasPartner(userID string) bool {
	for _, p := range g.Partners {
		if p == userID {
			return true
		}
	}
	return false
}
