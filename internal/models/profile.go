package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// VisibilitySettings is a fixed-shape record: one strongly typed field per
// toggle. A zero value denies everything (fail closed).
type VisibilitySettings struct {
	ProfileVisibility ProfileVisibility `json:"profileVisibility" bson:"profileVisibility"`
	ShowStreaks       bool              `json:"showStreaks" bson:"showStreaks"`
	ShowAchievements  bool              `json:"showAchievements" bson:"showAchievements"`
	ShowProgress      bool              `json:"showProgress" bson:"showProgress"`
	ShowFollowers     bool              `json:"showFollowers" bson:"showFollowers"`
	ShowFollowing     bool              `json:"showFollowing" bson:"showFollowing"`
	ShowGoals         bool              `json:"showGoals" bson:"showGoals"`
}

// EffectiveProfileVisibility treats an absent value as private.
func (s VisibilitySettings) EffectiveProfileVisibility() ProfileVisibility {
	if s.ProfileVisibility == ProfileVisibilityPublic {
		return ProfileVisibilityPublic
	}
	return ProfileVisibilityPrivate
}

// Section returns the raw toggle for one section. Unknown sections deny.
func (s VisibilitySettings) Section(section ProfileSection) bool {
	switch section {
	case SectionStreaks:
		return s.ShowStreaks
	case SectionAchievements:
		return s.ShowAchievements
	case SectionProgress:
		return s.ShowProgress
	case SectionFollowers:
		return s.ShowFollowers
	case SectionFollowing:
		return s.ShowFollowing
	case SectionGoals:
		return s.ShowGoals
	default:
		return false
	}
}

func DefaultVisibilitySettings() VisibilitySettings {
	return VisibilitySettings{
		ProfileVisibility: ProfileVisibilityPublic,
		ShowStreaks:       true,
		ShowAchievements:  true,
		ShowProgress:      true,
		ShowFollowers:     true,
		ShowFollowing:     true,
		ShowGoals:         true,
	}
}

type Metadata struct {
	CreatedAt int `json:"createdAt" bson:"createdAt"`
	UpdatedAt int `json:"updatedAt" bson:"updatedAt"`
}

type Profile struct {
	ID             bson.ObjectID      `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	DisplayName    string             `json:"displayName,omitempty" bson:"displayName,omitempty"`
	Bio            string             `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL      string             `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Visibility     VisibilitySettings `json:"visibility" bson:"visibility"`
	FollowersCount int64              `json:"followersCount" bson:"followersCount"`
	FollowingCount int64              `json:"followingCount" bson:"followingCount"`
	Metadata       Metadata           `json:"metadata" bson:"metadata"`
}
