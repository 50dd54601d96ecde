package models

type CreateProfileRequest struct {
	UserID      string              `json:"userId"`
	DisplayName string              `json:"displayName"`
	Bio         string              `json:"bio,omitempty"`
	AvatarURL   string              `json:"avatarUrl,omitempty"`
	Visibility  *VisibilitySettings `json:"visibility,omitempty"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// UpdateVisibilityRequest replaces the whole settings record.
type UpdateVisibilityRequest struct {
	Visibility VisibilitySettings `json:"visibility"`
}

// SectionVisibility reports which sections the viewer may see.
type SectionVisibility struct {
	Streaks      bool `json:"streaks"`
	Achievements bool `json:"achievements"`
	Progress     bool `json:"progress"`
	Followers    bool `json:"followers"`
	Following    bool `json:"following"`
	Goals        bool `json:"goals"`
}

// ProfileView is a profile as one specific viewer is allowed to see it.
// Counts are omitted when the matching section is hidden.
type ProfileView struct {
	UserID         string            `json:"userId"`
	DisplayName    string            `json:"displayName,omitempty"`
	Bio            string            `json:"bio,omitempty"`
	AvatarURL      string            `json:"avatarUrl,omitempty"`
	Relationship   RelationshipKind  `json:"relationship"`
	Sections       SectionVisibility `json:"sections"`
	FollowersCount *int64            `json:"followersCount,omitempty"`
	FollowingCount *int64            `json:"followingCount,omitempty"`
}

type FollowStatusResponse struct {
	TargetUserID string `json:"targetUserId"`
	Status       string `json:"status"` // "following", "not_following", "no_op"
	Message      string `json:"message,omitempty"`
}

type FollowListResult struct {
	UserIDs    []string `json:"userIds"`
	TotalCount int64    `json:"totalCount"`
}

type CreateGoalRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Visibility  GoalVisibility `json:"visibility,omitempty"`
	Partners    []string       `json:"partners,omitempty"`
}

type UpdateGoalRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *GoalStatus     `json:"status,omitempty"`
	Visibility  *GoalVisibility `json:"visibility,omitempty"`
}

type GoalListResult struct {
	Goals      []*Goal `json:"goals"`
	TotalCount int     `json:"totalCount"`
}
