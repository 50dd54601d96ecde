package models

type EventType string

const (
	EventTypeProfileCreated    EventType = "profile.created"
	EventTypeProfileUpdated    EventType = "profile.updated"
	EventTypeVisibilityUpdated EventType = "visibility.updated"
	EventTypeFollowCreated     EventType = "follow.created"
	EventTypeFollowRemoved     EventType = "follow.removed"
	EventTypeGoalCreated       EventType = "goal.created"
	EventTypeGoalUpdated       EventType = "goal.updated"
	EventTypeGoalDeleted       EventType = "goal.deleted"
)

type SocialEvent struct {
	EventType     EventType `json:"eventType"`
	UserID        string    `json:"userId"`
	TargetUserID  string    `json:"targetUserId,omitempty"`
	GoalID        string    `json:"goalId,omitempty"`
	Timestamp     int64     `json:"timestamp"`
	ChangedFields []string  `json:"changedFields,omitempty"`
}

// UserRegisteredEvent is consumed from the identity service's exchange.
type UserRegisteredEvent struct {
	UserID      string            `json:"userId"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	ProfileData map[string]string `json:"profileData,omitempty"`
}
