package models

type ProfileVisibility string

const (
	ProfileVisibilityPublic  ProfileVisibility = "public"
	ProfileVisibilityPrivate ProfileVisibility = "private"
)

type GoalVisibility string

const (
	GoalVisibilityPublic       GoalVisibility = "public"
	GoalVisibilityFollowers    GoalVisibility = "followers"
	GoalVisibilityMutuals      GoalVisibility = "mutuals"
	GoalVisibilityPrivate      GoalVisibility = "private"
	GoalVisibilityPartnersOnly GoalVisibility = "partners-only"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusArchived  GoalStatus = "archived"
)

// RelationshipKind is derived at evaluation time, never stored.
type RelationshipKind string

const (
	RelationshipOwner       RelationshipKind = "owner"
	RelationshipGoalPartner RelationshipKind = "goal-partner"
	RelationshipMutual      RelationshipKind = "mutual"
	RelationshipFollower    RelationshipKind = "follower"
	RelationshipNone        RelationshipKind = "none"
)

// ProfileSection names one toggleable part of a profile page.
type ProfileSection string

const (
	SectionStreaks      ProfileSection = "streaks"
	SectionAchievements ProfileSection = "achievements"
	SectionProgress     ProfileSection = "progress"
	SectionFollowers    ProfileSection = "followers"
	SectionFollowing    ProfileSection = "following"
	SectionGoals        ProfileSection = "goals"
)

func AllProfileSections() []ProfileSection {
	return []ProfileSection{
		SectionStreaks,
		SectionAchievements,
		SectionProgress,
		SectionFollowers,
		SectionFollowing,
		SectionGoals,
	}
}
