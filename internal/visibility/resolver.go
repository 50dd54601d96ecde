// Package visibility decides which parts of a profile and which goals a
// given viewer may see. It is a pure policy evaluator: every decision runs
// against an explicit snapshot of follow edges and goals handed in by the
// caller, and every method returns a definite answer without touching any
// store. Missing or zero-valued settings deny (fail closed).
package visibility

import (
	"social-service/internal/models"
)

type pairKey struct {
	viewer string
	target string
}

// Resolver classifies viewer/target relationships and evaluates the
// profile, section, and goal gates for one consistent snapshot.
type Resolver struct {
	graph *Graph
	// partnered holds (viewer, target) pairs connected through at least one
	// shared goal, indexed up front so classification never rescans goals.
	partnered map[pairKey]struct{}
}

func NewResolver(graph *Graph, goals []*models.Goal) *Resolver {
	r := &Resolver{
		graph:     graph,
		partnered: make(map[pairKey]struct{}),
	}
	for _, g := range goals {
		r.IndexGoal(g)
	}
	return r
}

// IndexGoal records the partnership pairs a goal establishes: a partner is
// linked to the goal's owner and to every other partner on the same goal.
func (r *Resolver) IndexGoal(g *models.Goal) {
	if g == nil {
		return
	}
	for _, p := range g.Partners {
		if p == "" {
			continue
		}
		if g.UserID != "" && p != g.UserID {
			r.partnered[pairKey{viewer: p, target: g.UserID}] = struct{}{}
		}
		for _, q := range g.Partners {
			if q != "" && q != p {
				r.partnered[pairKey{viewer: p, target: q}] = struct{}{}
			}
		}
	}
}

func (r *Resolver) isGoalPartner(viewerID, targetID string) bool {
	_, ok := r.partnered[pairKey{viewer: viewerID, target: targetID}]
	return ok
}

// Classify maps the pair to exactly one relationship kind. Priority order,
// first match wins: owner, goal-partner, mutual, follower, none. Absent
// data is simply no relationship.
func (r *Resolver) Classify(viewerID, targetID string) models.RelationshipKind {
	if viewerID != "" && viewerID == targetID {
		return models.RelationshipOwner
	}
	if r.isGoalPartner(viewerID, targetID) {
		return models.RelationshipGoalPartner
	}
	if r.graph.Has(viewerID, targetID) {
		if r.graph.Has(targetID, viewerID) {
			return models.RelationshipMutual
		}
		// The viewer is a follower of the target, not the reverse.
		return models.RelationshipFollower
	}
	return models.RelationshipNone
}

// CanViewProfile grants baseline profile access. Any established
// relationship sees the profile regardless of the visibility flag;
// strangers only see public profiles.
func (r *Resolver) CanViewProfile(viewerID string, target *models.Profile) bool {
	switch r.Classify(viewerID, target.UserID) {
	case models.RelationshipOwner,
		models.RelationshipGoalPartner,
		models.RelationshipMutual,
		models.RelationshipFollower:
		return true
	default:
		return target.Visibility.EffectiveProfileVisibility() == models.ProfileVisibilityPublic
	}
}

// CanViewSection evaluates one named section of the target's profile.
func (r *Resolver) CanViewSection(viewerID string, target *models.Profile, section models.ProfileSection) bool {
	switch r.Classify(viewerID, target.UserID) {
	case models.RelationshipOwner:
		return true
	case models.RelationshipGoalPartner:
		// Partners only ever see the shared goal itself, which the goal
		// gate grants directly; the target's goal list stays hidden.
		if section == models.SectionGoals {
			return false
		}
		return target.Visibility.Section(section)
	case models.RelationshipMutual, models.RelationshipFollower:
		if target.Visibility.EffectiveProfileVisibility() == models.ProfileVisibilityPrivate {
			return false
		}
		return target.Visibility.Section(section)
	default:
		// Strangers only reach this point on public profiles, but the
		// private check stays so this branch cannot drift from the
		// follower rule if baseline profile access ever changes.
		if target.Visibility.EffectiveProfileVisibility() == models.ProfileVisibilityPrivate {
			return false
		}
		return target.Visibility.Section(section)
	}
}

func (r *Resolver) CanViewFollowers(viewerID string, target *models.Profile) bool {
	if r.Classify(viewerID, target.UserID) == models.RelationshipOwner {
		return true
	}
	if !r.CanViewProfile(viewerID, target) {
		return false
	}
	return target.Visibility.ShowFollowers
}

func (r *Resolver) CanViewFollowing(viewerID string, target *models.Profile) bool {
	if r.Classify(viewerID, target.UserID) == models.RelationshipOwner {
		return true
	}
	if !r.CanViewProfile(viewerID, target) {
		return false
	}
	return target.Visibility.ShowFollowing
}

// CanViewGoal decides access to one specific goal of the target. Being
// listed as a partner on the goal overrides everything, including a
// private target profile. Unknown visibility tags deny.
func (r *Resolver) CanViewGoal(viewerID string, target *models.Profile, goal *models.Goal) bool {
	rel := r.Classify(viewerID, target.UserID)
	if rel == models.RelationshipOwner {
		return true
	}
	if viewerID != "" && goal.HasPartner(viewerID) {
		return true
	}
	if !r.CanViewProfile(viewerID, target) {
		return false
	}
	switch goal.Visibility {
	case models.GoalVisibilityPublic:
		// A public-tagged goal on a private profile stays hidden.
		return target.Visibility.EffectiveProfileVisibility() == models.ProfileVisibilityPublic
	case models.GoalVisibilityFollowers:
		return rel == models.RelationshipFollower || rel == models.RelationshipMutual
	case models.GoalVisibilityMutuals:
		return rel == models.RelationshipMutual
	case models.GoalVisibilityPrivate:
		return false
	case models.GoalVisibilityPartnersOnly:
		// Partners already returned above; anyone else is denied.
		return false
	default:
		return false
	}
}

// FilterGoals returns the order-preserving subsequence of goals the viewer
// may see.
func (r *Resolver) FilterGoals(goals []*models.Goal, viewerID string, target *models.Profile) []*models.Goal {
	visible := make([]*models.Goal, 0, len(goals))
	for _, g := range goals {
		if r.CanViewGoal(viewerID, target, g) {
			visible = append(visible, g)
		}
	}
	return visible
}

// SectionVisibility evaluates every section at once for view assembly.
func (r *Resolver) SectionVisibility(viewerID string, target *models.Profile) models.SectionVisibility {
	return models.SectionVisibility{
		Streaks:      r.CanViewSection(viewerID, target, models.SectionStreaks),
		Achievements: r.CanViewSection(viewerID, target, models.SectionAchievements),
		Progress:     r.CanViewSection(viewerID, target, models.SectionProgress),
		Followers:    r.CanViewSection(viewerID, target, models.SectionFollowers),
		Following:    r.CanViewSection(viewerID, target, models.SectionFollowing),
		Goals:        r.CanViewSection(viewerID, target, models.SectionGoals),
	}
}
