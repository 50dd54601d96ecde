package visibility

import (
	"testing"

	"social-service/internal/models"
)

func openSettings() models.VisibilitySettings {
	return models.VisibilitySettings{
		ProfileVisibility: models.ProfileVisibilityPublic,
		ShowStreaks:       true,
		ShowAchievements:  true,
		ShowProgress:      true,
		ShowFollowers:     true,
		ShowFollowing:     true,
		ShowGoals:         true,
	}
}

func testProfile(userID string, settings models.VisibilitySettings) *models.Profile {
	return &models.Profile{UserID: userID, Visibility: settings}
}

func edges(pairs ...[2]string) []models.FollowEdge {
	out := make([]models.FollowEdge, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, models.FollowEdge{FollowerID: p[0], FollowingID: p[1], CreatedAt: i})
	}
	return out
}

func TestClassifyPriority(t *testing.T) {
	partnerGoal := &models.Goal{
		UserID:     "target",
		Title:      "run a marathon",
		Visibility: models.GoalVisibilityPrivate,
		Partners:   []string{"viewer"},
	}

	testCases := []struct {
		name   string
		viewer string
		target string
		edges  []models.FollowEdge
		goals  []*models.Goal
		want   models.RelationshipKind
	}{
		{
			name:   "owner",
			viewer: "target",
			target: "target",
			want:   models.RelationshipOwner,
		},
		{
			name:   "goal partner",
			viewer: "viewer",
			target: "target",
			goals:  []*models.Goal{partnerGoal},
			want:   models.RelationshipGoalPartner,
		},
		{
			name:   "goal partner outranks mutual",
			viewer: "viewer",
			target: "target",
			edges:  edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}),
			goals:  []*models.Goal{partnerGoal},
			want:   models.RelationshipGoalPartner,
		},
		{
			name:   "partner via shared goal of a third user",
			viewer: "viewer",
			target: "target",
			goals: []*models.Goal{{
				UserID:   "someone-else",
				Partners: []string{"viewer", "target"},
			}},
			want: models.RelationshipGoalPartner,
		},
		{
			name:   "mutual",
			viewer: "viewer",
			target: "target",
			edges:  edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}),
			want:   models.RelationshipMutual,
		},
		{
			name:   "follower",
			viewer: "viewer",
			target: "target",
			edges:  edges([2]string{"viewer", "target"}),
			want:   models.RelationshipFollower,
		},
		{
			name:   "followed back only is not follower",
			viewer: "viewer",
			target: "target",
			edges:  edges([2]string{"target", "viewer"}),
			want:   models.RelationshipNone,
		},
		{
			name:   "no data",
			viewer: "viewer",
			target: "target",
			want:   models.RelationshipNone,
		},
		{
			name:   "anonymous viewer",
			viewer: "",
			target: "target",
			want:   models.RelationshipNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(NewGraph(tc.edges), tc.goals)
			if got := r.Classify(tc.viewer, tc.target); got != tc.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tc.viewer, tc.target, got, tc.want)
			}
		})
	}
}

func TestMutualSymmetry(t *testing.T) {
	r := NewResolver(NewGraph(edges(
		[2]string{"a", "b"},
		[2]string{"b", "a"},
		[2]string{"a", "c"},
	)), nil)

	if got := r.Classify("a", "b"); got != models.RelationshipMutual {
		t.Errorf("Classify(a, b) = %q, want mutual", got)
	}
	if got := r.Classify("b", "a"); got != models.RelationshipMutual {
		t.Errorf("Classify(b, a) = %q, want mutual", got)
	}
	if got := r.Classify("a", "c"); got != models.RelationshipFollower {
		t.Errorf("Classify(a, c) = %q, want follower", got)
	}
	if got := r.Classify("c", "a"); got != models.RelationshipNone {
		t.Errorf("Classify(c, a) = %q, want none", got)
	}
}

func TestOwnerSupremacy(t *testing.T) {
	// Maximally restrictive settings must not matter for the owner.
	target := testProfile("owner", models.VisibilitySettings{
		ProfileVisibility: models.ProfileVisibilityPrivate,
	})
	goal := &models.Goal{UserID: "owner", Visibility: models.GoalVisibilityPrivate}
	r := NewResolver(NewGraph(nil), []*models.Goal{goal})

	if !r.CanViewProfile("owner", target) {
		t.Error("owner must always see own profile")
	}
	for _, section := range models.AllProfileSections() {
		if !r.CanViewSection("owner", target, section) {
			t.Errorf("owner must see section %q", section)
		}
	}
	if !r.CanViewFollowers("owner", target) || !r.CanViewFollowing("owner", target) {
		t.Error("owner must see own follower and following lists")
	}
	if !r.CanViewGoal("owner", target, goal) {
		t.Error("owner must see own private goal")
	}
}

func TestPrivateProfileBlocksStrangers(t *testing.T) {
	settings := openSettings()
	settings.ProfileVisibility = models.ProfileVisibilityPrivate
	target := testProfile("target", settings)
	goal := &models.Goal{UserID: "target", Visibility: models.GoalVisibilityPublic}
	r := NewResolver(NewGraph(nil), nil)

	if r.CanViewProfile("stranger", target) {
		t.Error("stranger must not see a private profile")
	}
	for _, section := range models.AllProfileSections() {
		if r.CanViewSection("stranger", target, section) {
			t.Errorf("stranger must not see section %q of a private profile", section)
		}
	}
	if r.CanViewFollowers("stranger", target) || r.CanViewFollowing("stranger", target) {
		t.Error("stranger must not see connection lists of a private profile")
	}
	if r.CanViewGoal("stranger", target, goal) {
		t.Error("stranger must not see a public-tagged goal on a private profile")
	}
}

func TestPartnerOverridesPrivateProfile(t *testing.T) {
	settings := models.VisibilitySettings{ProfileVisibility: models.ProfileVisibilityPrivate}
	target := testProfile("target", settings)
	goal := &models.Goal{
		UserID:     "target",
		Visibility: models.GoalVisibilityPrivate,
		Partners:   []string{"partner"},
	}
	r := NewResolver(NewGraph(nil), []*models.Goal{goal})

	if !r.CanViewGoal("partner", target, goal) {
		t.Error("goal partner must see the shared goal even on a private profile")
	}

	other := &models.Goal{UserID: "target", Visibility: models.GoalVisibilityPublic}
	if !r.CanViewProfile("partner", target) {
		t.Error("goal partner has baseline profile access")
	}
	if r.CanViewSection("partner", target, models.SectionGoals) {
		t.Error("goals section is forced hidden for goal partners")
	}
	if r.CanViewGoal("partner", target, other) {
		// Private profile: the public tag requires a public profile.
		t.Error("partner must not see unrelated goals of a private profile")
	}
}

func TestSectionVisibilityForGoalPartner(t *testing.T) {
	settings := openSettings()
	target := testProfile("target", settings)
	goal := &models.Goal{UserID: "target", Partners: []string{"partner"}}
	r := NewResolver(NewGraph(nil), []*models.Goal{goal})

	if r.CanViewSection("partner", target, models.SectionGoals) {
		t.Error("goals section must be false for a goal partner even when showGoals is on")
	}
	if !r.CanViewSection("partner", target, models.SectionAchievements) {
		t.Error("achievements section follows the raw flag for a goal partner")
	}

	settings.ShowAchievements = false
	target = testProfile("target", settings)
	r = NewResolver(NewGraph(nil), []*models.Goal{goal})
	if r.CanViewSection("partner", target, models.SectionAchievements) {
		t.Error("achievements section must follow the raw flag when off")
	}
}

func TestPublicProfileStranger(t *testing.T) {
	target := testProfile("target", openSettings())
	goal := &models.Goal{UserID: "target", Visibility: models.GoalVisibilityPublic}
	r := NewResolver(NewGraph(nil), nil)

	if !r.CanViewProfile("stranger", target) {
		t.Error("stranger must see a public profile")
	}
	if !r.CanViewSection("stranger", target, models.SectionGoals) {
		t.Error("stranger must see the goals section when showGoals is on")
	}
	if !r.CanViewGoal("stranger", target, goal) {
		t.Error("stranger must see a public goal on a public profile")
	}
}

func TestGoalVisibilityTags(t *testing.T) {
	target := testProfile("target", openSettings())

	testCases := []struct {
		name       string
		visibility models.GoalVisibility
		edges      []models.FollowEdge
		viewer     string
		want       bool
	}{
		{"followers tag grants follower", models.GoalVisibilityFollowers, edges([2]string{"viewer", "target"}), "viewer", true},
		{"followers tag grants mutual", models.GoalVisibilityFollowers, edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}), "viewer", true},
		{"followers tag denies stranger", models.GoalVisibilityFollowers, nil, "viewer", false},
		{"mutuals tag grants mutual", models.GoalVisibilityMutuals, edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}), "viewer", true},
		{"mutuals tag denies plain follower", models.GoalVisibilityMutuals, edges([2]string{"viewer", "target"}), "viewer", false},
		{"private tag denies mutual", models.GoalVisibilityPrivate, edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}), "viewer", false},
		{"partners-only tag denies non-partner", models.GoalVisibilityPartnersOnly, edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}), "viewer", false},
		{"unknown tag denies", models.GoalVisibility("friends-of-friends"), edges([2]string{"viewer", "target"}, [2]string{"target", "viewer"}), "viewer", false},
		{"empty tag denies", models.GoalVisibility(""), nil, "viewer", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			goal := &models.Goal{UserID: "target", Visibility: tc.visibility}
			r := NewResolver(NewGraph(tc.edges), nil)
			if got := r.CanViewGoal(tc.viewer, target, goal); got != tc.want {
				t.Errorf("CanViewGoal with tag %q = %v, want %v", tc.visibility, got, tc.want)
			}
		})
	}
}

func TestCanViewConnectionLists(t *testing.T) {
	settings := openSettings()
	settings.ShowFollowers = false
	target := testProfile("target", settings)
	r := NewResolver(NewGraph(edges([2]string{"viewer", "target"})), nil)

	if r.CanViewFollowers("viewer", target) {
		t.Error("followers list hidden by flag for non-owners")
	}
	if !r.CanViewFollowing("viewer", target) {
		t.Error("following list visible when its flag is on")
	}
	if !r.CanViewFollowers("target", target) {
		t.Error("owner always sees own followers list")
	}
}

func TestFilterGoalsPreservesOrder(t *testing.T) {
	target := testProfile("target", openSettings())
	goals := []*models.Goal{
		{UserID: "target", Title: "a", Visibility: models.GoalVisibilityPublic},
		{UserID: "target", Title: "b", Visibility: models.GoalVisibilityPrivate},
		{UserID: "target", Title: "c", Visibility: models.GoalVisibilityFollowers},
		{UserID: "target", Title: "d", Visibility: models.GoalVisibilityPublic},
	}
	r := NewResolver(NewGraph(edges([2]string{"viewer", "target"})), nil)

	visible := r.FilterGoals(goals, "viewer", target)
	want := []string{"a", "c", "d"}
	if len(visible) != len(want) {
		t.Fatalf("expected %d visible goals, got %d", len(want), len(visible))
	}
	for i, title := range want {
		if visible[i].Title != title {
			t.Errorf("visible[%d].Title = %q, want %q", i, visible[i].Title, title)
		}
	}

	if got := r.FilterGoals(nil, "viewer", target); len(got) != 0 {
		t.Errorf("empty input must yield empty output, got %d goals", len(got))
	}
}

func TestZeroSettingsFailClosed(t *testing.T) {
	// A zero-valued settings record evaluates as fully private.
	target := testProfile("target", models.VisibilitySettings{})
	r := NewResolver(NewGraph(edges([2]string{"viewer", "target"})), nil)

	if r.CanViewProfile("stranger", target) {
		t.Error("absent profileVisibility must evaluate as private")
	}
	if !r.CanViewProfile("viewer", target) {
		t.Error("follower keeps baseline access to a private profile")
	}
	for _, section := range models.AllProfileSections() {
		if r.CanViewSection("viewer", target, section) {
			t.Errorf("zero settings must deny section %q", section)
		}
	}
}
