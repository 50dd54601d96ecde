package models

import (
	"testing"
)

func TestSectionAccessor(t *testing.T) {
	settings := VisibilitySettings{
		ShowStreaks:      true,
		ShowAchievements: false,
		ShowProgress:     true,
		ShowFollowers:    false,
		ShowFollowing:    true,
		ShowGoals:        false,
	}

	testCases := []struct {
		section ProfileSection
		want    bool
	}{
		{SectionStreaks, true},
		{SectionAchievements, false},
		{SectionProgress, true},
		{SectionFollowers, false},
		{SectionFollowing, true},
		{SectionGoals, false},
		{ProfileSection("unknown"), false}, // unknown sections deny
	}

	for _, tc := range testCases {
		t.Run(string(tc.section), func(t *testing.T) {
			if got := settings.Section(tc.section); got != tc.want {
				t.Errorf("Section(%q) = %v, want %v", tc.section, got, tc.want)
			}
		})
	}
}

func TestEffectiveProfileVisibility(t *testing.T) {
	testCases := []struct {
		name  string
		value ProfileVisibility
		want  ProfileVisibility
	}{
		{"public stays public", ProfileVisibilityPublic, ProfileVisibilityPublic},
		{"private stays private", ProfileVisibilityPrivate, ProfileVisibilityPrivate},
		{"absent value is private", ProfileVisibility(""), ProfileVisibilityPrivate},
		{"unknown value is private", ProfileVisibility("friends"), ProfileVisibilityPrivate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := VisibilitySettings{ProfileVisibility: tc.value}
			if got := settings.EffectiveProfileVisibility(); got != tc.want {
				t.Errorf("EffectiveProfileVisibility() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGoalHasPartner(t *testing.T) {
	goal := &Goal{
		UserID:   "owner",
		Partners: []string{"alice", "bob"},
	}

	if !goal.HasPartner("alice") {
		t.Error("expected alice to be a partner")
	}
	if goal.HasPartner("owner") {
		t.Error("the owner is not on the partner list")
	}
	if goal.HasPartner("") {
		t.Error("empty user id is never a partner")
	}

	empty := &Goal{UserID: "owner"}
	if empty.HasPartner("alice") {
		t.Error("goal without partners has no partner")
	}
}
