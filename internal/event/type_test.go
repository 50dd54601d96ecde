package event

import (
	"testing"

	"social-service/internal/models"
)

func TestEventBuilders(t *testing.T) {
	follow := NewFollowEvent(models.EventTypeFollowCreated, "alice", "bob")
	if follow.EventType != models.EventTypeFollowCreated {
		t.Errorf("expected event type %q, got %q", models.EventTypeFollowCreated, follow.EventType)
	}
	if follow.UserID != "alice" || follow.TargetUserID != "bob" {
		t.Errorf("unexpected follow event pair: %s -> %s", follow.UserID, follow.TargetUserID)
	}
	if follow.Timestamp == 0 {
		t.Error("expected a timestamp on the follow event")
	}

	profile := NewProfileEvent(models.EventTypeProfileUpdated, "alice", []string{"bio"})
	if len(profile.ChangedFields) != 1 || profile.ChangedFields[0] != "bio" {
		t.Errorf("unexpected changed fields: %v", profile.ChangedFields)
	}

	goal := NewGoalEvent(models.EventTypeGoalDeleted, "alice", "goal-1")
	if goal.GoalID != "goal-1" {
		t.Errorf("unexpected goal id: %s", goal.GoalID)
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	mock := NewMockPublisher()

	if err := mock.PublishSocialEvent(NewFollowEvent(models.EventTypeFollowCreated, "alice", "bob")); err != nil {
		t.Fatalf("mock publish failed: %v", err)
	}
	if err := mock.PublishSocialEvent(NewFollowEvent(models.EventTypeFollowRemoved, "alice", "bob")); err != nil {
		t.Fatalf("mock publish failed: %v", err)
	}

	if len(mock.Events) != 2 {
		t.Fatalf("expected 2 recorded events, got %d", len(mock.Events))
	}
	if mock.Events[1].EventType != models.EventTypeFollowRemoved {
		t.Errorf("expected second event to be %q, got %q", models.EventTypeFollowRemoved, mock.Events[1].EventType)
	}

	mock.ClearEvents()
	if len(mock.Events) != 0 {
		t.Errorf("expected no events after clear, got %d", len(mock.Events))
	}
}
