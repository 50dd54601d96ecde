package visibility

import (
	"testing"

	"social-service/internal/models"
)

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph(nil)

	if !g.AddEdge("alice", "bob", 100) {
		t.Fatal("expected first edge insert to succeed")
	}
	if g.AddEdge("alice", "bob", 200) {
		t.Error("expected duplicate edge insert to be a no-op")
	}
	if g.AddEdge("alice", "alice", 100) {
		t.Error("expected self-follow to be rejected")
	}
	if g.AddEdge("", "bob", 100) {
		t.Error("expected empty follower id to be rejected")
	}

	if !g.Has("alice", "bob") {
		t.Error("expected edge alice->bob to exist")
	}
	if g.Has("bob", "alice") {
		t.Error("did not expect reverse edge bob->alice")
	}
	if got := g.Len(); got != 1 {
		t.Errorf("expected 1 edge, got %d", got)
	}
}

func TestGraphRemoveEdgeIdempotent(t *testing.T) {
	g := NewGraph([]models.FollowEdge{
		{FollowerID: "alice", FollowingID: "bob", CreatedAt: 100},
	})

	if !g.RemoveEdge("alice", "bob") {
		t.Fatal("expected removal of existing edge to succeed")
	}
	if g.RemoveEdge("alice", "bob") {
		t.Error("expected second removal to be a no-op")
	}

	if g.FollowerCount("bob") != 0 {
		t.Errorf("expected bob follower count 0, got %d", g.FollowerCount("bob"))
	}
	if g.FollowingCount("alice") != 0 {
		t.Errorf("expected alice following count 0, got %d", g.FollowingCount("alice"))
	}
	if g.Len() != 0 {
		t.Errorf("expected empty graph, got %d edges", g.Len())
	}
}

func TestGraphCountsConsistent(t *testing.T) {
	type op struct {
		add       bool
		follower  string
		following string
	}

	ops := []op{
		{true, "alice", "bob"},
		{true, "carol", "bob"},
		{true, "dave", "bob"},
		{true, "bob", "alice"},
		{false, "carol", "bob"},
		{false, "carol", "bob"}, // repeat removal, must not go negative
		{true, "carol", "bob"},
		{true, "alice", "carol"},
		{false, "alice", "bob"},
	}

	g := NewGraph(nil)
	for i, o := range ops {
		if o.add {
			g.AddEdge(o.follower, o.following, i)
		} else {
			g.RemoveEdge(o.follower, o.following)
		}

		// Recount from the edge set after every mutation.
		wantFollowers := make(map[string]int64)
		wantFollowing := make(map[string]int64)
		for key := range g.edges {
			wantFollowers[key.following]++
			wantFollowing[key.follower]++
		}
		for _, u := range []string{"alice", "bob", "carol", "dave"} {
			if got := g.FollowerCount(u); got != wantFollowers[u] {
				t.Fatalf("op %d: follower count for %s = %d, want %d", i, u, got, wantFollowers[u])
			}
			if got := g.FollowingCount(u); got != wantFollowing[u] {
				t.Fatalf("op %d: following count for %s = %d, want %d", i, u, got, wantFollowing[u])
			}
		}
	}
}
