package visibility

import (
	"social-service/internal/models"
)

type edgeKey struct {
	follower  string
	following string
}

// Graph is an in-memory snapshot of the directed follow graph. Callers own
// the snapshot and serialize mutations; nothing here locks or blocks.
type Graph struct {
	edges     map[edgeKey]int
	followers map[string]int64
	following map[string]int64
}

func NewGraph(edges []models.FollowEdge) *Graph {
	g := &Graph{
		edges:     make(map[edgeKey]int, len(edges)),
		followers: make(map[string]int64),
		following: make(map[string]int64),
	}
	for _, e := range edges {
		g.AddEdge(e.FollowerID, e.FollowingID, e.CreatedAt)
	}
	return g
}

// AddEdge inserts the directed edge and returns true. It returns false
// without modifying the graph when the edge already exists or when
// follower and following are the same user (self-follows are rejected).
func (g *Graph) AddEdge(followerID, followingID string, createdAt int) bool {
	if followerID == followingID || followerID == "" || followingID == "" {
		return false
	}
	key := edgeKey{follower: followerID, following: followingID}
	if _, ok := g.edges[key]; ok {
		return false
	}
	g.edges[key] = createdAt
	g.followers[followingID]++
	g.following[followerID]++
	return true
}

// RemoveEdge deletes the directed edge if present. Removing an absent edge
// is not an error; the call is idempotent and returns false.
func (g *Graph) RemoveEdge(followerID, followingID string) bool {
	key := edgeKey{follower: followerID, following: followingID}
	if _, ok := g.edges[key]; !ok {
		return false
	}
	delete(g.edges, key)
	g.followers[followingID]--
	g.following[followerID]--
	return true
}

func (g *Graph) Has(followerID, followingID string) bool {
	_, ok := g.edges[edgeKey{follower: followerID, following: followingID}]
	return ok
}

// FollowerCount is the number of edges pointing at userID.
func (g *Graph) FollowerCount(userID string) int64 {
	return g.followers[userID]
}

// FollowingCount is the number of edges leaving userID.
func (g *Graph) FollowingCount(userID string) int64 {
	return g.following[userID]
}

func (g *Graph) Len() int {
	return len(g.edges)
}
