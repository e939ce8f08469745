// Package graph builds the interaction graphs behind the social signal:
// user similarity over interest sets and a user-event bipartite graph, plus a
// heterogeneous user/event/artist graph for personalized PageRank.
package graph

import "sort"

// NodeKind tags a node with its entity type. Keying nodes by (kind, id)
// avoids the collisions a string-prefix scheme invites.
type NodeKind int

const (
	KindUser NodeKind = iota
	KindEvent
	KindArtist
)

func (k NodeKind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindEvent:
		return "event"
	case KindArtist:
		return "artist"
	}
	return "unknown"
}

type NodeID struct {
	Kind NodeKind
	ID   string
}

func UserNode(id string) NodeID   { return NodeID{Kind: KindUser, ID: id} }
func EventNode(id string) NodeID  { return NodeID{Kind: KindEvent, ID: id} }
func ArtistNode(id string) NodeID { return NodeID{Kind: KindArtist, ID: id} }

// Graph is a directed adjacency structure over tagged nodes. Edge weights
// accumulate, so repeated interactions raise the weight instead of being lost.
type Graph struct {
	adj map[NodeID]map[NodeID]float64
}

func New() *Graph {
	return &Graph{adj: make(map[NodeID]map[NodeID]float64)}
}

func (g *Graph) AddNode(n NodeID) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[NodeID]float64)
	}
}

func (g *Graph) AddEdge(from, to NodeID, weight float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from][to] += weight
}

func (g *Graph) Has(n NodeID) bool {
	_, ok := g.adj[n]
	return ok
}

// Neighbors returns the adjacency map of n. Callers must not mutate it.
func (g *Graph) Neighbors(n NodeID) map[NodeID]float64 {
	return g.adj[n]
}

// Degree is the number of distinct neighbors, ignoring edge multiplicity.
func (g *Graph) Degree(n NodeID) int {
	return len(g.adj[n])
}

func (g *Graph) Len() int {
	return len(g.adj)
}

// Nodes returns all node IDs in deterministic order.
func (g *Graph) Nodes() []NodeID {
	nodes := make([]NodeID, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}
