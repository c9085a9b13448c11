package network

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"
)

// Spec describes a named topology and its parameters, matching the
// "Graph" section of the run configuration.
type Spec struct {
	Type string  `json:"type"`
	N    int     `json:"n,omitempty"`
	P    float64 `json:"p,omitempty"`
	M    int     `json:"m,omitempty"`
	K    int     `json:"k,omitempty"`
}

const (
	defaultN = 100
	defaultP = 0.1
	defaultM = 2
	defaultK = 4
)

// Network is an immutable undirected graph together with the dense
// boolean neighbor matrix and sorted adjacency lists the simulation
// reads every step. It is built once per replica and never mutated.
type Network struct {
	Graph *simple.UndirectedGraph
	N     int

	// Neighbors[i][j] reports whether j is adjacent to i. Symmetric,
	// false on the diagonal.
	Neighbors [][]bool

	// AdjList[i] holds i's neighbors in ascending order.
	AdjList [][]int
}

// Build constructs the network for a topology spec. The spec type
// selects the generator: "ER" (Erdos-Renyi G(n,p)), "BA" (preferential
// attachment), "WS" (small-world ring with rewiring). An empty or
// "NULL" type falls back to ER with default parameters. Unknown types
// are a configuration error.
func Build(spec Spec, src rand.Source) (*Network, error) {
	g := simple.NewUndirectedGraph()

	n := spec.N
	if n <= 0 {
		n = defaultN
	}
	p := spec.P
	if p <= 0 {
		p = defaultP
	}

	var err error
	switch spec.Type {
	case "", "NULL":
		err = gen.Gnp(g, defaultN, defaultP, src)
	case "ER":
		err = gen.Gnp(g, n, p, src)
	case "BA":
		m := spec.M
		if m <= 0 {
			m = defaultM
		}
		err = gen.PreferentialAttachment(g, n, m, src)
	case "WS":
		k := spec.K
		if k <= 0 {
			k = defaultK
		}
		err = gen.SmallWorldsBB(g, n, k, p, src)
	default:
		return nil, fmt.Errorf("network: unknown graph type %q", spec.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("network: building %q graph: %w", spec.Type, err)
	}

	return fromGraph(g), nil
}

// FromGraph derives the neighbor matrix and adjacency lists from an
// already constructed graph. Useful for tests that need exact
// topologies.
func FromGraph(g *simple.UndirectedGraph) *Network {
	return fromGraph(g)
}

func fromGraph(g *simple.UndirectedGraph) *Network {
	n := g.Nodes().Len()

	neighbors := make([][]bool, n)
	adjList := make([][]int, n)
	for i := 0; i < n; i++ {
		neighbors[i] = make([]bool, n)
		nodes := g.From(int64(i))
		for nodes.Next() {
			j := int(nodes.Node().ID())
			if j == i {
				continue
			}
			neighbors[i][j] = true
			adjList[i] = append(adjList[i], j)
		}
		sort.Ints(adjList[i])
	}

	return &Network{
		Graph:     g,
		N:         n,
		Neighbors: neighbors,
		AdjList:   adjList,
	}
}

// Complete builds the complete graph on n vertices. Small complete
// networks are the workhorse of the deterministic tests.
func Complete(n int) *Network {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
		}
	}
	return fromGraph(g)
}
