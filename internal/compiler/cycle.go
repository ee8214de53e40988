package compiler

import (
	"fmt"
	"slices"
	"strings"
)

// Cycle is a chain of relations in which a rule is its own ancestor.
// Such a chronology can never be registered: the registry rejects the
// relation that closes the loop.
type Cycle struct {
	Path    []string `json:"path"` // ["A", "B", "A"]
	Message string   `json:"message"`
}

// AnalyzeCycles finds relation cycles in a chronology.
//
// The algorithm:
//  1. Build a parent → child graph from the relations
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each component with more than one rule, or a rule that is its
//     own child, as a cycle
//
// An acyclic chronology returns an empty list.
func AnalyzeCycles(spec *ChronologySpec) []Cycle {
	if len(spec.Relations) == 0 {
		return []Cycle{}
	}

	graph := buildRelationGraph(spec.Relations)
	var cycles []Cycle
	for _, scc := range tarjanSCC(graph) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			cycles = append(cycles, sccToCycle(scc, graph))
		}
	}
	slices.SortFunc(cycles, func(a, b Cycle) int { return strings.Compare(a.Message, b.Message) })
	return cycles
}

// relationGraph maps a parent rule name to its child rule names.
type relationGraph map[string][]string

func buildRelationGraph(rels []RelationSpec) relationGraph {
	graph := make(relationGraph)
	for _, r := range rels {
		graph[r.Parent] = append(graph[r.Parent], r.Large, r.Small)
		for _, child := range []string{r.Large, r.Small} {
			if graph[child] == nil {
				graph[child] = []string{}
			}
		}
	}
	return graph
}

func hasSelfLoop(node string, graph relationGraph) bool {
	return slices.Contains(graph[node], node)
}

// sortedNodes returns graph nodes in a stable order so that the reported
// path does not depend on map iteration.
func (g relationGraph) sortedNodes() []string {
	nodes := make([]string, 0, len(g))
	for n := range g {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Single-node components without self-loops are not cycles.
func tarjanSCC(graph relationGraph) [][]string {
	var (
		index   int
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var visit func(string)
	visit = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, seen := indices[w]; !seen {
				visit(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] != indices[v] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		slices.Sort(scc)
		sccs = append(sccs, scc)
	}

	for _, node := range graph.sortedNodes() {
		if _, seen := indices[node]; !seen {
			visit(node)
		}
	}
	return sccs
}

func sccToCycle(scc []string, graph relationGraph) Cycle {
	if len(scc) == 1 {
		return Cycle{
			Path:    []string{scc[0], scc[0]},
			Message: fmt.Sprintf("%s is related to itself", scc[0]),
		}
	}
	path := cyclePath(scc, graph)
	return Cycle{
		Path:    path,
		Message: "relation cycle: " + strings.Join(path, " -> "),
	}
}

// cyclePath walks edges inside the component from its first member until it
// returns there.
func cyclePath(scc []string, graph relationGraph) []string {
	members := make(map[string]bool, len(scc))
	for _, n := range scc {
		members[n] = true
	}

	start := scc[0]
	path := []string{start}
	visited := map[string]bool{}
	for current := start; ; {
		visited[current] = true
		next := ""
		for _, w := range graph[current] {
			if members[w] && (!visited[w] || w == start) {
				next = w
				break
			}
		}
		if next == "" {
			return path
		}
		path = append(path, next)
		if next == start {
			return path
		}
		current = next
	}
}
