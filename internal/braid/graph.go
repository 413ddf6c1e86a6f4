package braid

import (
	"sort"
	"time"

	"ananke/internal/constraint"
	"ananke/internal/obslog"
	"ananke/internal/ringqueue"
)

// depGraph is the dependency graph Braid builds from a constraint set:
// vertices are constraint ids, edges are declared DependsOn references.
type depGraph struct {
	byID  map[uint64]constraint.Constraint
	edges map[uint64][]uint64 // tail -> heads (tail depends on head)
}

func buildGraph(cs []constraint.Constraint) *depGraph {
	g := &depGraph{
		byID:  make(map[uint64]constraint.Constraint, len(cs)),
		edges: make(map[uint64][]uint64),
	}
	for _, c := range cs {
		g.byID[c.ID] = c
	}
	for _, c := range cs {
		for _, dep := range c.DependsOn {
			if _, ok := g.byID[dep]; ok {
				g.edges[c.ID] = append(g.edges[c.ID], dep)
			}
		}
	}
	return g
}

// breakCycles removes edges until the graph is acyclic, always removing
// the edge whose tail has the lower (priority, confidence, id) triple, and
// recording each removal as a cycle_broken diagnostic. It repeats until no
// cycle remains.
func (g *depGraph) breakCycles(diag *obslog.Events, now time.Time) {
	for {
		cycle := g.findCycle()
		if cycle == nil {
			return
		}
		tail := weakestTail(g, cycle)
		head := g.popOneEdge(tail, cycle)
		diag.Record(now, obslog.KindCycleBroken, "broke dependency cycle", tail, head)
	}
}

// findCycle returns the vertex ids on a cycle, or nil if the graph (edges
// restricted to g.byID) is acyclic. Uses a three-color DFS.
func (g *depGraph) findCycle() []uint64 {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[uint64]int, len(g.byID))
	var order []uint64
	for id := range g.byID {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var stack []uint64
	var cycle []uint64

	var visit func(uint64) bool
	visit = func(id uint64) bool {
		color[id] = gray
		stack = append(stack, id)
		heads := g.edges[id]
		sort.Slice(heads, func(i, j int) bool { return heads[i] < heads[j] })
		for _, h := range heads {
			switch color[h] {
			case white:
				if visit(h) {
					return true
				}
			case gray:
				// found back edge id -> h; extract the cycle from stack
				for i := len(stack) - 1; i >= 0; i-- {
					cycle = append(cycle, stack[i])
					if stack[i] == h {
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range order {
		if color[id] == white {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}

// weakestTail picks the cycle vertex with the lowest (priority,
// confidence, id) triple — the one whose outgoing edge gets removed.
func weakestTail(g *depGraph, cycle []uint64) uint64 {
	weakest := cycle[0]
	for _, id := range cycle[1:] {
		if isWeaker(g.byID[id], g.byID[weakest]) {
			weakest = id
		}
	}
	return weakest
}

func isWeaker(a, b constraint.Constraint) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.Confidence != b.Confidence {
		return a.Confidence < b.Confidence
	}
	return a.ID < b.ID
}

// popOneEdge removes tail's edge into whichever cycle member it points to
// and returns that head id.
func (g *depGraph) popOneEdge(tail uint64, cycle []uint64) uint64 {
	inCycle := make(map[uint64]bool, len(cycle))
	for _, id := range cycle {
		inCycle[id] = true
	}
	heads := g.edges[tail]
	for i, h := range heads {
		if inCycle[h] {
			g.edges[tail] = append(heads[:i], heads[i+1:]...)
			return h
		}
	}
	return 0
}

// topoOrder returns constraint ids in dependency order (dependencies
// before dependents) using Kahn's algorithm over the acyclic graph, with
// ties broken by id for determinism. Traversal uses ringqueue for FIFO
// frontier processing, the same FIFO discipline the pipeline uses anywhere
// it needs strict enqueue-order work.
func (g *depGraph) topoOrder() []uint64 {
	// A vertex's number of unresolved dependencies is len(edges[v]).
	remaining := make(map[uint64]int, len(g.byID))
	var initialFrontier []uint64
	for id := range g.byID {
		remaining[id] = len(g.edges[id])
		if remaining[id] == 0 {
			initialFrontier = append(initialFrontier, id)
		}
	}
	sort.Slice(initialFrontier, func(i, j int) bool { return initialFrontier[i] < initialFrontier[j] })

	dependents := make(map[uint64][]uint64) // head -> tails depending on it
	for tail, heads := range g.edges {
		for _, h := range heads {
			dependents[h] = append(dependents[h], tail)
		}
	}
	for h := range dependents {
		sort.Slice(dependents[h], func(i, j int) bool { return dependents[h][i] < dependents[h][j] })
	}

	ready := ringqueue.New[uint64](8)
	for _, id := range initialFrontier {
		ready.Enqueue(id)
	}

	var order []uint64
	seen := make(map[uint64]bool)
	for ready.Len() > 0 {
		id, _ := ready.Dequeue()
		if seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
		for _, t := range dependents[id] {
			remaining[t]--
			if remaining[t] == 0 {
				ready.Enqueue(t)
			}
		}
	}
	// Any vertex left unreached (shouldn't happen post-breakCycles) is
	// appended in id order so nothing is silently dropped.
	var stragglers []uint64
	for id := range g.byID {
		if !seen[id] {
			stragglers = append(stragglers, id)
		}
	}
	sort.Slice(stragglers, func(i, j int) bool { return stragglers[i] < stragglers[j] })
	order = append(order, stragglers...)
	return order
}
