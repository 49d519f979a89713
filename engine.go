package gridastar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal"
)

// searchState is the per-call state of one search. Search drives it to
// completion, Stepper one expansion at a time.
type searchState struct {
	grid          *Grid
	goal          Coordinate
	heuristic     Heuristic
	decreaseKey   bool
	maxExpansions int

	openSet    PriorityQueue
	openSetMap map[Coordinate]*PriorityQueueItem
	closedSet  map[Coordinate]bool
	cameFrom   map[Coordinate]Coordinate
	gScore     map[Coordinate]int

	current       Coordinate
	nodesExplored int
	done          bool
	found         bool
	path          []Coordinate
}

func newSearchState(grid *Grid, startNode, goalNode Coordinate, options Options) *searchState {
	s := &searchState{
		grid:          grid,
		goal:          goalNode,
		heuristic:     options.Heuristic,
		decreaseKey:   options.DecreaseKey,
		maxExpansions: options.MaxExpansions,
		openSet:       make(PriorityQueue, 0),
		openSetMap:    make(map[Coordinate]*PriorityQueueItem),
		closedSet:     make(map[Coordinate]bool),
		cameFrom:      make(map[Coordinate]Coordinate),
		gScore:        map[Coordinate]int{startNode: 0},
	}

	heap.Init(&s.openSet)
	startItem := &PriorityQueueItem{Node: startNode, GScore: 0, FCost: s.heuristic(startNode, goalNode)}
	heap.Push(&s.openSet, startItem)
	s.openSetMap[startNode] = startItem
	return s
}

// step pops the best pending coordinate and relaxes its neighbors.
// It marks the state done when the goal is popped or the open set is empty.
func (s *searchState) step() error {
	if len(s.openSetMap) == 0 {
		s.done = true
		return nil
	}
	if s.maxExpansions > 0 && s.nodesExplored >= s.maxExpansions {
		s.done = true
		return ErrExpansionLimit
	}

	currentItem := s.popPending()
	current := currentItem.Node
	delete(s.openSetMap, current)
	s.closedSet[current] = true
	s.current = current
	s.nodesExplored++

	if current == s.goal {
		s.done = true
		s.found = true
		s.path = internal.ReconstructPath(s.cameFrom, current)
		return nil
	}

	tentativeG := currentItem.GScore + 1
	for _, neighbor := range Neighbors(s.grid, current) {
		if known, ok := s.gScore[neighbor]; ok && tentativeG >= known {
			continue
		}
		s.cameFrom[neighbor] = current
		s.gScore[neighbor] = tentativeG
		f := tentativeG + s.heuristic(neighbor, s.goal)

		if item, pending := s.openSetMap[neighbor]; pending && s.decreaseKey {
			item.GScore = tentativeG
			item.FCost = f
			heap.Fix(&s.openSet, item.IndexInQueue)
			continue
		}
		// A pending neighbor gets a second entry; the older one goes stale.
		item := &PriorityQueueItem{Node: neighbor, GScore: tentativeG, FCost: f}
		heap.Push(&s.openSet, item)
		s.openSetMap[neighbor] = item
	}
	return nil
}

// popPending pops queue entries until one is the live entry of a pending
// coordinate. Stale duplicates are dropped without counting as expansions.
// Callers guarantee openSetMap is non-empty, so a live entry is always queued.
func (s *searchState) popPending() *PriorityQueueItem {
	for s.openSet.Len() > 0 {
		item := heap.Pop(&s.openSet).(*PriorityQueueItem)
		if s.openSetMap[item.Node] == item {
			return item
		}
	}
	panic("gridastar: pending coordinate missing from the open set")
}

func (s *searchState) result() Result {
	r := Result{NodesExplored: s.nodesExplored, Found: s.found}
	if s.found {
		r.Path = s.path
		r.Length = len(s.path)
		r.Cost = len(s.path) - 1
	}
	return r
}
