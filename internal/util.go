package internal

// ReconstructPath rebuilds the path ending at current from the cameFrom map.
// The walk stops at the first node without a predecessor, which is the start.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
) []NodeType {
	path := []NodeType{current}
	for {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
