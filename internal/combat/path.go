package combat

// unreachable is the path length reported for goals BFS cannot reach.
const unreachable = 9999

// shortestPath runs a breadth-first search from src toward dst over hexes
// that are unoccupied or one of the two endpoints. It returns the path
// length and the first step to take; ok is false when no path exists.
// First-step ties resolve by neighbor enumeration order.
func shortestPath(src, dst Hex, occupied map[Hex]bool, rows int) (length int, first Hex, ok bool) {
	if src == dst {
		return 0, src, true
	}
	type node struct {
		pos   Hex
		dist  int
		first Hex
	}
	queue := []node{{pos: src}}
	visited := map[Hex]bool{src: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range neighbors(cur.pos, rows) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			step := cur.first
			if cur.pos == src {
				step = nb
			}
			if nb == dst {
				return cur.dist + 1, step, true
			}
			if occupied[nb] {
				continue
			}
			queue = append(queue, node{pos: nb, dist: cur.dist + 1, first: step})
		}
	}
	return unreachable, Hex{}, false
}

// pathLength returns the BFS path length from src to dst, or unreachable.
func pathLength(src, dst Hex, occupied map[Hex]bool, rows int) int {
	length, _, ok := shortestPath(src, dst, occupied, rows)
	if !ok {
		return unreachable
	}
	return length
}
