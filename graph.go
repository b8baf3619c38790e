package chassis

// dependencyGraph is the declared-dependency graph used by Validate.
type dependencyGraph struct {
	nodes map[string][]string
	order []string // preserve registration order
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{nodes: make(map[string][]string)}
}

func (g *dependencyGraph) addNode(key string, deps []string) {
	g.nodes[key] = deps
	g.order = append(g.order, key)
}

// topologicalSort returns keys in dependency order. Keys without
// dependencies keep their registration order. Returns an error naming the
// cycle when the declared dependencies are circular.
func (g *dependencyGraph) topologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	for _, key := range g.order {
		if err := g.visit(key, visited, visiting, nil, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// visit performs DFS traversal, carrying the current path for cycle reporting.
func (g *dependencyGraph) visit(key string, visited, visiting map[string]bool, path []string, result *[]string) error {
	if visited[key] {
		return nil
	}

	if visiting[key] {
		return errCycle(append(path, key))
	}

	visiting[key] = true
	path = append(path, key)

	for _, dep := range g.nodes[key] {
		if _, ok := g.nodes[dep]; !ok {
			// Unregistered dependencies are reported by Validate
			// before sorting; skip them here.
			continue
		}

		if err := g.visit(dep, visited, visiting, path, result); err != nil {
			return err
		}
	}

	visiting[key] = false
	visited[key] = true
	*result = append(*result, key)

	return nil
}
