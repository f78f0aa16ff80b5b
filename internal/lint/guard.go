package lint

import "sync"

// resultGuard serializes access to the shared results map from the graph
// walk's concurrent lints.
type resultGuard struct {
	mu sync.Mutex
}

func (g *resultGuard) set(m map[string]Result, name string, res Result) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m[name] = res
}

func (g *resultGuard) get(m map[string]Result, name string) (Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	res, ok := m[name]
	return res, ok
}
