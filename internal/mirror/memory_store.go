package mirror

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process SecondaryStore for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	trees map[string]map[int64]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trees: make(map[string]map[int64]map[string]string)}
}

func (m *MemoryStore) Put(_ context.Context, path string, id int64, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tree, ok := m.trees[path]
	if !ok {
		tree = make(map[int64]map[string]string)
		m.trees[path] = tree
	}
	node, ok := tree[id]
	if !ok {
		node = make(map[string]string, len(values))
		tree[id] = node
	}
	for k, v := range values {
		node[k] = v
	}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, path string, id int64) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, ok := m.trees[path][id]
	if !ok {
		return nil, nil
	}
	return copyValues(node), nil
}

func (m *MemoryStore) Delete(_ context.Context, path string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.trees[path], id)
	return nil
}

func (m *MemoryStore) Scan(_ context.Context, path string) ([]Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tree := m.trees[path]
	out := make([]Node, 0, len(tree))
	for id, node := range tree {
		out = append(out, Node{ID: id, Values: copyValues(node)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
