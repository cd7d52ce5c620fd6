package content

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryBackend is an in-process Backend used by tests and local development
// without MongoDB. Documents are copied on the way in and out.
type MemoryBackend struct {
	mu      sync.RWMutex
	store   map[string][]bson.M
	failure error
	queries int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{store: make(map[string][]bson.M)}
}

// SetFailure makes every subsequent query fail with err (nil restores service).
func (m *MemoryBackend) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Queries returns how many queries reached the backend.
func (m *MemoryBackend) Queries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.queries
}

func (m *MemoryBackend) begin() error {
	m.queries++
	return m.failure
}

func (m *MemoryBackend) Find(ctx context.Context, collection string, order bson.D) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	out := make([]bson.M, 0, len(m.store[collection]))
	for _, d := range m.store[collection] {
		out = append(out, copyDoc(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, k := range order {
			if k.Key == fieldID {
				continue
			}
			c := compareValues(out[i][k.Key], out[j][k.Key])
			if c == 0 {
				continue
			}
			if dir, _ := k.Value.(int); dir < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out, nil
}

func (m *MemoryBackend) FindByID(ctx context.Context, collection string, id primitive.ObjectID) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	if i := m.indexOf(collection, id); i >= 0 {
		return copyDoc(m.store[collection][i]), nil
	}
	return nil, nil
}

func (m *MemoryBackend) FindFirst(ctx context.Context, collection string) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	if docs := m.store[collection]; len(docs) > 0 {
		return copyDoc(docs[0]), nil
	}
	return nil, nil
}

func (m *MemoryBackend) Insert(ctx context.Context, collection string, doc bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return err
	}
	m.store[collection] = append(m.store[collection], copyDoc(doc))
	return nil
}

func (m *MemoryBackend) Update(ctx context.Context, collection string, id any, set bson.M) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return nil, err
	}
	i := m.indexOf(collection, id)
	if i < 0 {
		return nil, nil
	}
	d := m.store[collection][i]
	for k, v := range copyDoc(set) {
		d[k] = v
	}
	return copyDoc(d), nil
}

func (m *MemoryBackend) Delete(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(); err != nil {
		return false, err
	}
	i := m.indexOf(collection, id)
	if i < 0 {
		return false, nil
	}
	m.store[collection] = slices.Delete(m.store[collection], i, i+1)
	return true, nil
}

func (m *MemoryBackend) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failure
}

func (m *MemoryBackend) indexOf(collection string, id any) int {
	for i, d := range m.store[collection] {
		if d[fieldID] == id {
			return i
		}
	}
	return -1
}

func copyDoc(d bson.M) bson.M {
	out := make(bson.M, len(d))
	for k, v := range d {
		if l, ok := v.([]string); ok {
			v = slices.Clone(l)
		}
		out[k] = v
	}
	return out
}

// compareValues orders the scalar types the content layer stores.
// Missing values sort first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Compare(tb)
		}
	}
	if na, ok := toInt64(a); ok {
		if nb, ok := toInt64(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

var _ Backend = (*MemoryBackend)(nil)
