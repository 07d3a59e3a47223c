package appsindex

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MemRegistry is an in-memory AppRegistry used by tests and local tooling.
type MemRegistry struct {
	mu      sync.Mutex
	records map[string]AppRecord
	watcher chan Event
}

func NewMemRegistry(records ...AppRecord) *MemRegistry {
	r := &MemRegistry{records: make(map[string]AppRecord, len(records))}
	for _, rec := range records {
		r.records[rec.PackageName] = rec
	}
	return r
}

func (r *MemRegistry) ListInstalled(ctx context.Context) ([]AppRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AppRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PackageName < out[j].PackageName })
	return out, nil
}

func (r *MemRegistry) Watch(ctx context.Context) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher == nil {
		r.watcher = make(chan Event, 16)
	}
	return r.watcher, nil
}

// Install adds or updates a record and notifies any watcher.
func (r *MemRegistry) Install(rec AppRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kind := EventAdded
	if _, ok := r.records[rec.PackageName]; ok {
		kind = EventUpdated
	}
	r.records[rec.PackageName] = rec
	if r.watcher != nil {
		r.watcher <- Event{Kind: kind, Record: rec}
	}
}

// Uninstall removes a record and notifies any watcher.
func (r *MemRegistry) Uninstall(packageName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[packageName]
	if !ok {
		return
	}
	delete(r.records, packageName)
	if r.watcher != nil {
		r.watcher <- Event{Kind: EventRemoved, Record: rec}
	}
}

// Close ends the watch stream.
func (r *MemRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.watcher != nil {
		close(r.watcher)
		r.watcher = nil
	}
}

// MemDocumentStore is an in-memory DocumentStore used by tests.
type MemDocumentStore struct {
	mu     sync.Mutex
	docs   map[string]Document
	schema SearchSchema
}

func NewMemDocumentStore() *MemDocumentStore {
	return &MemDocumentStore{docs: make(map[string]Document)}
}

func (s *MemDocumentStore) Upsert(ctx context.Context, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		if d.ID == "" {
			return errors.New("document id must not be empty")
		}
		s.docs[d.ID] = d
	}
	return nil
}

func (s *MemDocumentStore) DeleteByQuery(ctx context.Context, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range filter.IDs {
		delete(s.docs, id)
	}
	if filter.KeepIDs != nil {
		keep := make(map[string]bool, len(filter.KeepIDs))
		for _, id := range filter.KeepIDs {
			keep[id] = true
		}
		for id := range s.docs {
			if !keep[id] {
				delete(s.docs, id)
			}
		}
	}
	return nil
}

func (s *MemDocumentStore) GetSchema(ctx context.Context) (SearchSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schema, nil
}

func (s *MemDocumentStore) SetSchema(ctx context.Context, next SearchSchema, forceOverride bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Version < s.schema.Version && !forceOverride {
		return errors.Errorf("schema downgrade from %d to %d requires force override", s.schema.Version, next.Version)
	}
	s.schema = next
	return nil
}

// Get returns a stored document.
func (s *MemDocumentStore) Get(id string) (Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	return d, ok
}

// Count returns the stored document count.
func (s *MemDocumentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
