package mocks

import (
	"context"
	"sort"
	"sync"

	sharedDomain "github.com/annaclara1997/event-buddy-project/internal/shared/domain"
)

// SetCall regista uma escrita para asserções nos testes.
type SetCall struct {
	Collection string
	ID         string
	Fields     map[string]any
	Merge      bool
}

// InMemoryStore simula o port Store com injeção de falhas por operação.
type InMemoryStore struct {
	mu   sync.Mutex
	Docs map[string]map[string]map[string]any // collection -> id -> fields

	// Hooks de falha: devolvem um erro para simular o store indisponível.
	FailGet  func(collection, id string) error
	FailSet  func(collection, id string) error
	FailList func(collection string) error

	SetCalls []SetCall
}

var _ sharedDomain.Store = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Docs: make(map[string]map[string]map[string]any),
	}
}

// Seed grava um documento diretamente, sem passar pelos hooks de falha.
func (s *InMemoryStore) Seed(collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Docs[collection] == nil {
		s.Docs[collection] = make(map[string]map[string]any)
	}
	s.Docs[collection][id] = copyFields(fields)
}

func (s *InMemoryStore) Get(ctx context.Context, collection, id string) (sharedDomain.Document, error) {
	if s.FailGet != nil {
		if err := s.FailGet(collection, id); err != nil {
			return sharedDomain.Document{}, sharedDomain.NewStoreError("get", collection, id, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.Docs[collection][id]
	if !ok {
		return sharedDomain.Document{Exists: false}, nil
	}
	return sharedDomain.Document{Exists: true, Fields: copyFields(fields)}, nil
}

func (s *InMemoryStore) Set(ctx context.Context, collection, id string, fields map[string]any, merge bool) error {
	if s.FailSet != nil {
		if err := s.FailSet(collection, id); err != nil {
			return sharedDomain.NewStoreError("set", collection, id, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.SetCalls = append(s.SetCalls, SetCall{
		Collection: collection, ID: id, Fields: copyFields(fields), Merge: merge,
	})

	if s.Docs[collection] == nil {
		s.Docs[collection] = make(map[string]map[string]any)
	}

	if merge {
		existing := s.Docs[collection][id]
		if existing == nil {
			existing = make(map[string]any)
		}
		for k, v := range copyFields(fields) {
			existing[k] = v
		}
		s.Docs[collection][id] = existing
		return nil
	}

	s.Docs[collection][id] = copyFields(fields)
	return nil
}

func (s *InMemoryStore) List(ctx context.Context, collection string) ([]sharedDomain.Identified, error) {
	if s.FailList != nil {
		if err := s.FailList(collection); err != nil {
			return nil, sharedDomain.NewStoreError("list", collection, "", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.Docs[collection]))
	for id := range s.Docs[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids) // ordem determinística para os testes

	docs := make([]sharedDomain.Identified, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, sharedDomain.Identified{
			ID:     id,
			Fields: copyFields(s.Docs[collection][id]),
		})
	}
	return docs, nil
}

// FieldStrings lê um campo de conjunto diretamente do estado interno.
func (s *InMemoryStore) FieldStrings(collection, id, field string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sharedDomain.StringsField(s.Docs[collection][id], field)
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if arr, ok := v.([]string); ok {
			cp := make([]string, len(arr))
			copy(cp, arr)
			out[k] = cp
			continue
		}
		out[k] = v
	}
	return out
}
