package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStorageService is an in-memory implementation of StorageService
// intended for development and testing. Records are cloned on the way in
// and out so callers never share mutable state with the store.
type MemoryStorageService struct {
	mu      sync.RWMutex
	records map[string]map[string]Record // recordClass -> id -> record
}

// NewMemoryStorageService creates a new in-memory storage service
func NewMemoryStorageService() *MemoryStorageService {
	return &MemoryStorageService{
		records: make(map[string]map[string]Record),
	}
}

func (s *MemoryStorageService) Save(ctx context.Context, record Record) error {
	if record == nil {
		return fmt.Errorf("cannot save nil record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	class := record.GetType()
	if s.records[class] == nil {
		s.records[class] = make(map[string]Record)
	}
	if _, exists := s.records[class][record.GetId()]; exists {
		return fmt.Errorf("record with id %s already exists", record.GetId())
	}
	s.records[class][record.GetId()] = record.Clone()
	return nil
}

func (s *MemoryStorageService) Update(ctx context.Context, record Record) error {
	if record == nil {
		return fmt.Errorf("cannot update nil record")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	class := record.GetType()
	if s.records[class] == nil {
		return fmt.Errorf("record with id %s not found", record.GetId())
	}
	if _, exists := s.records[class][record.GetId()]; !exists {
		return fmt.Errorf("record with id %s not found", record.GetId())
	}
	record.SetUpdatedAt(time.Now())
	s.records[class][record.GetId()] = record.Clone()
	return nil
}

func (s *MemoryStorageService) Delete(ctx context.Context, record Record) error {
	if record == nil {
		return fmt.Errorf("cannot delete nil record")
	}
	return s.DeleteById(ctx, record.GetType(), record.GetId())
}

func (s *MemoryStorageService) DeleteById(ctx context.Context, recordClass string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records[recordClass] == nil {
		return fmt.Errorf("record with id %s not found", id)
	}
	if _, exists := s.records[recordClass][id]; !exists {
		return fmt.Errorf("record with id %s not found", id)
	}
	delete(s.records[recordClass], id)
	return nil
}

func (s *MemoryStorageService) GetById(ctx context.Context, recordClass string, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.records[recordClass] != nil {
		if record, exists := s.records[recordClass][id]; exists {
			return record.Clone(), nil
		}
	}
	return nil, fmt.Errorf("record with id %s not found", id)
}

func (s *MemoryStorageService) GetAll(ctx context.Context, recordClass string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.records[recordClass]))
	for _, record := range s.records[recordClass] {
		result = append(result, record.Clone())
	}
	return result, nil
}

func (s *MemoryStorageService) FindByQuery(ctx context.Context, recordClass string, query Query) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Record
	for _, record := range s.records[recordClass] {
		if matchesQuery(record, query) {
			result = append(result, record.Clone())
		}
	}

	if query.Offset > 0 {
		if query.Offset >= len(result) {
			return []Record{}, nil
		}
		result = result[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(result) {
		result = result[:query.Limit]
	}
	return result, nil
}

func (s *MemoryStorageService) FindSingleByQuery(ctx context.Context, recordClass string, query Query) (Record, error) {
	records, err := s.FindByQuery(ctx, recordClass, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no record found matching query")
	}
	return records[0], nil
}

// matchesQuery evaluates the Equal conditions of a query against a record.
// Keys prefixed with "_tags." compare against record tags.
func matchesQuery(record Record, query Query) bool {
	for field, expected := range query.Equal {
		expectedStr, ok := expected.(string)
		if !ok {
			expectedStr = fmt.Sprintf("%v", expected)
		}

		if strings.HasPrefix(field, "_tags.") {
			tagKey := strings.TrimPrefix(field, "_tags.")
			value, exists := record.GetTag(tagKey)
			if !exists || value != expectedStr {
				return false
			}
			continue
		}

		switch field {
		case "id":
			if record.GetId() != expectedStr {
				return false
			}
		case "_type":
			if record.GetType() != expectedStr {
				return false
			}
		default:
			// Unknown top-level fields never match
			return false
		}
	}
	return true
}
