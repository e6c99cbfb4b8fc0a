package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StorageService defines the interface for storage operations
type StorageService interface {
	Save(ctx context.Context, record Record) error
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, record Record) error
	DeleteById(ctx context.Context, recordClass string, id string) error
	GetById(ctx context.Context, recordClass string, id string) (Record, error)
	GetAll(ctx context.Context, recordClass string) ([]Record, error)
	FindByQuery(ctx context.Context, recordClass string, query Query) ([]Record, error)
	FindSingleByQuery(ctx context.Context, recordClass string, query Query) (Record, error)
}

// Record represents a base record interface
type Record interface {
	GetId() string
	SetId(id string)
	GetType() string
	GetTags() map[string]string
	SetTags(tags map[string]string)
	GetTag(key string) (string, bool)
	SetTag(key, value string)
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	SetUpdatedAt(time time.Time)
	Clone() Record
	ToJSON() ([]byte, error)
	FromJSON(data []byte) error
}

// BaseRecord provides a base implementation of Record
type BaseRecord struct {
	ID        string            `json:"id"`
	Type      string            `json:"_type"`
	Tags      map[string]string `json:"_tags,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewBaseRecord creates a new BaseRecord
func NewBaseRecord(recordType string) *BaseRecord {
	now := time.Now()
	return &BaseRecord{
		ID:        uuid.New().String(),
		Type:      recordType,
		Tags:      make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *BaseRecord) GetId() string {
	return r.ID
}

func (r *BaseRecord) SetId(id string) {
	r.ID = id
}

func (r *BaseRecord) GetType() string {
	return r.Type
}

func (r *BaseRecord) GetTags() map[string]string {
	if r.Tags == nil {
		r.Tags = make(map[string]string)
	}
	return r.Tags
}

func (r *BaseRecord) SetTags(tags map[string]string) {
	r.Tags = tags
}

func (r *BaseRecord) GetTag(key string) (string, bool) {
	if r.Tags == nil {
		return "", false
	}
	value, exists := r.Tags[key]
	return value, exists
}

func (r *BaseRecord) SetTag(key, value string) {
	if r.Tags == nil {
		r.Tags = make(map[string]string)
	}
	r.Tags[key] = value
	r.UpdatedAt = time.Now()
}

func (r *BaseRecord) GetCreatedAt() time.Time {
	return r.CreatedAt
}

func (r *BaseRecord) GetUpdatedAt() time.Time {
	return r.UpdatedAt
}

func (r *BaseRecord) SetUpdatedAt(t time.Time) {
	r.UpdatedAt = t
}

func (r *BaseRecord) Clone() Record {
	clone := &BaseRecord{
		ID:        r.ID,
		Type:      r.Type,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	if r.Tags != nil {
		clone.Tags = make(map[string]string)
		for k, v := range r.Tags {
			clone.Tags[k] = v
		}
	}

	return clone
}

func (r *BaseRecord) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

func (r *BaseRecord) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}

// Query represents a storage query
type Query struct {
	// Simple equality queries (keys prefixed "_tags." match record tags)
	Equal map[string]interface{} `json:"equal,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// NewQuery creates a new empty query
func NewQuery() *Query {
	return &Query{
		Equal: make(map[string]interface{}),
	}
}

// WithEqual adds an equality condition to the query
func (q *Query) WithEqual(field string, value interface{}) *Query {
	if q.Equal == nil {
		q.Equal = make(map[string]interface{})
	}
	q.Equal[field] = value
	return q
}

// WithTag adds a tag equality condition to the query
func (q *Query) WithTag(key, value string) *Query {
	return q.WithEqual("_tags."+key, value)
}

// WithLimit sets the query limit
func (q *Query) WithLimit(limit int) *Query {
	q.Limit = limit
	return q
}
