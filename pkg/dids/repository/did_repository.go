package repository

import (
	"fmt"

	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/storage"
)

// DidRepository provides access to stored DID records
type DidRepository interface {
	StoreCreatedDid(ctx *context.AgentContext, record *DidRecord) error
	StoreReceivedDid(ctx *context.AgentContext, record *DidRecord) error
	FindById(ctx *context.AgentContext, id string) (*DidRecord, error)
	FindCreatedDid(ctx *context.AgentContext, did string) (*DidRecord, error)
	FindReceivedDid(ctx *context.AgentContext, did string) (*DidRecord, error)
	GetCreatedDids(ctx *context.AgentContext) ([]*DidRecord, error)
	GetAll(ctx *context.AgentContext) ([]*DidRecord, error)
	Update(ctx *context.AgentContext, record *DidRecord) error
	Delete(ctx *context.AgentContext, record *DidRecord) error
}

// StorageDidRepository is a DidRepository backed by a StorageService
type StorageDidRepository struct {
	storage storage.StorageService
}

// NewStorageDidRepository creates a repository over the given storage
func NewStorageDidRepository(store storage.StorageService) *StorageDidRepository {
	return &StorageDidRepository{storage: store}
}

func (r *StorageDidRepository) StoreCreatedDid(ctx *context.AgentContext, record *DidRecord) error {
	record.Role = DidRoleCreated
	record.refreshTags()
	return r.storage.Save(ctx.Context, record)
}

func (r *StorageDidRepository) StoreReceivedDid(ctx *context.AgentContext, record *DidRecord) error {
	record.Role = DidRoleReceived
	record.refreshTags()
	return r.storage.Save(ctx.Context, record)
}

func (r *StorageDidRepository) FindById(ctx *context.AgentContext, id string) (*DidRecord, error) {
	record, err := r.storage.GetById(ctx.Context, DidRecordType, id)
	if err != nil {
		return nil, err
	}
	return asDidRecord(record)
}

func (r *StorageDidRepository) FindCreatedDid(ctx *context.AgentContext, did string) (*DidRecord, error) {
	return r.findByDidAndRole(ctx, did, DidRoleCreated)
}

func (r *StorageDidRepository) FindReceivedDid(ctx *context.AgentContext, did string) (*DidRecord, error) {
	return r.findByDidAndRole(ctx, did, DidRoleReceived)
}

func (r *StorageDidRepository) findByDidAndRole(ctx *context.AgentContext, did string, role DidRole) (*DidRecord, error) {
	query := storage.NewQuery().WithTag("did", did).WithTag("role", string(role))
	record, err := r.storage.FindSingleByQuery(ctx.Context, DidRecordType, *query)
	if err != nil {
		return nil, err
	}
	return asDidRecord(record)
}

func (r *StorageDidRepository) GetCreatedDids(ctx *context.AgentContext) ([]*DidRecord, error) {
	query := storage.NewQuery().WithTag("role", string(DidRoleCreated))
	records, err := r.storage.FindByQuery(ctx.Context, DidRecordType, *query)
	if err != nil {
		return nil, err
	}
	return asDidRecords(records)
}

func (r *StorageDidRepository) GetAll(ctx *context.AgentContext) ([]*DidRecord, error) {
	records, err := r.storage.GetAll(ctx.Context, DidRecordType)
	if err != nil {
		return nil, err
	}
	return asDidRecords(records)
}

func (r *StorageDidRepository) Update(ctx *context.AgentContext, record *DidRecord) error {
	record.refreshTags()
	return r.storage.Update(ctx.Context, record)
}

func (r *StorageDidRepository) Delete(ctx *context.AgentContext, record *DidRecord) error {
	return r.storage.Delete(ctx.Context, record)
}

func asDidRecord(record storage.Record) (*DidRecord, error) {
	didRecord, ok := record.(*DidRecord)
	if !ok {
		return nil, fmt.Errorf("record %s is not a DidRecord", record.GetId())
	}
	return didRecord, nil
}

func asDidRecords(records []storage.Record) ([]*DidRecord, error) {
	result := make([]*DidRecord, 0, len(records))
	for _, record := range records {
		didRecord, err := asDidRecord(record)
		if err != nil {
			return nil, err
		}
		result = append(result, didRecord)
	}
	return result, nil
}
