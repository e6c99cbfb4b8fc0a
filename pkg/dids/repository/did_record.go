package repository

import (
	"encoding/json"

	"github.com/ajna-inc/kanon/pkg/core/storage"
	"github.com/ajna-inc/kanon/pkg/dids"
	"github.com/ajna-inc/kanon/pkg/dids/domain"
)

// DidRecordType is the storage record class for DID records
const DidRecordType = "DidRecord"

// DidRole indicates whether a DID was created locally or received
type DidRole string

const (
	DidRoleCreated  DidRole = "created"
	DidRoleReceived DidRole = "received"
)

// DidRecord stores a DID with its document and role
type DidRecord struct {
	*storage.BaseRecord

	Did         string                  `json:"did"`
	Role        DidRole                 `json:"role"`
	DidDocument *dids.DidDocument       `json:"didDocument,omitempty"`
	Keys        []domain.DidDocumentKey `json:"keys,omitempty"`
}

// NewDidRecord creates a DID record and sets its lookup tags
func NewDidRecord(did string, role DidRole, document *dids.DidDocument) *DidRecord {
	record := &DidRecord{
		BaseRecord:  storage.NewBaseRecord(DidRecordType),
		Did:         did,
		Role:        role,
		DidDocument: document,
	}
	record.refreshTags()
	return record
}

func (r *DidRecord) refreshTags() {
	r.SetTag("did", r.Did)
	r.SetTag("role", string(r.Role))
	if parsed, err := dids.ParseDid(r.Did); err == nil {
		r.SetTag("method", parsed.Method)
	}
}

func (r *DidRecord) ToJSON() ([]byte, error)    { return json.Marshal(r) }
func (r *DidRecord) FromJSON(data []byte) error { return json.Unmarshal(data, r) }

func (r *DidRecord) Clone() storage.Record {
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	clone := &DidRecord{BaseRecord: &storage.BaseRecord{}}
	if err := json.Unmarshal(data, clone); err != nil {
		return nil
	}
	return clone
}

func init() {
	storage.RegisterRecordType(DidRecordType, func() storage.Record {
		return &DidRecord{BaseRecord: &storage.BaseRecord{Type: DidRecordType, Tags: make(map[string]string)}}
	})
}
