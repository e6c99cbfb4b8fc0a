package repository

import (
	gocontext "context"
	"testing"

	"github.com/ajna-inc/kanon/pkg/core/context"
	"github.com/ajna-inc/kanon/pkg/core/storage"
	"github.com/ajna-inc/kanon/pkg/dids"
)

func newTestRepository() (*StorageDidRepository, *context.AgentContext) {
	ctx := context.NewAgentContext(context.AgentContextOptions{
		Context:              gocontext.Background(),
		ContextCorrelationId: "test",
	})
	return NewStorageDidRepository(storage.NewMemoryStorageService()), ctx
}

func TestStoreAndFindCreatedDid(t *testing.T) {
	repo, ctx := newTestRepository()
	did := "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a"

	record := NewDidRecord(did, DidRoleCreated, dids.NewDidDocument(did))
	if err := repo.StoreCreatedDid(ctx, record); err != nil {
		t.Fatalf("StoreCreatedDid failed: %v", err)
	}

	found, err := repo.FindCreatedDid(ctx, did)
	if err != nil {
		t.Fatalf("FindCreatedDid failed: %v", err)
	}
	if found.Did != did {
		t.Errorf("expected did %s, got %s", did, found.Did)
	}
	if found.DidDocument == nil || found.DidDocument.Id != did {
		t.Error("expected document to round trip")
	}
	if method, _ := found.GetTag("method"); method != "ethr" {
		t.Errorf("expected method tag ethr, got %s", method)
	}
}

func TestFindCreatedDidIgnoresReceived(t *testing.T) {
	repo, ctx := newTestRepository()
	did := "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a"

	record := NewDidRecord(did, DidRoleReceived, nil)
	if err := repo.StoreReceivedDid(ctx, record); err != nil {
		t.Fatalf("StoreReceivedDid failed: %v", err)
	}

	if _, err := repo.FindCreatedDid(ctx, did); err == nil {
		t.Fatal("expected no created did record")
	}
	if _, err := repo.FindReceivedDid(ctx, did); err != nil {
		t.Fatalf("FindReceivedDid failed: %v", err)
	}
}

func TestGetCreatedDids(t *testing.T) {
	repo, ctx := newTestRepository()

	created := NewDidRecord("did:ethr:0x1111111111111111111111111111111111111111", DidRoleCreated, nil)
	received := NewDidRecord("did:ethr:0x2222222222222222222222222222222222222222", DidRoleReceived, nil)
	if err := repo.StoreCreatedDid(ctx, created); err != nil {
		t.Fatalf("StoreCreatedDid failed: %v", err)
	}
	if err := repo.StoreReceivedDid(ctx, received); err != nil {
		t.Fatalf("StoreReceivedDid failed: %v", err)
	}

	records, err := repo.GetCreatedDids(ctx)
	if err != nil {
		t.Fatalf("GetCreatedDids failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 created did, got %d", len(records))
	}
	if records[0].Role != DidRoleCreated {
		t.Errorf("expected role created, got %s", records[0].Role)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo, ctx := newTestRepository()
	did := "did:ethr:0xB9c5714089478a327F09197987f16f9E5d936E8a"

	record := NewDidRecord(did, DidRoleCreated, nil)
	if err := repo.StoreCreatedDid(ctx, record); err != nil {
		t.Fatalf("StoreCreatedDid failed: %v", err)
	}

	record.DidDocument = dids.NewDidDocument(did)
	if err := repo.Update(ctx, record); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := repo.FindById(ctx, record.GetId())
	if err != nil {
		t.Fatalf("FindById failed: %v", err)
	}
	if found.DidDocument == nil {
		t.Error("expected updated document")
	}

	if err := repo.Delete(ctx, record); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindById(ctx, record.GetId()); err == nil {
		t.Fatal("expected deleted record to be gone")
	}
}
