package storage

import (
	"context"
	"testing"
)

func TestSaveAndGetById(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	record := NewBaseRecord("TestRecord")
	record.SetTag("color", "blue")

	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.GetById(ctx, "TestRecord", record.GetId())
	if err != nil {
		t.Fatalf("GetById failed: %v", err)
	}
	if got.GetId() != record.GetId() {
		t.Errorf("expected id %s, got %s", record.GetId(), got.GetId())
	}
	if value, _ := got.GetTag("color"); value != "blue" {
		t.Errorf("expected tag color=blue, got %s", value)
	}
}

func TestSaveRejectsDuplicates(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	record := NewBaseRecord("TestRecord")
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, record); err == nil {
		t.Fatal("expected duplicate save to fail")
	}
}

func TestUpdateMissingRecordFails(t *testing.T) {
	s := NewMemoryStorageService()

	record := NewBaseRecord("TestRecord")
	if err := s.Update(context.Background(), record); err == nil {
		t.Fatal("expected update of missing record to fail")
	}
}

func TestRecordsAreClonedOnReturn(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	record := NewBaseRecord("TestRecord")
	record.SetTag("state", "initial")
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.GetById(ctx, "TestRecord", record.GetId())
	if err != nil {
		t.Fatalf("GetById failed: %v", err)
	}
	got.SetTag("state", "mutated")

	again, err := s.GetById(ctx, "TestRecord", record.GetId())
	if err != nil {
		t.Fatalf("GetById failed: %v", err)
	}
	if value, _ := again.GetTag("state"); value != "initial" {
		t.Errorf("stored record was mutated through a returned clone")
	}
}

func TestFindByQueryWithTags(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	for _, color := range []string{"red", "blue", "blue"} {
		record := NewBaseRecord("TestRecord")
		record.SetTag("color", color)
		if err := s.Save(ctx, record); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	query := NewQuery().WithTag("color", "blue")
	records, err := s.FindByQuery(ctx, "TestRecord", *query)
	if err != nil {
		t.Fatalf("FindByQuery failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestFindByQueryLimitAndOffset(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := NewBaseRecord("TestRecord")
		record.SetTag("kind", "x")
		if err := s.Save(ctx, record); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	query := NewQuery().WithTag("kind", "x").WithLimit(2)
	records, err := s.FindByQuery(ctx, "TestRecord", *query)
	if err != nil {
		t.Fatalf("FindByQuery failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}

	query = NewQuery().WithTag("kind", "x")
	query.Offset = 4
	records, err = s.FindByQuery(ctx, "TestRecord", *query)
	if err != nil {
		t.Fatalf("FindByQuery failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after offset, got %d", len(records))
	}
}

func TestFindSingleByQuery(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	record := NewBaseRecord("TestRecord")
	record.SetTag("name", "unique")
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.FindSingleByQuery(ctx, "TestRecord", *NewQuery().WithTag("name", "unique"))
	if err != nil {
		t.Fatalf("FindSingleByQuery failed: %v", err)
	}
	if got.GetId() != record.GetId() {
		t.Errorf("expected id %s, got %s", record.GetId(), got.GetId())
	}

	if _, err := s.FindSingleByQuery(ctx, "TestRecord", *NewQuery().WithTag("name", "missing")); err == nil {
		t.Fatal("expected no-match query to fail")
	}
}

func TestDeleteById(t *testing.T) {
	s := NewMemoryStorageService()
	ctx := context.Background()

	record := NewBaseRecord("TestRecord")
	if err := s.Save(ctx, record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.DeleteById(ctx, "TestRecord", record.GetId()); err != nil {
		t.Fatalf("DeleteById failed: %v", err)
	}
	if _, err := s.GetById(ctx, "TestRecord", record.GetId()); err == nil {
		t.Fatal("expected deleted record to be gone")
	}
}
