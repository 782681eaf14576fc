package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/repository"
)

func TestAttributeValueLifecycle(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAttributeService(repository.NewAttributeRepository(db))

	attribute, err := svc.Create(AttributeInput{Name: "颜色"})
	if err != nil {
		t.Fatalf("create attribute failed: %v", err)
	}
	if _, err := svc.Create(AttributeInput{Name: "颜色"}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	value, err := svc.AddValue(attribute.ID, " 黑色 ")
	if err != nil {
		t.Fatalf("add value failed: %v", err)
	}
	if value.Value != "黑色" {
		t.Fatalf("expected trimmed value, got %q", value.Value)
	}
	if _, err := svc.AddValue(attribute.ID, "黑色"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName for duplicate value, got %v", err)
	}
	if _, err := svc.AddValue(999, "蓝色"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing attribute, got %v", err)
	}

	if err := svc.RemoveValue(attribute.ID, value.ID); err != nil {
		t.Fatalf("remove value failed: %v", err)
	}
	if err := svc.RemoveValue(attribute.ID, value.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for removed value, got %v", err)
	}
}

func TestAttributeDeleteBlockedByValues(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewAttributeService(repository.NewAttributeRepository(db))
	variantSvc := newVariantService(db)

	value := createTestAttributeValue(t, db, "尺码", "M")
	_, variant := createTestVariant(t, db, "ATTR-SKU-1", "10.00", 5)
	if _, err := variantSvc.AssignAttribute(variant.ID, value.ID); err != nil {
		t.Fatalf("assign attribute failed: %v", err)
	}

	// 取值仍被变体引用
	if err := svc.RemoveValue(value.AttributeID, value.ID); !errors.Is(err, ErrAttributeValueInUse) {
		t.Fatalf("expected ErrAttributeValueInUse, got %v", err)
	}
	// 属性下仍有取值
	if err := svc.Delete(value.AttributeID); !errors.Is(err, ErrAttributeInUse) {
		t.Fatalf("expected ErrAttributeInUse, got %v", err)
	}

	// 取值不再被引用后仍不可直接删属性，须先删光取值
	if err := variantSvc.UnassignAttribute(variant.ID, value.AttributeID, value.ID); err != nil {
		t.Fatalf("unassign attribute failed: %v", err)
	}
	if err := svc.Delete(value.AttributeID); !errors.Is(err, ErrAttributeInUse) {
		t.Fatalf("expected ErrAttributeInUse while values remain, got %v", err)
	}

	if err := svc.RemoveValue(value.AttributeID, value.ID); err != nil {
		t.Fatalf("remove value failed: %v", err)
	}
	if err := svc.Delete(value.AttributeID); err != nil {
		t.Fatalf("delete attribute failed: %v", err)
	}
	if _, err := svc.Get(value.AttributeID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
