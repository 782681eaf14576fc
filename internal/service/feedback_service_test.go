package service

import (
	"errors"
	"testing"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

func newFeedbackService(db *gorm.DB) *FeedbackService {
	return NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewVariantRepository(db),
		repository.NewAccountRepository(db),
	)
}

func TestFeedbackCreateValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFeedbackService(db)

	account, _ := createTestCustomer(t, db, "reviewer@example.com")
	staff, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "FB-SKU-1", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	// 仅顾客身份可评价
	if _, err := svc.Create(actorFor(staff, constants.RoleManager), CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 5, Comment: "不错",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for staff, got %v", err)
	}

	for _, rating := range []int{0, 6} {
		if _, err := svc.Create(actor, CreateFeedbackInput{
			ProductVariantID: variant.ID, Rating: rating, Comment: "评分越界",
		}); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for rating %d, got %v", rating, err)
		}
	}
	if _, err := svc.Create(actor, CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 5, Comment: "   ",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank comment, got %v", err)
	}

	feedback, err := svc.Create(actor, CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 4, Comment: "质量不错",
	})
	if err != nil {
		t.Fatalf("create feedback failed: %v", err)
	}
	if feedback.ProductID != variant.ProductID {
		t.Fatalf("expected product id derived from variant")
	}
}

func TestFeedbackRespondOnce(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFeedbackService(db)

	account, _ := createTestCustomer(t, db, "reviewer@example.com")
	staff, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	other, _ := createTestStaff(t, db, "other@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "FB-SKU-2", "10.00", 5)

	feedback, err := svc.Create(actorFor(account, constants.RoleUser), CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 3, Comment: "一般",
	})
	if err != nil {
		t.Fatalf("create feedback failed: %v", err)
	}

	staffActor := actorFor(staff, constants.RoleManager)
	response, err := svc.Respond(staffActor, feedback.ID, "感谢反馈")
	if err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	// 每条评价至多一条回复
	if _, err := svc.Respond(actorFor(other, constants.RoleManager), feedback.ID, "再次回复"); !errors.Is(err, ErrFeedbackResponded) {
		t.Fatalf("expected ErrFeedbackResponded, got %v", err)
	}

	// 回复仅作者可改
	if _, err := svc.UpdateResponse(actorFor(other, constants.RoleManager), response.ID, "篡改"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}
	updated, err := svc.UpdateResponse(staffActor, response.ID, "已为您补发")
	if err != nil {
		t.Fatalf("update response failed: %v", err)
	}
	if updated.Content != "已为您补发" {
		t.Fatalf("unexpected content %q", updated.Content)
	}

	if err := svc.DeleteResponse(actorFor(other, constants.RoleManager), response.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author delete, got %v", err)
	}
	if err := svc.DeleteResponse(staffActor, response.ID); err != nil {
		t.Fatalf("delete response failed: %v", err)
	}
	if _, err := svc.Respond(staffActor, feedback.ID, "重新回复"); err != nil {
		t.Fatalf("respond after delete failed: %v", err)
	}
}

func TestFeedbackRespondRequiresManager(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFeedbackService(db)

	account, _ := createTestCustomer(t, db, "reviewer@example.com")
	_, variant := createTestVariant(t, db, "FB-SKU-3", "10.00", 5)
	actor := actorFor(account, constants.RoleUser)

	feedback, err := svc.Create(actor, CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 5, Comment: "好评",
	})
	if err != nil {
		t.Fatalf("create feedback failed: %v", err)
	}
	if _, err := svc.Respond(actor, feedback.ID, "自问自答"); !errors.Is(err, ErrManagerRequired) {
		t.Fatalf("expected ErrManagerRequired, got %v", err)
	}
}

func TestFeedbackDeleteCascadesResponse(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFeedbackService(db)

	account, _ := createTestCustomer(t, db, "reviewer@example.com")
	staff, _ := createTestStaff(t, db, "manager@example.com", constants.RoleManager)
	_, variant := createTestVariant(t, db, "FB-SKU-4", "10.00", 5)

	feedback, err := svc.Create(actorFor(account, constants.RoleUser), CreateFeedbackInput{
		ProductVariantID: variant.ID, Rating: 2, Comment: "有色差",
	})
	if err != nil {
		t.Fatalf("create feedback failed: %v", err)
	}
	if _, err := svc.Respond(actorFor(staff, constants.RoleManager), feedback.ID, "支持退换"); err != nil {
		t.Fatalf("respond failed: %v", err)
	}

	if err := svc.Delete(feedback.ID); err != nil {
		t.Fatalf("delete feedback failed: %v", err)
	}
	var responses int64
	db.Model(&models.FeedbackResponse{}).Where("feedback_id = ?", feedback.ID).Count(&responses)
	if responses != 0 {
		t.Fatalf("expected response cascade deleted, got %d", responses)
	}
}
