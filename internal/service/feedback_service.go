package service

import (
	"errors"
	"strings"

	"github.com/storeadmin/internal/constants"
	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// FeedbackService 评价服务
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	variantRepo  repository.VariantRepository
	accountRepo  repository.AccountRepository
}

// NewFeedbackService 创建评价服务实例
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	variantRepo repository.VariantRepository,
	accountRepo repository.AccountRepository,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		variantRepo:  variantRepo,
		accountRepo:  accountRepo,
	}
}

// List 评价列表
func (s *FeedbackService) List(filter repository.FeedbackListFilter) ([]models.Feedback, int64, error) {
	return s.feedbackRepo.List(filter)
}

// Get 评价详情
func (s *FeedbackService) Get(id uint) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if feedback == nil {
		return nil, ErrNotFound
	}
	return feedback, nil
}

// CreateFeedbackInput 评价参数
type CreateFeedbackInput struct {
	ProductVariantID uint
	Rating           int
	Comment          string
}

// Create 顾客创建评价，评分范围 1-5
func (s *FeedbackService) Create(actor Actor, input CreateFeedbackInput) (*models.Feedback, error) {
	customer, err := s.accountRepo.GetCustomerByAccount(actor.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrForbidden
	}
	if input.Rating < constants.FeedbackRatingMin || input.Rating > constants.FeedbackRatingMax {
		return nil, ErrValidation
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" || input.ProductVariantID == 0 {
		return nil, ErrValidation
	}
	variant, err := s.variantRepo.GetByID(input.ProductVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrNotFound
	}

	feedback := &models.Feedback{
		ProductID:        variant.ProductID,
		ProductVariantID: variant.ID,
		CustomerID:       customer.ID,
		Rating:           input.Rating,
		Comment:          comment,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByID(feedback.ID)
}

// Delete 删除评价及其回复（同一事务）
func (s *FeedbackService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.feedbackRepo.WithTx(tx)
		if err := repo.DeleteResponseByFeedback(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
}

// resolveManager 解析操作者的店长身份
func (s *FeedbackService) resolveManager(tx *gorm.DB, actor Actor) (*models.Manager, error) {
	repo := s.accountRepo
	if tx != nil {
		repo = s.accountRepo.WithTx(tx)
	}
	manager, err := repo.GetManagerByAccount(actor.ID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, ErrManagerRequired
	}
	return manager, nil
}

// Respond 店长回复评价，每条评价至多一条回复。
// 店长解析与唯一性检查在同一事务内完成。
func (s *FeedbackService) Respond(actor Actor, feedbackID uint, content string) (*models.FeedbackResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}

	var response *models.FeedbackResponse
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.feedbackRepo.WithTx(tx)
		feedback, err := repo.GetByID(feedbackID)
		if err != nil {
			return err
		}
		if feedback == nil {
			return ErrNotFound
		}
		manager, err := s.resolveManager(tx, actor)
		if err != nil {
			return err
		}
		existing, err := repo.GetResponseByFeedback(feedbackID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrFeedbackResponded
		}

		response = &models.FeedbackResponse{
			FeedbackID: feedbackID,
			ManagerID:  manager.ID,
			Content:    content,
		}
		if err := repo.CreateResponse(response); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrFeedbackResponded
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// UpdateResponse 更新回复，仅限回复作者本人
func (s *FeedbackService) UpdateResponse(actor Actor, responseID uint, content string) (*models.FeedbackResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}
	response, err := s.feedbackRepo.GetResponseByID(responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, ErrNotFound
	}
	manager, err := s.resolveManager(nil, actor)
	if err != nil {
		return nil, err
	}
	if response.ManagerID != manager.ID {
		return nil, ErrForbidden
	}

	response.Content = content
	if err := s.feedbackRepo.UpdateResponse(response); err != nil {
		return nil, err
	}
	return response, nil
}

// DeleteResponse 删除回复，仅限回复作者本人
func (s *FeedbackService) DeleteResponse(actor Actor, responseID uint) error {
	response, err := s.feedbackRepo.GetResponseByID(responseID)
	if err != nil {
		return err
	}
	if response == nil {
		return ErrNotFound
	}
	manager, err := s.resolveManager(nil, actor)
	if err != nil {
		return err
	}
	if response.ManagerID != manager.ID {
		return ErrForbidden
	}
	return s.feedbackRepo.DeleteResponse(responseID)
}
