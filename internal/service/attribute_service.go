package service

import (
	"errors"
	"strings"

	"github.com/storeadmin/internal/models"
	"github.com/storeadmin/internal/repository"

	"gorm.io/gorm"
)

// AttributeService 属性服务
type AttributeService struct {
	attributeRepo repository.AttributeRepository
}

// NewAttributeService 创建属性服务实例
func NewAttributeService(attributeRepo repository.AttributeRepository) *AttributeService {
	return &AttributeService{attributeRepo: attributeRepo}
}

// List 属性列表
func (s *AttributeService) List(filter repository.AttributeListFilter) ([]models.Attribute, int64, error) {
	return s.attributeRepo.List(filter)
}

// Get 属性详情
func (s *AttributeService) Get(id uint) (*models.Attribute, error) {
	attribute, err := s.attributeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return nil, ErrNotFound
	}
	return attribute, nil
}

// AttributeInput 属性参数
type AttributeInput struct {
	Name string
}

// Create 创建属性
func (s *AttributeService) Create(input AttributeInput) (*models.Attribute, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	attribute := &models.Attribute{Name: name}
	if err := s.attributeRepo.Create(attribute); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return attribute, nil
}

// Update 更新属性
func (s *AttributeService) Update(id uint, input AttributeInput) (*models.Attribute, error) {
	attribute, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrValidation
	}
	attribute.Name = name
	if err := s.attributeRepo.Update(attribute); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return attribute, nil
}

// Delete 删除属性，属性下仍有取值时拒绝（取值需先逐个删除）
func (s *AttributeService) Delete(id uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.attributeRepo.WithTx(tx)
		attribute, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if attribute == nil {
			return ErrNotFound
		}
		values, err := repo.CountValues(id)
		if err != nil {
			return err
		}
		if values > 0 {
			return ErrAttributeInUse
		}
		return repo.Delete(id)
	})
}

// AddValue 新增属性取值
func (s *AttributeService) AddValue(attributeID uint, value string) (*models.AttributeValue, error) {
	if _, err := s.Get(attributeID); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, ErrValidation
	}
	attributeValue := &models.AttributeValue{
		AttributeID: attributeID,
		Value:       trimmed,
	}
	if err := s.attributeRepo.CreateValue(attributeValue); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return attributeValue, nil
}

// RemoveValue 删除属性取值，仍被变体引用时拒绝
func (s *AttributeService) RemoveValue(attributeID, valueID uint) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.attributeRepo.WithTx(tx)
		value, err := repo.GetValueByID(valueID)
		if err != nil {
			return err
		}
		if value == nil || value.AttributeID != attributeID {
			return ErrNotFound
		}
		linked, err := repo.CountValueLinks(valueID)
		if err != nil {
			return err
		}
		if linked > 0 {
			return ErrAttributeValueInUse
		}
		return repo.DeleteValue(valueID)
	})
}
