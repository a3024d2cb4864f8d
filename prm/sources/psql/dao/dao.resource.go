package dao

import (
	"context"
	"errors"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"

	"gorm.io/gorm"
)

type ResourceDAO struct {
	DB *gorm.DB
}

func NewResourceDAO(db *gorm.DB) *ResourceDAO {
	return &ResourceDAO{DB: db}
}

func (dao *ResourceDAO) scoped(ctx context.Context, conversationID, userID string) *gorm.DB {
	q := dao.DB.WithContext(ctx).Model(&models.Resource{}).
		Where("conversation_id = ?", conversationID)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	return q
}

func (dao *ResourceDAO) Create(ctx context.Context, r *models.Resource) error {
	return dao.DB.WithContext(ctx).Create(r).Error
}

// Upsert writes by primary key, used by spreadsheet ingest.
func (dao *ResourceDAO) Upsert(ctx context.Context, r *models.Resource) error {
	return dao.DB.WithContext(ctx).Save(r).Error
}

func (dao *ResourceDAO) Get(ctx context.Context, resourceID, conversationID, userID string) (*models.Resource, error) {
	var r models.Resource
	err := dao.scoped(ctx, conversationID, userID).
		Where("resource_id = ?", resourceID).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (dao *ResourceDAO) Exists(ctx context.Context, resourceID, conversationID, userID string) (bool, error) {
	var n int64
	err := dao.scoped(ctx, conversationID, userID).
		Where("resource_id = ?", resourceID).
		Count(&n).Error
	return n > 0, err
}

func (dao *ResourceDAO) Update(ctx context.Context, r *models.Resource) error {
	return dao.DB.WithContext(ctx).Save(r).Error
}

func (dao *ResourceDAO) Delete(ctx context.Context, resourceID, conversationID, userID string) error {
	r, err := dao.Get(ctx, resourceID, conversationID, userID)
	if err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Delete(r).Error
}

// List is unscoped pagination for the admin table, with an optional name
// substring filter.
func (dao *ResourceDAO) List(ctx context.Context, limit, offset int, name string) ([]models.Resource, int64, error) {
	q := dao.DB.WithContext(ctx).Model(&models.Resource{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.Resource
	err := q.Order("resource_id").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ForConversation returns the compact slice fed to dashboards and the
// allocation prompt.
func (dao *ResourceDAO) ForConversation(ctx context.Context, conversationID, userID string, limit int) ([]models.Resource, error) {
	var items []models.Resource
	err := dao.scoped(ctx, conversationID, userID).
		Order("resource_id").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
