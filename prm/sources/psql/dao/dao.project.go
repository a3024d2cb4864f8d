package dao

import (
	"context"
	"errors"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"

	"gorm.io/gorm"
)

type ProjectDAO struct {
	DB *gorm.DB
}

func NewProjectDAO(db *gorm.DB) *ProjectDAO {
	return &ProjectDAO{DB: db}
}

func (dao *ProjectDAO) scoped(ctx context.Context, conversationID, userID string) *gorm.DB {
	q := dao.DB.WithContext(ctx).Model(&models.Project{}).
		Where("conversation_id = ?", conversationID)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	return q
}

func (dao *ProjectDAO) Create(ctx context.Context, p *models.Project) error {
	return dao.DB.WithContext(ctx).Create(p).Error
}

func (dao *ProjectDAO) Upsert(ctx context.Context, p *models.Project) error {
	return dao.DB.WithContext(ctx).Save(p).Error
}

func (dao *ProjectDAO) Get(ctx context.Context, projectID, conversationID, userID string) (*models.Project, error) {
	var p models.Project
	err := dao.scoped(ctx, conversationID, userID).
		Where("project_id = ?", projectID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (dao *ProjectDAO) Exists(ctx context.Context, projectID, conversationID, userID string) (bool, error) {
	var n int64
	err := dao.scoped(ctx, conversationID, userID).
		Where("project_id = ?", projectID).
		Count(&n).Error
	return n > 0, err
}

func (dao *ProjectDAO) Update(ctx context.Context, p *models.Project) error {
	return dao.DB.WithContext(ctx).Save(p).Error
}

func (dao *ProjectDAO) Delete(ctx context.Context, projectID, conversationID, userID string) error {
	p, err := dao.Get(ctx, projectID, conversationID, userID)
	if err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Delete(p).Error
}

func (dao *ProjectDAO) List(ctx context.Context, limit, offset int, name string, priority *models.Priority) ([]models.Project, int64, error) {
	q := dao.DB.WithContext(ctx).Model(&models.Project{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}
	if priority != nil {
		q = q.Where("priority = ?", *priority)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.Project
	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (dao *ProjectDAO) ForConversation(ctx context.Context, conversationID, userID string, limit int) ([]models.Project, error) {
	var items []models.Project
	err := dao.scoped(ctx, conversationID, userID).
		Order("project_id").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
