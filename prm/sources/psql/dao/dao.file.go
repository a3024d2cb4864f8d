package dao

import (
	"context"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"

	"gorm.io/gorm"
)

type FileDAO struct {
	DB *gorm.DB
}

func NewFileDAO(db *gorm.DB) *FileDAO {
	return &FileDAO{DB: db}
}

func (dao *FileDAO) Create(ctx context.Context, f *models.UploadedFile) error {
	return dao.DB.WithContext(ctx).Create(f).Error
}

func (dao *FileDAO) ListByConversation(ctx context.Context, conversationID, userID string) ([]models.UploadedFile, error) {
	q := dao.DB.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	var files []models.UploadedFile
	err := q.Order("created_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
