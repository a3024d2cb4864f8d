package dao

import (
	"context"
	"errors"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"

	"gorm.io/gorm"
)

type ConversationDAO struct {
	DB *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{DB: db}
}

func (dao *ConversationDAO) Create(ctx context.Context, userID string) (*models.Conversation, error) {
	conv := models.Conversation{
		ID:     models.NewConversationID(),
		UserID: userID,
	}
	if err := dao.DB.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (dao *ConversationDAO) Get(ctx context.Context, userID, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (dao *ConversationDAO) List(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (dao *ConversationDAO) Delete(ctx context.Context, userID, id string) error {
	if _, err := dao.Get(ctx, userID, id); err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Conversation{}).Error
	})
}

func (dao *ConversationDAO) CountMessages(ctx context.Context, conversationID string) (int64, error) {
	var n int64
	err := dao.DB.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&n).Error
	return n, err
}

func (dao *ConversationDAO) AppendMessage(ctx context.Context, userID, conversationID, role, content string) (*models.Message, error) {
	if _, err := dao.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	msg := models.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Ts:             time.Now().UTC(),
	}
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		// bump the conversation so list ordering tracks activity
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", msg.Ts).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessages returns a window of the conversation, oldest to newest, where
// offset counts back from the tail. offset=0,limit=50 is the latest 50.
func (dao *ConversationDAO) GetMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]models.Message, error) {
	if _, err := dao.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	n64, err := dao.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	n := int(n64)
	start := n - (offset + limit)
	if start < 0 {
		start = 0
	}
	end := n - offset
	if end < 0 {
		end = 0
	}
	if start >= end {
		return []models.Message{}, nil
	}
	var msgs []models.Message
	err = dao.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("ts ASC").
		Offset(start).
		Limit(end - start).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
