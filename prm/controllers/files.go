package controllers

import (
	"context"
	"io"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/sources/storage"
	"github.com/mesh05/Techolution-PRM/prm/types"
)

type FileController struct {
	fileDAO *dao.FileDAO
	convDAO *dao.ConversationDAO
	store   *storage.MinIOClient
}

func NewFileController(fileDAO *dao.FileDAO, convDAO *dao.ConversationDAO, store *storage.MinIOClient) *FileController {
	return &FileController{fileDAO: fileDAO, convDAO: convDAO, store: store}
}

// Upload streams the document into object storage and records its metadata.
func (c *FileController) Upload(ctx context.Context, userID, conversationID, filename, contentType string, body io.Reader, size int64) (*types.FileDescriptor, error) {
	if err := validateConversationID(conversationID); err != nil {
		return nil, err
	}
	if _, err := c.convDAO.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	key, err := c.store.UploadDocument(ctx, conversationID, filename, contentType, body, size)
	if err != nil {
		return nil, err
	}
	f := models.UploadedFile{
		ConversationID: conversationID,
		UserID:         userID,
		Name:           storage.SanitizeName(filename),
		Key:            key,
		Size:           size,
		ContentType:    contentType,
	}
	if err := c.fileDAO.Create(ctx, &f); err != nil {
		return nil, err
	}
	d := toFileDescriptor(&f)
	return &d, nil
}

func (c *FileController) List(ctx context.Context, userID, conversationID string) ([]types.FileDescriptor, error) {
	if err := validateConversationID(conversationID); err != nil {
		return nil, err
	}
	files, err := c.fileDAO.ListByConversation(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]types.FileDescriptor, 0, len(files))
	for i := range files {
		out = append(out, toFileDescriptor(&files[i]))
	}
	return out, nil
}

func toFileDescriptor(f *models.UploadedFile) types.FileDescriptor {
	return types.FileDescriptor{
		ID:             f.ID,
		ConversationID: f.ConversationID,
		Name:           f.Name,
		Size:           f.Size,
		ContentType:    f.ContentType,
		CreatedAt:      f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
