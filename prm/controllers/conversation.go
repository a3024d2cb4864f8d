package controllers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/types"
)

// conversation ids are uuid hex, 32 chars, no dashes
var conversationIDRE = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

type ConversationController struct {
	convDAO *dao.ConversationDAO
}

func NewConversationController(convDAO *dao.ConversationDAO) *ConversationController {
	return &ConversationController{convDAO: convDAO}
}

func validateConversationID(id string) error {
	if !conversationIDRE.MatchString(id) {
		return fmt.Errorf("%w: conversation_id must be uuid hex (32 chars)", ErrValidation)
	}
	return nil
}

func (c *ConversationController) Create(ctx context.Context, userID string) (*types.CreateConversationResponse, error) {
	conv, err := c.convDAO.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &types.CreateConversationResponse{ID: conv.ID}, nil
}

func (c *ConversationController) summarize(ctx context.Context, conv *models.Conversation) (*types.ConversationSummary, error) {
	count, err := c.convDAO.CountMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	lastAt := conv.UpdatedAt.UTC().Format(time.RFC3339)
	return &types.ConversationSummary{
		ID:     conv.ID,
		LastAt: &lastAt,
		Count:  count,
	}, nil
}

func (c *ConversationController) List(ctx context.Context, userID string, limit int) ([]types.ConversationSummary, error) {
	convs, err := c.convDAO.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.ConversationSummary, 0, len(convs))
	for i := range convs {
		s, err := c.summarize(ctx, &convs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (c *ConversationController) Get(ctx context.Context, userID, id string) (*types.ConversationSummary, error) {
	if err := validateConversationID(id); err != nil {
		return nil, err
	}
	conv, err := c.convDAO.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return c.summarize(ctx, conv)
}

func (c *ConversationController) Delete(ctx context.Context, userID, id string) error {
	if err := validateConversationID(id); err != nil {
		return err
	}
	return c.convDAO.Delete(ctx, userID, id)
}

func (c *ConversationController) AppendMessage(ctx context.Context, userID, id string, in types.MessageIn) (*types.MessageOut, error) {
	if err := validateConversationID(id); err != nil {
		return nil, err
	}
	if !models.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: role must be system, user or assistant", ErrValidation)
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content must be non-empty", ErrValidation)
	}
	msg, err := c.convDAO.AppendMessage(ctx, userID, id, in.Role, content)
	if err != nil {
		return nil, err
	}
	out := toMessageOut(msg)
	return &out, nil
}

func (c *ConversationController) GetMessages(ctx context.Context, userID, id string, limit, offset int) ([]types.MessageOut, error) {
	if err := validateConversationID(id); err != nil {
		return nil, err
	}
	msgs, err := c.convDAO.GetMessages(ctx, userID, id, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]types.MessageOut, 0, len(msgs))
	for i := range msgs {
		out = append(out, toMessageOut(&msgs[i]))
	}
	return out, nil
}

func toMessageOut(m *models.Message) types.MessageOut {
	return types.MessageOut{
		Role:    m.Role,
		Content: m.Content,
		Ts:      m.Ts.UTC().Format(time.RFC3339),
	}
}
