package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/configs"
	"github.com/mesh05/Techolution-PRM/prm/services/llm"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/dao"
	"github.com/mesh05/Techolution-PRM/prm/sources/psql/models"
	"github.com/mesh05/Techolution-PRM/prm/utils/jsonutils"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"go.uber.org/zap"
)

const (
	askHistoryLimit = 50
	askDatasetLimit = 200
)

// AskController runs the allocation assistant: question in, free-text answer
// out, with the conversation's dataset folded into the prompt.
type AskController struct {
	convDAO *dao.ConversationDAO
	data    *DataController
	llm     *llm.Client
	prompt  *configs.PromptConfig
}

func NewAskController(convDAO *dao.ConversationDAO, data *DataController, llmClient *llm.Client, prompt *configs.PromptConfig) *AskController {
	return &AskController{convDAO: convDAO, data: data, llm: llmClient, prompt: prompt}
}

func (c *AskController) buildMessages(ctx context.Context, userID, conversationID string) ([]llm.Message, error) {
	ds, err := c.data.Dataset(ctx, conversationID, userID, askDatasetLimit)
	if err != nil {
		return nil, err
	}
	system := strings.Join([]string{
		c.prompt.SystemRole,
		c.prompt.OutputStructure,
		c.prompt.DatasetHeader,
		jsonutils.ToJSON(ds),
	}, "\n\n")

	history, err := c.convDAO.GetMessages(ctx, userID, conversationID, askHistoryLimit, 0)
	if err != nil {
		return nil, err
	}
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: models.RoleSystem, Content: system})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages, nil
}

// Ask appends the question, queries the model and appends the answer. The
// answer text goes back verbatim; extraction of any embedded allocation JSON
// is the client's concern.
func (c *AskController) Ask(ctx context.Context, userID, conversationID, question string) (string, error) {
	defer logging.LogDuration(ctx, "ask")()

	if err := validateConversationID(conversationID); err != nil {
		return "", err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question must be non-empty", ErrValidation)
	}

	if _, err := c.convDAO.AppendMessage(ctx, userID, conversationID, models.RoleUser, question); err != nil {
		return "", err
	}
	messages, err := c.buildMessages(ctx, userID, conversationID)
	if err != nil {
		return "", err
	}
	answer, err := c.llm.Run(ctx, messages)
	if err != nil {
		logging.ErrorLogger.Error("llm ask failed", zap.Error(err))
		return "", fmt.Errorf("allocation query failed: %w", err)
	}
	if _, err := c.convDAO.AppendMessage(ctx, userID, conversationID, models.RoleAssistant, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// AskStream is the websocket variant: deltas on the channel, full answer
// persisted once the stream ends.
func (c *AskController) AskStream(ctx context.Context, userID, conversationID, question string) (<-chan string, error) {
	if err := validateConversationID(conversationID); err != nil {
		return nil, err
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must be non-empty", ErrValidation)
	}
	if _, err := c.convDAO.AppendMessage(ctx, userID, conversationID, models.RoleUser, question); err != nil {
		return nil, err
	}
	messages, err := c.buildMessages(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	deltas, err := c.llm.RunStream(ctx, messages)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		var full strings.Builder
		for delta := range deltas {
			full.WriteString(delta)
			select {
			case out <- delta:
			case <-ctx.Done():
				return
			}
		}
		if full.Len() == 0 {
			return
		}
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.convDAO.AppendMessage(saveCtx, userID, conversationID, models.RoleAssistant, full.String()); err != nil {
			logging.ErrorLogger.Error("persist streamed answer failed", zap.Error(err))
		}
	}()
	return out, nil
}
