package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"

	"github.com/mesh05/Techolution-PRM/prm/config"
	httputils "github.com/mesh05/Techolution-PRM/prm/utils/http"
	"github.com/mesh05/Techolution-PRM/prm/utils/logging"

	"go.uber.org/zap"
)

// Client talks to an OpenAI-compatible chat completions endpoint (Ollama's
// /v1 works too).
type Client struct {
	baseURL string
	apiKey  string
	model   string
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.LLMBaseURL, "/"),
		apiKey:  cfg.LLMAPIKey,
		model:   cfg.LLMModel,
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (c *Client) headers() map[string]string {
	h := map[string]string{}
	if c.apiKey != "" {
		h["Authorization"] = "Bearer " + c.apiKey
	}
	return h
}

func (c *Client) Run(ctx context.Context, messages []Message) (string, error) {
	defer logging.LogDuration(ctx, "llm_run")()
	req := chatRequest{Model: c.model, Messages: messages, Stream: false}
	var resp chatResponse
	if err := httputils.PostJSON(ctx, c.baseURL+"/chat/completions", c.headers(), req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// RunStream emits content deltas on the returned channel until the server
// sends [DONE] or the context is cancelled.
func (c *Client) RunStream(ctx context.Context, messages []Message) (<-chan string, error) {
	defer logging.LogDuration(ctx, "llm_run_stream")()

	req := chatRequest{Model: c.model, Messages: messages, Stream: true}
	body, err := httputils.PostStream(ctx, c.baseURL+"/chat/completions", c.headers(), req)
	if err != nil {
		return nil, err
	}

	ch := make(chan string)
	go func() {
		defer func() {
			close(ch)
			body.Close()
		}()
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				return
			}
			var chunk chatResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				logging.ErrorLogger.Error("llm stream decode error", zap.Error(err))
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case ch <- delta:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logging.ErrorLogger.Error("llm stream read error", zap.Error(err))
		}
	}()

	return ch, nil
}
