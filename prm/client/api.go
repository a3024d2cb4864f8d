// Package client is the Go counterpart of the SPA's chat view: a thin API
// client plus the conversation session controller that owns the message log
// and the derived allocation result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/types"
)

// Session is the signed-in user's state, injected explicitly instead of read
// from anything global. Created at sign-in, dropped at logout.
type Session struct {
	ID             string
	Username       string
	ConversationID string
	Token          string
}

type API struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{
		BaseURL: baseURL,
		// the backend does not bound a hung ask, so the client does
		HTTP: &http.Client{Timeout: 120 * time.Second},
	}
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, sess *Session, body, out interface{}) error {
	u := a.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		if sess.Username != "" {
			req.Header.Set("X-User-ID", sess.Username)
		}
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr types.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, apiErr.Detail)
		}
		return fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// SignIn exchanges credentials for a fresh session with its own conversation.
func (a *API) SignIn(ctx context.Context, username, password string) (*Session, error) {
	var user types.User
	err := a.do(ctx, http.MethodPost, "/auth/signin", nil, nil,
		types.SignInRequest{Username: username, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:             user.ID,
		Username:       user.Username,
		ConversationID: user.ConversationID,
		Token:          user.Token,
	}, nil
}

func (a *API) CreateConversation(ctx context.Context, sess *Session) (string, error) {
	var resp types.CreateConversationResponse
	if err := a.do(ctx, http.MethodPost, "/conversations", nil, sess, nil, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (a *API) GetMessages(ctx context.Context, sess *Session, conversationID string, limit, offset int) ([]types.MessageOut, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var msgs []types.MessageOut
	err := a.do(ctx, http.MethodGet, "/conversations/"+conversationID+"/messages", q, sess, nil, &msgs)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Ask sends a question to the allocation assistant and returns its raw
// answer text.
func (a *API) Ask(ctx context.Context, sess *Session, conversationID, question string) (string, error) {
	var resp types.AskResponse
	err := a.do(ctx, http.MethodPost, "/ai/ask/"+conversationID, nil, sess,
		types.AskRequest{Question: question}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}
