package client

import (
	"context"
	"strings"
	"sync"
)

// Status tracks the session view's lifecycle: Idle until the first load,
// Loading while history is fetched, AwaitingAnswer while an ask is in
// flight, otherwise Ready. Failures fall back to Ready with an inline error.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusAwaitingAnswer
)

const (
	historyLimit = 200

	pendingText = "…"
	// fixed, user-readable fallback when an ask fails
	askFailedText = "Sorry, something went wrong while answering. Please try again."
	// shown instead of the raw JSON payload when an allocation was extracted
	allocationAckText = "I've put together an allocation plan. See the allocation panel for details."
)

// ChatMessage is one entry of the local message log. Pending marks the
// transient assistant placeholder shown while an answer is in flight.
type ChatMessage struct {
	Role    string
	Content string
	Pending bool
}

// Controller owns a conversation view: the message log and the allocation
// result derived from it. Mutations are applied under a single lock; each
// ask carries a sequence number so a response that was superseded by a newer
// ask (or a conversation reset) is discarded instead of applied
// last-write-wins.
type Controller struct {
	api  *API
	sess *Session

	mu       sync.Mutex
	messages []ChatMessage
	result   *AllocationResult
	status   Status
	lastErr  string
	seq      uint64
}

func NewController(api *API, sess *Session) *Controller {
	return &Controller{api: api, sess: sess, status: StatusIdle}
}

// LoadHistory replaces the local log with the server's view of the
// conversation and re-derives the allocation result from the newest
// assistant message that carries one. A failed load keeps prior state and
// only records a recoverable error.
func (c *Controller) LoadHistory(ctx context.Context) error {
	c.mu.Lock()
	c.status = StatusLoading
	cid := c.sess.ConversationID
	c.mu.Unlock()

	msgs, err := c.api.GetMessages(ctx, c.sess, cid, historyLimit, 0)
	if err != nil {
		c.mu.Lock()
		c.status = StatusReady
		c.lastErr = "failed to load conversation history"
		c.mu.Unlock()
		return err
	}

	log := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		log = append(log, ChatMessage{Role: m.Role, Content: m.Content})
	}
	var result *AllocationResult
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != "assistant" {
			continue
		}
		if res, ok := ParseAllocationResult(msgs[i].Content); ok {
			result = res
			break
		}
	}

	c.mu.Lock()
	c.messages = log
	c.result = result
	c.status = StatusReady
	c.lastErr = ""
	c.mu.Unlock()
	return nil
}

// AskQuestion optimistically appends the question and a pending placeholder,
// then resolves the placeholder from the server's answer. Blank input is a
// no-op. The caller is expected to disable its submit affordance while
// Status is AwaitingAnswer.
func (c *Controller) AskQuestion(ctx context.Context, text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return nil
	}

	c.mu.Lock()
	c.seq++
	mySeq := c.seq
	cid := c.sess.ConversationID
	c.messages = append(c.messages,
		ChatMessage{Role: "user", Content: question},
		ChatMessage{Role: "assistant", Content: pendingText, Pending: true},
	)
	placeholderIdx := len(c.messages) - 1
	c.status = StatusAwaitingAnswer
	c.mu.Unlock()

	answer, err := c.api.Ask(ctx, c.sess, cid, question)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != mySeq {
		// superseded by a newer ask or a conversation reset; drop the
		// orphaned placeholder along with the answer
		c.discardPending(placeholderIdx)
		return nil
	}
	c.status = StatusReady
	if err != nil {
		c.resolvePending(askFailedText)
		return err
	}
	if res, ok := ParseAllocationResult(answer); ok && len(res.Allocations) > 0 {
		c.result = res
		c.resolvePending(allocationAckText)
	} else {
		c.resolvePending(answer)
	}
	return nil
}

// discardPending removes the placeholder at idx if it is still pending.
// Caller holds mu; a conversation reset may already have cleared the log.
func (c *Controller) discardPending(idx int) {
	if idx < 0 || idx >= len(c.messages) || !c.messages[idx].Pending {
		return
	}
	c.messages = append(c.messages[:idx], c.messages[idx+1:]...)
}

// resolvePending replaces the newest pending placeholder. Caller holds mu.
func (c *Controller) resolvePending(content string) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Pending {
			c.messages[i] = ChatMessage{Role: "assistant", Content: content}
			return
		}
	}
	c.messages = append(c.messages, ChatMessage{Role: "assistant", Content: content})
}

// StartNewConversation swaps the session onto a fresh conversation and
// resets local state. When the create call fails nothing changes.
func (c *Controller) StartNewConversation(ctx context.Context) error {
	id, err := c.api.CreateConversation(ctx, c.sess)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++ // invalidate any in-flight ask
	c.sess.ConversationID = id
	c.messages = nil
	c.result = nil
	c.lastErr = ""
	c.status = StatusReady
	return nil
}

func (c *Controller) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Controller) Result() *AllocationResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastError is the inline, recoverable error message; empty when none.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) ConversationID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess.ConversationID
}
