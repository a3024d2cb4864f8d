package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/mesh05/Techolution-PRM/prm/types"
)

// --- Helpers ---

type fakeBackend struct {
	mux *http.ServeMux

	askCalls    int64
	askAnswer   string
	askStatus   int
	createID    string
	createFails bool
	history     []types.MessageOut
	historyFail bool
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{
		mux:       http.NewServeMux(),
		askStatus: http.StatusOK,
		createID:  "b2c3d4e5f60718293a4b5c6d7e8f9012",
	}
	f.mux.HandleFunc("POST /conversations", func(w http.ResponseWriter, r *http.Request) {
		if f.createFails {
			writeDetail(w, http.StatusInternalServerError, "create failed")
			return
		}
		json.NewEncoder(w).Encode(types.CreateConversationResponse{ID: f.createID})
	})
	f.mux.HandleFunc("GET /conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		if f.historyFail {
			writeDetail(w, http.StatusInternalServerError, "boom")
			return
		}
		msgs := f.history
		if msgs == nil {
			msgs = []types.MessageOut{}
		}
		json.NewEncoder(w).Encode(msgs)
	})
	f.mux.HandleFunc("POST /ai/ask/{id}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.askCalls, 1)
		if f.askStatus != http.StatusOK {
			writeDetail(w, f.askStatus, "assistant unavailable")
			return
		}
		json.NewEncoder(w).Encode(types.AskResponse{Answer: f.askAnswer})
	})
	return f
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(types.ErrorResponse{Detail: detail})
}

func setupController(t *testing.T, f *fakeBackend) *Controller {
	srv := httptest.NewServer(f.mux)
	t.Cleanup(srv.Close)
	api := NewAPI(srv.URL)
	sess := &Session{
		ID:             "u-1",
		Username:       "demo",
		ConversationID: "a1b2c3d4e5f60718293a4b5c6d7e8f90",
	}
	return NewController(api, sess)
}

const allocationAnswer = "Here you go:\n```json\n{\"Role\": \"Engineer\", \"Allocations\": [{\"Name\": \"Asha\", \"Skills\": [\"Go\"], \"Proficiency\": \"Expert\", \"MatchPercentage\": 92, \"Reasoning\": \"strong fit\"}], \"TotalHours\": 80, \"Plan\": \"two sprints\"}\n```"

// --- AskQuestion ---

func TestAskQuestionBlankIsNoOp(t *testing.T) {
	f := newFakeBackend()
	c := setupController(t, f)

	for _, input := range []string{"", "   ", "\t\n"} {
		if err := c.AskQuestion(context.Background(), input); err != nil {
			t.Errorf("blank ask %q returned error: %v", input, err)
		}
	}
	if n := atomic.LoadInt64(&f.askCalls); n != 0 {
		t.Errorf("expected no ask requests for blank input, got %d", n)
	}
	if len(c.Messages()) != 0 {
		t.Errorf("expected empty log after blank asks, got %v", c.Messages())
	}
}

func TestAskQuestionAllocationPayload(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer to Apollo"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected user + assistant entries, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "Allocate an engineer to Apollo" {
		t.Errorf("unexpected user entry: %+v", msgs[0])
	}
	if msgs[1].Pending {
		t.Errorf("placeholder should be resolved")
	}
	if msgs[1].Content != allocationAckText {
		t.Errorf("expected acknowledgment text, got %q", msgs[1].Content)
	}

	res := c.Result()
	if res == nil {
		t.Fatalf("expected an allocation result")
	}
	if res.Role != "Engineer" || len(res.Allocations) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	a := res.Allocations[0]
	if a.Name != "Asha" || a.MatchPercentage != 92 || len(a.Skills) != 1 || a.Skills[0] != "Go" {
		t.Errorf("unexpected allocation: %+v", a)
	}
	if c.Status() != StatusReady {
		t.Errorf("expected Ready after ask, got %v", c.Status())
	}
}

func TestAskQuestionPlainTextKeepsResult(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	prior := c.Result()

	f.askAnswer = "Check right, I verified the availability for you."
	if err := c.AskQuestion(context.Background(), "Check right"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}

	msgs := c.Messages()
	last := msgs[len(msgs)-1]
	if last.Content != "Check right, I verified the availability for you." {
		t.Errorf("expected raw text fallback, got %q", last.Content)
	}
	if !reflect.DeepEqual(c.Result(), prior) {
		t.Errorf("result changed on a non-payload answer")
	}
}

func TestAskQuestionEmptyAllocationsShowsRaw(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = `{"Role": "Engineer", "Allocations": []}`
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "anyone free?"); err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	msgs := c.Messages()
	if got := msgs[len(msgs)-1].Content; got != f.askAnswer {
		t.Errorf("expected raw text for empty Allocations, got %q", got)
	}
	if c.Result() != nil {
		t.Errorf("empty Allocations must not replace the result")
	}
}

func TestAskQuestionServerErrorShowsFixedMessage(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer"); err != nil {
		t.Fatalf("seed ask failed: %v", err)
	}
	prior := c.Result()

	f.askStatus = http.StatusInternalServerError
	if err := c.AskQuestion(context.Background(), "and a designer?"); err == nil {
		t.Fatalf("expected an error from a failing ask")
	}

	msgs := c.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 log entries, got %d", len(msgs))
	}
	last := msgs[len(msgs)-1]
	if last.Content != askFailedText {
		t.Errorf("expected fixed failure text, got %q", last.Content)
	}
	if last.Pending {
		t.Errorf("placeholder should be resolved on failure")
	}
	if !reflect.DeepEqual(c.Result(), prior) {
		t.Errorf("result changed on a failed ask")
	}
	if c.Status() != StatusReady {
		t.Errorf("expected Ready after failed ask, got %v", c.Status())
	}
}

func TestAskQuestionSupersededResponseDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ai/ask/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req types.AskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad ask body: %v", err)
		}
		if req.Question == "slow question" {
			close(entered)
			<-release
			json.NewEncoder(w).Encode(types.AskResponse{Answer: "late answer"})
			return
		}
		json.NewEncoder(w).Encode(types.AskResponse{Answer: "quick answer"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := NewAPI(srv.URL)
	sess := &Session{Username: "demo", ConversationID: "a1b2c3d4e5f60718293a4b5c6d7e8f90"}
	c := NewController(api, sess)

	done := make(chan error, 1)
	go func() {
		done <- c.AskQuestion(context.Background(), "slow question")
	}()
	<-entered

	if err := c.AskQuestion(context.Background(), "quick question"); err != nil {
		t.Fatalf("second ask failed: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("superseded ask should be dropped silently, got %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected the orphaned placeholder removed, got %d entries: %+v", len(msgs), msgs)
	}
	for _, m := range msgs {
		if m.Pending {
			t.Errorf("pending placeholder left behind: %+v", m)
		}
		if m.Content == "late answer" {
			t.Errorf("superseded answer applied: %+v", m)
		}
	}
	if msgs[2].Content != "quick answer" {
		t.Errorf("expected the newer answer to win, got %q", msgs[2].Content)
	}
}

// --- LoadHistory ---

func TestLoadHistoryDerivesResult(t *testing.T) {
	f := newFakeBackend()
	f.history = []types.MessageOut{
		{Role: "user", Content: "hi", Ts: "2026-08-01T10:00:00Z"},
		{Role: "assistant", Content: allocationAnswer, Ts: "2026-08-01T10:00:05Z"},
		{Role: "user", Content: "thanks", Ts: "2026-08-01T10:01:00Z"},
		{Role: "assistant", Content: "You're welcome!", Ts: "2026-08-01T10:01:02Z"},
	}
	c := setupController(t, f)

	if err := c.LoadHistory(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got := len(c.Messages()); got != 4 {
		t.Fatalf("expected 4 messages, got %d", got)
	}
	res := c.Result()
	if res == nil || res.Role != "Engineer" {
		t.Errorf("expected result from older assistant message, got %+v", res)
	}
	if c.Status() != StatusReady {
		t.Errorf("expected Ready after load, got %v", c.Status())
	}
}

func TestLoadHistoryFailureKeepsState(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer"); err != nil {
		t.Fatalf("seed ask failed: %v", err)
	}
	before := c.Messages()
	priorResult := c.Result()

	f.historyFail = true
	if err := c.LoadHistory(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if !reflect.DeepEqual(c.Messages(), before) {
		t.Errorf("message log changed on a failed load")
	}
	if !reflect.DeepEqual(c.Result(), priorResult) {
		t.Errorf("result changed on a failed load")
	}
	if c.LastError() == "" {
		t.Errorf("expected a recoverable load error message")
	}
	if c.Status() != StatusReady {
		t.Errorf("expected Ready after failed load, got %v", c.Status())
	}
}

// --- StartNewConversation ---

func TestStartNewConversationResets(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer"); err != nil {
		t.Fatalf("seed ask failed: %v", err)
	}
	oldID := c.ConversationID()

	if err := c.StartNewConversation(context.Background()); err != nil {
		t.Fatalf("new conversation failed: %v", err)
	}
	if c.ConversationID() == oldID {
		t.Errorf("conversation id unchanged after reset")
	}
	if len(c.Messages()) != 0 {
		t.Errorf("expected empty log after reset")
	}
	if c.Result() != nil {
		t.Errorf("expected no result after reset")
	}
}

func TestStartNewConversationFailureKeepsState(t *testing.T) {
	f := newFakeBackend()
	f.askAnswer = allocationAnswer
	c := setupController(t, f)

	if err := c.AskQuestion(context.Background(), "Allocate an engineer"); err != nil {
		t.Fatalf("seed ask failed: %v", err)
	}
	oldID := c.ConversationID()
	before := c.Messages()
	priorResult := c.Result()

	f.createFails = true
	if err := c.StartNewConversation(context.Background()); err == nil {
		t.Fatalf("expected create error")
	}
	if c.ConversationID() != oldID {
		t.Errorf("conversation id changed on a failed create")
	}
	if !reflect.DeepEqual(c.Messages(), before) {
		t.Errorf("message log changed on a failed create")
	}
	if !reflect.DeepEqual(c.Result(), priorResult) {
		t.Errorf("result changed on a failed create")
	}
}

// --- ParseAllocationResult ---

func TestParseAllocationResultRequiresArray(t *testing.T) {
	if _, ok := ParseAllocationResult(`{"Role": "Engineer", "Allocations": "Asha"}`); ok {
		t.Errorf("non-array Allocations must be rejected")
	}
	if _, ok := ParseAllocationResult(`{"Role": "Engineer"}`); ok {
		t.Errorf("missing Allocations must be rejected")
	}
	if _, ok := ParseAllocationResult("no json here"); ok {
		t.Errorf("plain text must be rejected")
	}
}

func TestParseAllocationResultDoubleEncoded(t *testing.T) {
	input := `{"output": "{\"Role\": \"Engineer\", \"Allocations\": [{\"Name\": \"Asha\"}]}"}`
	res, ok := ParseAllocationResult(input)
	if !ok {
		t.Fatalf("expected a result from double-encoded output")
	}
	if len(res.Allocations) != 1 || res.Allocations[0].Name != "Asha" {
		t.Errorf("unexpected result: %+v", res)
	}
}
