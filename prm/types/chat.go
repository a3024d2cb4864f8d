package types

type MessageIn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type MessageOut struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Ts      string `json:"ts"`
}

type ConversationSummary struct {
	ID     string  `json:"id"`
	LastAt *string `json:"last_at"`
	Count  int64   `json:"count"`
}

type CreateConversationResponse struct {
	ID string `json:"id"`
}

type OkResponse struct {
	Ok bool `json:"ok"`
}

type AskRequest struct {
	Question string `json:"question"`
}

// Answer is free text; it may carry a fenced ```json allocation block, or be
// a JSON envelope whose "output" wraps the block again. Clients are expected
// to extract defensively.
type AskResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
