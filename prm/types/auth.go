package types

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the session object the SPA keeps after sign-in.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ConversationID string `json:"conversation_id"`
	Token          string `json:"token,omitempty"`
}
