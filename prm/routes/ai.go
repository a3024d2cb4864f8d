package routes

import (
	"encoding/json"
	"net/http"

	"github.com/mesh05/Techolution-PRM/prm/config"
	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/middlewares"
	"github.com/mesh05/Techolution-PRM/prm/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

func AIRoutes(ctrl *controllers.AskController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/ask/{conversation_id}", handleJSON(func(r *http.Request) (any, int, error) {
			username := r.Context().Value(middlewares.UsernameKey).(string)
			var req types.AskRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, err
			}
			answer, err := ctrl.Ask(r.Context(), username, chi.URLParam(r, "conversation_id"), req.Question)
			if err != nil {
				return nil, 0, err
			}
			return types.AskResponse{Answer: answer}, http.StatusOK, nil
		}))
	})

	// streaming variant: first frame carries the token and question, then the
	// answer arrives as text deltas
	r.HandleFunc("/ask/{conversation_id}/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input struct {
			Token    string `json:"token"`
			Question string `json:"question"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		token, err := jwt.Parse(input.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid claims"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid claims")
			return
		}
		username, ok := claims["username"].(string)
		if !ok || username == "" {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid username"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid username")
			return
		}

		deltas, err := ctrl.AskStream(ctx, username, chi.URLParam(r, "conversation_id"), input.Question)
		if err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
			conn.Close(websocket.StatusInternalError, "stream error")
			return
		}
		for chunk := range deltas {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}
