package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/middlewares"
	"github.com/mesh05/Techolution-PRM/prm/types"

	"github.com/go-chi/chi/v5"
)

func ConversationRoutes(ctrl *controllers.ConversationController) chi.Router {
	r := chi.NewRouter()

	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		resp, err := ctrl.Create(r.Context(), uid)
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		limit := queryInt(r, "limit", 50, 1, 0)
		summaries, err := ctrl.List(r.Context(), uid, limit)
		if err != nil {
			return nil, 0, err
		}
		return summaries, http.StatusOK, nil
	}))

	r.Get("/{conversation_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		summary, err := ctrl.Get(r.Context(), uid, chi.URLParam(r, "conversation_id"))
		if err != nil {
			return nil, 0, err
		}
		return summary, http.StatusOK, nil
	}))

	r.Delete("/{conversation_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		if err := ctrl.Delete(r.Context(), uid, chi.URLParam(r, "conversation_id")); err != nil {
			return nil, 0, err
		}
		return types.OkResponse{Ok: true}, http.StatusOK, nil
	}))

	r.Post("/{conversation_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		var in types.MessageIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		msg, err := ctrl.AppendMessage(r.Context(), uid, chi.URLParam(r, "conversation_id"), in)
		if err != nil {
			return nil, 0, err
		}
		return msg, http.StatusOK, nil
	}))

	r.Get("/{conversation_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		limit := queryInt(r, "limit", 50, 1, 0)
		offset := queryInt(r, "offset", 0, 0, 0)
		msgs, err := ctrl.GetMessages(r.Context(), uid, chi.URLParam(r, "conversation_id"), limit, offset)
		if err != nil {
			return nil, 0, err
		}
		return msgs, http.StatusOK, nil
	}))

	return r
}
