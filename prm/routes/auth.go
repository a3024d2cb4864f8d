package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()
	r.Post("/signin", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		user, err := ctrl.SignIn(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return user, http.StatusOK, nil
	}))
	return r
}
