package routes

import (
	"fmt"
	"net/http"

	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/middlewares"

	"github.com/go-chi/chi/v5"
)

func FileRoutes(ctrl *controllers.FileController) chi.Router {
	r := chi.NewRouter()

	r.Post("/upload", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		cid := r.FormValue("conversation_id")
		if cid == "" {
			return nil, 0, fmt.Errorf("%w: conversation_id is required", controllers.ErrValidation)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, 0, fmt.Errorf("%w: file is required", controllers.ErrValidation)
		}
		defer file.Close()
		desc, err := ctrl.Upload(r.Context(), uid, cid, header.Filename,
			header.Header.Get("Content-Type"), file, header.Size)
		if err != nil {
			return nil, 0, err
		}
		return desc, http.StatusOK, nil
	}))

	r.Get("/{conversation_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		files, err := ctrl.List(r.Context(), uid, chi.URLParam(r, "conversation_id"))
		if err != nil {
			return nil, 0, err
		}
		return files, http.StatusOK, nil
	}))

	return r
}
