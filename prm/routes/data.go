package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/mesh05/Techolution-PRM/prm/controllers"
	"github.com/mesh05/Techolution-PRM/prm/ingest"
	"github.com/mesh05/Techolution-PRM/prm/middlewares"
	"github.com/mesh05/Techolution-PRM/prm/types"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

func DataRoutes(data *controllers.DataController, ing *controllers.IngestController) chi.Router {
	r := chi.NewRouter()

	r.Post("/resources/upload", ingestHandler(ing.IngestResources))
	r.Post("/projects/upload", ingestHandler(ing.IngestProjects))

	r.Get("/dataset", handleJSON(func(r *http.Request) (any, int, error) {
		uid, err := middlewares.ResolveUser(r)
		if err != nil {
			return nil, 0, err
		}
		cid := r.URL.Query().Get("conversation_id")
		if cid == "" {
			return nil, 0, fmt.Errorf("%w: conversation_id is required", controllers.ErrValidation)
		}
		limit := queryInt(r, "limit", 200, 1, 1000)
		ds, err := data.Dataset(r.Context(), cid, uid, limit)
		if err != nil {
			return nil, 0, err
		}
		return ds, http.StatusOK, nil
	}))

	r.Get("/debug/status", handleJSON(func(r *http.Request) (any, int, error) {
		counts, err := data.Counts(r.Context())
		if err != nil {
			return nil, 0, err
		}
		return counts, http.StatusOK, nil
	}))

	// ---- resources CRUD ----

	r.Post("/resources", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		var body types.ResourceUpsert
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		v, err := data.CreateResource(r.Context(), body, cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Get("/resources", handleJSON(func(r *http.Request) (any, int, error) {
		limit := queryInt(r, "limit", 50, 1, 200)
		offset := queryInt(r, "offset", 0, 0, 0)
		resp, err := data.ListResources(r.Context(), limit, offset, r.URL.Query().Get("name"))
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	r.Get("/resources/{resource_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		v, err := data.GetResource(r.Context(), chi.URLParam(r, "resource_id"), cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Patch("/resources/{resource_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		var body types.ResourceUpsert
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		v, err := data.UpdateResource(r.Context(), chi.URLParam(r, "resource_id"), body, cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Delete("/resources/{resource_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		if err := data.DeleteResource(r.Context(), chi.URLParam(r, "resource_id"), cid, uid); err != nil {
			return nil, 0, err
		}
		return types.OkResponse{Ok: true}, http.StatusOK, nil
	}))

	// ---- projects CRUD ----

	r.Post("/projects", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		var body types.ProjectUpsert
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		v, err := data.CreateProject(r.Context(), body, cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Get("/projects", handleJSON(func(r *http.Request) (any, int, error) {
		limit := queryInt(r, "limit", 50, 1, 200)
		offset := queryInt(r, "offset", 0, 0, 0)
		resp, err := data.ListProjects(r.Context(), limit, offset,
			r.URL.Query().Get("name"), r.URL.Query().Get("priority"))
		if err != nil {
			return nil, 0, err
		}
		return resp, http.StatusOK, nil
	}))

	r.Get("/projects/{project_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		v, err := data.GetProject(r.Context(), chi.URLParam(r, "project_id"), cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Patch("/projects/{project_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		var body types.ProjectUpsert
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		v, err := data.UpdateProject(r.Context(), chi.URLParam(r, "project_id"), body, cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return v, http.StatusOK, nil
	}))

	r.Delete("/projects/{project_id}", handleJSON(func(r *http.Request) (any, int, error) {
		uid, cid, err := scope(r)
		if err != nil {
			return nil, 0, err
		}
		if err := data.DeleteProject(r.Context(), chi.URLParam(r, "project_id"), cid, uid); err != nil {
			return nil, 0, err
		}
		return types.OkResponse{Ok: true}, http.StatusOK, nil
	}))

	return r
}

// scope pulls the acting user and required conversation_id off the request.
func scope(r *http.Request) (uid, cid string, err error) {
	uid, err = middlewares.ResolveUser(r)
	if err != nil {
		return "", "", err
	}
	cid = r.URL.Query().Get("conversation_id")
	if cid == "" {
		return "", "", fmt.Errorf("%w: conversation_id is required", controllers.ErrValidation)
	}
	return uid, cid, nil
}

type ingestFunc func(ctx context.Context, t *ingest.Table, conversationID, userID string) (*types.IngestResult, error)

func ingestHandler(fn ingestFunc) http.HandlerFunc {
	return handleJSON(func(r *http.Request) (any, int, error) {
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
		table, err := readUpload(header, file)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", controllers.ErrValidation, err)
		}
		result, err := fn(r.Context(), table, cid, uid)
		if err != nil {
			return nil, 0, err
		}
		return result, http.StatusOK, nil
	})
}

func readUpload(header *multipart.FileHeader, file multipart.File) (*ingest.Table, error) {
	return ingest.ReadTable(header.Filename, file)
}
