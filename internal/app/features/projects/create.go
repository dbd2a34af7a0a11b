// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.uber.org/zap"
)

type createRequest struct {
	Name             string `json:"project_name"`
	Description      string `json:"description"`
	MaxCollaborators int    `json:"maximum_collaborators"`
}

// HandleCreate handles POST /create_project/. The caller becomes the
// creator; the collaborator set starts empty. No uniqueness constraint
// on name.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["project_name"] = "this field is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "this field is required"
	}
	if req.MaxCollaborators < 1 {
		fields["maximum_collaborators"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		httpjson.FieldErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.Create(ctx, models.Project{
		CreatorID:        callerID,
		Name:             req.Name,
		Description:      htmlsanitize.Sanitize(req.Description),
		MaxCollaborators: req.MaxCollaborators,
	})
	if err != nil {
		h.Log.Warn("project create failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusCreated, project)
}
