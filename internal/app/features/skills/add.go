// internal/app/features/skills/add.go
package skills

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type addRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// HandleAdd handles POST /add_skill/. Skills belong to the caller;
// duplicates by name are allowed.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req addRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "this field is required"
	}
	if strings.TrimSpace(req.Level) == "" {
		fields["level"] = "this field is required"
	}
	if len(fields) > 0 {
		httpjson.FieldErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	skill, err := h.Skills.Add(ctx, callerID, req.Name, req.Level)
	if err != nil {
		h.Log.Warn("skill add failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusCreated, skill)
}
