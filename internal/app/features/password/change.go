// internal/app/features/password/change.go
package password

import (
	"context"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type changeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// HandleChange handles POST /change_password/ for signed-in users.
func (h *Handler) HandleChange(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if req.OldPassword == "" {
		fields["old_password"] = "this field is required"
	}
	if !inputval.IsValidPassword(req.NewPassword) {
		fields["new_password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		httpjson.FieldErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Warn("change password: user load failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	if err := h.Users.CheckPassword(user, req.OldPassword); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Incorrect old password.")
		return
	}

	if err := h.Users.SetPassword(ctx, userID, req.NewPassword); err != nil {
		h.Log.Warn("change password: update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Message(w, http.StatusOK, "Password changed successfully.")
}
