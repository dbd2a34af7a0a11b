// internal/app/features/password/reset.go
package password

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/store/passwordreset"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/mailer"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type resetRequest struct {
	Email string `json:"email"`
}

// HandleResetRequest handles POST /password_reset/. The response is the
// same whether or not the email belongs to an account, so it cannot be
// used to enumerate users; the send happens only when the account exists.
func (h *Handler) HandleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := httpjson.Decode(r, &req); err != nil || !inputval.IsValidEmail(req.Email) {
		httpjson.FieldErrors(w, map[string]string{"email": "a valid email is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Warn("reset request: lookup failed", zap.Error(err))
		}
		httpjson.Message(w, http.StatusOK, "If that email belongs to an account, a reset link has been sent.")
		return
	}

	token, err := h.Resets.Create(ctx, user.ID)
	if err != nil {
		h.Log.Warn("reset request: token create failed", zap.Error(err))
		httpjson.Message(w, http.StatusOK, "If that email belongs to an account, a reset link has been sent.")
		return
	}

	email := mailer.BuildResetEmail(mailer.ResetEmailData{
		SiteName:  SiteName,
		ResetLink: fmt.Sprintf("%s/password_reset/confirm/?token=%s", h.BaseURL, token),
		ExpiresIn: h.Resets.Expiry().String(),
	})
	email.To = user.Email
	if err := h.Mailer.Send(email); err != nil {
		h.Log.Warn("reset request: email send failed", zap.Error(err))
	}

	httpjson.Message(w, http.StatusOK, "If that email belongs to an account, a reset link has been sent.")
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// HandleResetConfirm handles POST /password_reset/confirm/. A token
// works exactly once; unknown and expired tokens get the same answer.
func (h *Handler) HandleResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if req.Token == "" {
		fields["token"] = "this field is required"
	}
	if !inputval.IsValidPassword(req.Password) {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		httpjson.FieldErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	userID, err := h.Resets.Consume(ctx, req.Token)
	if err != nil {
		if err == passwordreset.ErrNotFound {
			httpjson.Error(w, http.StatusBadRequest, "Invalid or expired reset token.")
			return
		}
		h.Log.Warn("reset confirm: consume failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	if err := h.Users.SetPassword(ctx, userID, req.Password); err != nil {
		h.Log.Warn("reset confirm: password update failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Message(w, http.StatusOK, "Password has been reset.")
}
