// internal/app/features/register/handler.go
package register

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/inputval"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler creates new user accounts.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       *int   `json:"age"`
	Country   string `json:"country"`
	Residence string `json:"residence"`
}

// HandleRegister handles POST /register/. Open to unauthenticated
// callers; returns 201 with the created user or 400 with field errors.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{}
	if !inputval.IsValidUsername(req.Username) {
		fields["username"] = "username is required and may only contain letters, digits, and @.+-_"
	}
	if !inputval.IsValidEmail(req.Email) {
		fields["email"] = "a valid email is required"
	}
	if !inputval.IsValidPassword(req.Password) {
		fields["password"] = "password must be at least 8 characters"
	}
	if req.Age != nil && *req.Age < 0 {
		fields["age"] = "age must not be negative"
	}
	if len(fields) > 0 {
		httpjson.FieldErrors(w, fields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Country:   req.Country,
		Residence: req.Residence,
	}, req.Password)
	if err != nil {
		switch err {
		case userstore.ErrDuplicateUsername:
			httpjson.FieldErrors(w, map[string]string{"username": err.Error()})
		case userstore.ErrDuplicateEmail:
			httpjson.FieldErrors(w, map[string]string{"email": err.Error()})
		default:
			h.Log.Warn("user create failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		}
		return
	}

	httpjson.Write(w, http.StatusCreated, user)
}
