// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's ObjectID, username, and a found flag.
// If no principal is present or the stored ID is malformed, it returns
// NilObjectID and false, so ok=true always means a valid authenticated
// user with a parseable ObjectID. Malformed IDs fail closed.
func UserCtx(r *http.Request) (userID primitive.ObjectID, username string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, "", false
	}
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return primitive.NilObjectID, "", false
	}
	return oid, user.Username, true
}
