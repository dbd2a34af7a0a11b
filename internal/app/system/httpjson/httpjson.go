// internal/app/system/httpjson/httpjson.go
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; none of the API payloads are large.
const maxBodyBytes = 256 << 10

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg} — the body shape every mutating
// endpoint uses on success.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Error writes {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// FieldErrors writes a 400 with a field → problem map, mirroring the
// structured validation errors the API reports for malformed input.
func FieldErrors(w http.ResponseWriter, fields map[string]string) {
	Write(w, http.StatusBadRequest, fields)
}

// Decode reads the request body into v. It rejects oversized bodies and
// unknown fields so typos surface as 400s instead of silent zero values.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
