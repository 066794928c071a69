package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/vlat-exam/api/internal/api/types"
)

// MsgInvalidBody is returned when the request body cannot be decoded or
// exceeds MaxBodyBytes.
const MsgInvalidBody = "Invalid request body"

// MaxBodyBytes caps JSON and form request bodies.
const MaxBodyBytes = 100 << 10

type formBinder interface {
	FromForm(url.Values)
}

// bind fills dst from a JSON or form-encoded body. An empty body or any other
// content type leaves dst zero-valued so the required-field check reports it.
func bind(w http.ResponseWriter, r *http.Request, dst formBinder) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
		dst.FromForm(r.PostForm)
		return nil
	case "application/json", "":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	types.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := types.FromAppError(err)
	writeJSON(w, status, body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Message: msg})
}
