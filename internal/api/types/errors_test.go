package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErr "github.com/vlat-exam/api/pkg/errors"
)

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantDetail string
	}{
		{"conflict", appErr.New(appErr.CodeConflict, "Email already registered"), http.StatusConflict, "Email already registered", ""},
		{"unauthorized", appErr.New(appErr.CodeUnauthorized, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials", ""},
		{"wrapped", fmt.Errorf("ctx: %w", appErr.New(appErr.CodeInvalid, "bad")), http.StatusBadRequest, "bad", ""},
		{"detail", appErr.Wrap(errors.New("dup"), appErr.CodeInternal, "Registration failed").WithMeta(appErr.MetaDetail, "Duplicate entry"), http.StatusInternalServerError, "Registration failed", "Duplicate entry"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, MsgInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := FromAppError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Equal(t, tt.wantDetail, body.Error)
		})
	}
}

func TestInternalHidesDetailUnlessVerbose(t *testing.T) {
	assert.Empty(t, Internal("stack", false).Error)
	assert.Equal(t, "stack", Internal("stack", true).Error)
}

func TestTimestampMatchesISOString(t *testing.T) {
	ts := Timestamp(time.Date(2026, 10, 18, 9, 5, 3, 123456789, time.UTC))
	assert.Equal(t, "2026-10-18T09:05:03.123Z", ts)
}
