package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/api/types"
	"github.com/vlat-exam/api/internal/api/validators"
	"github.com/vlat-exam/api/internal/services"
	"github.com/vlat-exam/api/pkg/logger"
)

const (
	MsgAllFieldsRequired  = "All fields are required"
	MsgInvalidEmail       = "Invalid email format"
	MsgLoginFieldsMissing = "Login ID and password are required"
)

type AuthHandler struct {
	auth     services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth services.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

// Register validates the payload before touching the store, then delegates
// to the auth service.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := bind(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	logger.L().Info("register request", zap.String("email", req.Email), zap.String("fullName", req.FullName))

	if err := h.validate.Struct(req); err != nil {
		switch validators.FailedTag(err, "required", "simple_email") {
		case "required":
			writeMessage(w, http.StatusBadRequest, MsgAllFieldsRequired)
		case "simple_email":
			writeMessage(w, http.StatusBadRequest, MsgInvalidEmail)
		default:
			writeMessage(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	u, err := h.auth.Register(r.Context(), services.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.ContactNumber,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.RegisterResponse{
		APIResponse: types.APIResponse{Success: true, Message: "Registration successful"},
		LoginID:     u.LoginID,
		UserID:      u.ID,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := bind(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	logger.L().Info("login attempt", zap.String("loginId", req.LoginID))

	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgLoginFieldsMissing)
		return
	}

	token, u, err := h.auth.Login(r.Context(), req.LoginID, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		APIResponse: types.APIResponse{Success: true, Message: "Login successful"},
		Token:       token,
		User:        types.NewUserView(u),
	})
}
