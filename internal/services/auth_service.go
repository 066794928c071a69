// internal/services/auth_service.go
package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/vlat-exam/api/internal/models"
	"github.com/vlat-exam/api/internal/repository"
	"github.com/vlat-exam/api/pkg/database"
	appErr "github.com/vlat-exam/api/pkg/errors"
	"github.com/vlat-exam/api/pkg/logger"
)

// Messages returned to clients.
const (
	MsgDatabaseError      = "Database error"
	MsgEmailTaken         = "Email already registered"
	MsgRegistrationFailed = "Registration failed"
	MsgInvalidCredentials = "Invalid credentials"
)

// RegisterInput carries an already validated registration.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

type TokenIssuer interface {
	Issue(userID uint, loginID, email string) (string, error)
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, loginID, password string) (string, *models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register checks the email, derives the next login id from the current max
// id and inserts the user. The steps are not isolated from concurrent
// registrations: a racing insert fails on the unique constraints and is
// reported as an internal error.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var existing models.User
	err := s.userRepo.GetByEmail(ctx, in.Email, &existing)
	switch {
	case err == nil:
		return nil, appErr.New(appErr.CodeConflict, MsgEmailTaken)
	case !appErr.IsCode(err, appErr.CodeNotFound):
		logStoreError("email lookup failed", err)
		return nil, appErr.Wrap(err, appErr.CodeInternal, MsgDatabaseError)
	}

	maxID, err := s.userRepo.MaxID(ctx)
	if err != nil {
		logStoreError("last id lookup failed", err)
		return nil, appErr.Wrap(err, appErr.CodeInternal, MsgDatabaseError)
	}

	phone := in.Phone
	user := &models.User{
		LoginID:  models.FormatLoginID(maxID + 1),
		Password: in.Password,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    &phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logStoreError("insert failed", err)
		return nil, appErr.Wrap(err, appErr.CodeInternal, MsgRegistrationFailed).
			WithMeta(appErr.MetaDetail, database.ErrorMessage(cause(err)))
	}

	logger.L().Info("user registered", zap.String("loginId", user.LoginID), zap.String("email", user.Email))
	return user, nil
}

// Login looks the user up by login id and compares the stored password by
// plain equality. Unknown ids and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, loginID, password string) (string, *models.User, error) {
	var user models.User
	if err := s.userRepo.GetByLoginID(ctx, loginID, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, appErr.New(appErr.CodeUnauthorized, MsgInvalidCredentials)
		}
		logStoreError("login query failed", err)
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, MsgDatabaseError)
	}

	// stored passwords are plain text
	if user.Password != password {
		return "", nil, appErr.New(appErr.CodeUnauthorized, MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.LoginID, user.Email)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}

	return token, &user, nil
}

// cause strips the repository's AppError wrapper to reach the driver error.
func cause(err error) error {
	for {
		ae, ok := err.(*appErr.AppError)
		if !ok || ae.Err == nil {
			return err
		}
		err = ae.Err
	}
}

func logStoreError(msg string, err error) {
	root := cause(err)
	logger.L().Error(msg,
		zap.String("message", database.ErrorMessage(root)),
		zap.String("code", database.ErrorCode(root)),
		zap.Error(err),
	)
}
