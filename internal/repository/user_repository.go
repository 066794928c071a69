package repository

import (
	"context"
	"errors"

	"github.com/vlat-exam/api/internal/models"
	appErr "github.com/vlat-exam/api/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	GetByLoginID(ctx context.Context, loginID string, dest *models.User) error
	// MaxID returns the highest assigned id, or 0 for an empty table.
	MaxID(ctx context.Context) (uint, error)
	// ListNewestFirst returns every user ordered by id descending, without
	// loading passwords.
	ListNewestFirst(ctx context.Context) ([]models.User, error)
}

// publicColumns are the user columns that may leave the service.
var publicColumns = []string{"id", "login_id", "email", "full_name", "phone", "created_at"}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

func (r *userRepository) GetByLoginID(ctx context.Context, loginID string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("login_id = ?", loginID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by login id failed")
	}
	return nil
}

func (r *userRepository) MaxID(ctx context.Context) (uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.User{}).Order("id DESC").Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "get last user id failed")
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

func (r *userRepository) ListNewestFirst(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.db.WithContext(ctx).Select(publicColumns).Order("id DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}
