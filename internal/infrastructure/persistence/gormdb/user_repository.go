package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	user.ID = model.ID
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error) {
	return r.findOne(ctx, "google_id = ?", googleID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*entities.User, error) {
	var model UserModel

	if err := dbFrom(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	err := dbFrom(ctx, r.db).Save(model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrEmailAlreadyExists
	}
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := dbFrom(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, error) {
	var models []*UserModel

	query := dbFrom(ctx, r.db).Model(&UserModel{})

	// Aplicar filtros
	if filters.Role != nil {
		query = query.Where("role = ?", string(*filters.Role))
	}

	// Paginação (opcional)
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		pageSize := filters.PageSize
		if pageSize > 500 {
			pageSize = 500
		}
		query = query.Limit(pageSize).Offset((page - 1) * pageSize)
	}

	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(models))
	for _, model := range models {
		user, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&UserModel{}).Count(&count).Error
	return count, err
}

// Conversores
func toUserModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email.String(),
		GoogleID: user.GoogleID,
		Role:     string(user.Role),
	}
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:       model.ID,
		Email:    email,
		Name:     model.Name,
		GoogleID: model.GoogleID,
		Role:     entities.Role(model.Role),
	}, nil
}
