package repositories

import (
	"context"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de utilizadores.
// Os métodos Find* devolvem (nil, nil) quando o registo não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filters UserFilters) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
}

// UserFilters contém filtros para listagem de utilizadores
type UserFilters struct {
	Role     *entities.Role
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (0 = sem paginação, max: 500)
}
