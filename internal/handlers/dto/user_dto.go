package dto

import (
	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"google_id" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest representa a requisição para atualizar um usuário
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
	Role *string `json:"role" binding:"omitempty,oneof=admin user"`
}

// NamedRef é a forma resumida {id, name} usada em listagens e relações
type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserResponse representa a resposta de um usuário
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email.String(),
		Role:  string(user.Role),
	}
}

// ToUserSummaries converte usuários para a listagem {id, name}
func ToUserSummaries(users []*entities.User) []NamedRef {
	responses := make([]NamedRef, len(users))
	for i, user := range users {
		responses[i] = NamedRef{ID: user.ID, Name: user.Name}
	}
	return responses
}
