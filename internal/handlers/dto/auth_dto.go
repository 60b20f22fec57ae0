package dto

// LoginResponse é devolvido no callback quando o login não veio do frontend
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// TokenResponse ecoa o token apresentado
type TokenResponse struct {
	Token string `json:"token"`
}
