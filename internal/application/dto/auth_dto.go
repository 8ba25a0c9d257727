package dto

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token emitido + datos básicos del usuario.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Role      string `json:"rol"`
}
