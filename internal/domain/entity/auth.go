package entity

// Credentials email y contraseña del formulario de login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult respuesta de /v1/auth/login. Role puede venir vacío.
type LoginResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Registration datos del formulario de registro.
type Registration struct {
	DNI      string `json:"dni,omitempty"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// RegisteredUser respuesta de /v1/auth/register; ID vacío significa fallo.
type RegisteredUser struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
