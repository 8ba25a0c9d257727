package dto

import "time"

// CreateBranchRequest body para POST /api/branches.
type CreateBranchRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion,omitempty"`
	Phone   string `json:"telefono,omitempty"`
}

// UpdateBranchRequest body para PUT /api/branches/:id (campos opcionales).
type UpdateBranchRequest struct {
	Name    *string `json:"nombre,omitempty"`
	Address *string `json:"direccion,omitempty"`
	Phone   *string `json:"telefono,omitempty"`
	Active  *bool   `json:"activo,omitempty"`
}

// BranchResponse una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Address   string    `json:"direccion,omitempty"`
	Phone     string    `json:"telefono,omitempty"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"nombre"`
}

// CategoryResponse una categoría del catálogo.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"nombre"`
	Document string `json:"documento,omitempty"` // NIT o CI
	Phone    string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name     *string `json:"nombre,omitempty"`
	Document *string `json:"documento,omitempty"`
	Phone    *string `json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"activo,omitempty"`
}

// CustomerResponse un cliente.
type CustomerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Document string `json:"documento,omitempty"`
	Phone    string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
	Active   bool   `json:"activo"`
}

// CreateUserRequest body para POST /api/users (solo ADMINISTRADOR).
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Role      string `json:"rol"` // ADMINISTRADOR o CAJERO
}

// UpdateUserRequest body para PUT /api/users/:id (campos opcionales).
type UpdateUserRequest struct {
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"nombre,omitempty"`
	LastName  *string `json:"apellido,omitempty"`
	Role      *string `json:"rol,omitempty"`
	Active    *bool   `json:"activo,omitempty"`
}

// UserResponse un usuario (nunca incluye el hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Role      string    `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
