package user

// RegisterRequest for creating a new account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required,len=11"`
	Role     Role   `json:"role" binding:"omitempty,oneof=admin customer"`
}

// LoginRequest for authenticating an account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest for partial updates of account details
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,len=11"`
	Role  *Role   `json:"role" binding:"omitempty,oneof=admin customer"`
}

// LoginResponse bundles the issued token with the safe user view.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
