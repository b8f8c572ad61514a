package admin

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}
