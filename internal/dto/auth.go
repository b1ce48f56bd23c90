package dto

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,alphanum,max=15"`
	Email     string `json:"email" validate:"required,email,max=40"`
	Password  string `json:"password" validate:"required,min=8,max=32"`
	RoleID    int    `json:"roleId" validate:"required,gt=0"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninResult struct {
	UserID   uint
	Username string
	Email    string
	RoleID   int
	Token    string
}

type SignupResponse struct {
	TraceID string `json:"traceId"`
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

type SigninResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"roles"`
	Token    string `json:"token"`
}

type MessageResponse struct {
	TraceID string `json:"traceId"`
	Message string `json:"message"`
}
