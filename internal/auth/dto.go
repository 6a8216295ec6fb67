package auth

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SetPasswordDTO struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	EmployeeID  int64  `json:"employee_id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
