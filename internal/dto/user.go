package dto

// RegisterRequest is the JSON body for POST /api/registration/.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	FullName string `json:"fullname" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body for POST /api/login/.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

// EmailCheckResponse is returned by GET /api/email-check/ when the email exists.
type EmailCheckResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}
