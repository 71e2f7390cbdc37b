package dto

type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type SigninResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type ProfileResponse = UserDTO

type MessageResponse struct {
	Message string `json:"message"`
}
