package user

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Department    string `json:"department"`
	LeaveAnnual   int    `json:"leave_annual" binding:"gte=0"`
	LeaveSick     int    `json:"leave_sick" binding:"gte=0"`
	LeavePersonal int    `json:"leave_personal" binding:"gte=0"`
}

// UpdateProfileRequest covers the self-service profile edit. Password is
// optional; when present the stored hash is replaced.
type UpdateProfileRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Department    string  `json:"department"`
	LeaveAnnual   int     `json:"leave_annual" binding:"gte=0"`
	LeaveSick     int     `json:"leave_sick" binding:"gte=0"`
	LeavePersonal int     `json:"leave_personal" binding:"gte=0"`
	Password      *string `json:"password"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	LeaveAnnual   int    `json:"leave_annual"`
	LeaveSick     int    `json:"leave_sick"`
	LeavePersonal int    `json:"leave_personal"`
	CreatedAt     string `json:"created_at"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
