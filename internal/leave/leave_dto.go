package leave

// CreateLeaveRequest mirrors the submission form. Days and Status are
// accepted for wire compatibility but the server recomputes the day count
// and always stores PENDING.
type CreateLeaveRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	EmployeeName  string `json:"employee_name" binding:"required"`
	EmployeeEmail string `json:"employee_mail" binding:"required,email"`
	LeaveType     string `json:"leave_type" binding:"required,oneof=ANNUAL SICK PERSONAL MATERNITY PATERNITY"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
	Days          int    `json:"days"`
	Status        string `json:"status"`
}

type DecideLeaveRequest struct {
	Status         string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	ManagerComment string `json:"manager_comment"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeEmail  string  `json:"employee_mail"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalDays      int     `json:"days"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	AppliedDate    string  `json:"applied_date"`
	ManagerID      *string `json:"manager_id,omitempty"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
}
