package balance

// BalanceResponse is the remaining-days view per leave category. Counters
// are overwritten through the profile edit, never decremented by approvals.
type BalanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Annual     int    `json:"annual"`
	Sick       int    `json:"sick"`
	Personal   int    `json:"personal"`
}
