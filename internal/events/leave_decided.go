package events

import "time"

const LeaveDecidedTopic = "leave.request.decided.v1"

// LeaveDecidedEvent is published on every terminal transition. Consumers
// (dashboards, calendars) use it instead of polling the list endpoints.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	Status     string    `json:"status"`
	ManagerID  string    `json:"manager_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
