package events

import "time"

const CompensationRecomputedTopic = "hr.compensation.recomputed.v1"

const CompensationRecomputed = "compensation_recomputed"

type CompensationRecomputedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AssignationID string    `json:"assignation_id"`
	MissionID     string    `json:"mission_id"`
	EmployeeID    string    `json:"employee_id"`
	CompanyID     string    `json:"company_id"`
	Lines         int       `json:"lines"`
	TotalAmount   string    `json:"total_amount"`
	RecomputedBy  string    `json:"recomputed_by,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
