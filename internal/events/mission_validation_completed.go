package events

import "time"

const MissionValidationCompletedTopic = "hr.mission.validation.completed.v1"

const MissionValidationCompleted = "mission_validation_completed"

type MissionValidationCompletedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	MissionID   string    `json:"mission_id"`
	CompanyID   string    `json:"company_id"`
	Outcome     string    `json:"outcome"`
	DecidedBy   string    `json:"decided_by"`
	DecidedStep int       `json:"decided_step"`
	OccurredAt  time.Time `json:"occurred_at"`
}
