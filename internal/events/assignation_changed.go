package events

import "time"

// AssignationChangedTopic is produced by the mission planning side whenever
// an assignation's dates, transport or employee change.
const AssignationChangedTopic = "hr.mission.assignation.v1"

const (
	AssignationUpserted = "assignation_upserted"
	AssignationDeleted  = "assignation_deleted"
)

type AssignationChangedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AssignationID string    `json:"assignation_id"`
	MissionID     string    `json:"mission_id"`
	CompanyID     string    `json:"company_id"`
	ActorID       string    `json:"actor_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
