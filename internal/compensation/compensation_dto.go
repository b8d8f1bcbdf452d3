package compensation

const dateLayout = "2006-01-02"

type MarkPaidRequest struct {
	AssignationID string  `json:"assignation_id" binding:"required,uuid"`
	From          *string `json:"from" binding:"omitempty,isodate"`
	To            *string `json:"to" binding:"omitempty,isodate"`
}

type MarkPaidResponse struct {
	AssignationID string `json:"assignation_id"`
	Count         int64  `json:"count"`
}

type CompensationResponse struct {
	ID            string  `json:"id"`
	AssignationID string  `json:"assignation_id"`
	EmployeeID    string  `json:"employee_id"`
	MissionID     string  `json:"mission_id"`
	Date          string  `json:"date"`
	Transport     string  `json:"transport"`
	Breakfast     string  `json:"breakfast"`
	Lunch         string  `json:"lunch"`
	Dinner        string  `json:"dinner"`
	Accommodation string  `json:"accommodation"`
	Total         string  `json:"total"`
	Status        string  `json:"status"`
	PaidAt        *string `json:"paid_at,omitempty"`
}

type RecomputeResponse struct {
	AssignationID string                 `json:"assignation_id"`
	Lines         []CompensationResponse `json:"lines"`
	TotalAmount   string                 `json:"total_amount"`
}

type TotalResponse struct {
	Status string `json:"status"`
	Amount string `json:"amount"`
}
