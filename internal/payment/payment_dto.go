package payment

type AssignmentDetails struct {
	AssignationID    string  `json:"assignation_id"`
	MissionID        string  `json:"mission_id"`
	MissionName      string  `json:"mission_name"`
	MissionStatus    string  `json:"mission_status"`
	MissionStartDate string  `json:"mission_start_date"`
	MissionEndDate   string  `json:"mission_end_date"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	Transport        *string `json:"transport,omitempty"`
	DepartureAt      string  `json:"departure_at"`
	ReturnAt         string  `json:"return_at"`
	DurationDays     int     `json:"duration_days"`
}

type ScaleAmount struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type DailyPayment struct {
	Date               string        `json:"date"`
	Status             string        `json:"status"`
	CompensationScales []ScaleAmount `json:"compensationScales"`
	TotalAmount        string        `json:"totalAmount"`
}

type PaymentViewResponse struct {
	AssignmentDetails AssignmentDetails `json:"assignmentDetails"`
	DailyPaiements    []DailyPayment    `json:"dailyPaiements"`
	TotalAmount       string            `json:"totalAmount"`
}

type PaymentPairsFilterRequest struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type PaymentPairResponse struct {
	AssignationID string  `json:"assignation_id"`
	MissionID     string  `json:"mission_id"`
	MissionName   string  `json:"mission_name"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Transport     *string `json:"transport,omitempty"`
	DepartureAt   string  `json:"departure_at"`
	ReturnAt      string  `json:"return_at"`
	DurationDays  int     `json:"duration_days"`
}

type ArchiveExportRequest struct {
	MissionID  string `json:"mission_id" binding:"required,uuid"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Format     string `json:"format" binding:"omitempty,oneof=pdf csv"`
}

type ArchiveExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}
