package validation

type SubmitChainRequest struct {
	AssignationID *string  `json:"assignation_id" binding:"omitempty,uuid"`
	Roles         []string `json:"roles" binding:"omitempty,dive,required"`
}

type AdvanceRequest struct {
	Decision  string  `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment   *string `json:"comment"`
	Signature *string `json:"signature"`
}

type ValidationResponse struct {
	ID            string  `json:"id"`
	MissionID     string  `json:"mission_id"`
	AssignationID *string `json:"assignation_id,omitempty"`
	StepIndex     int     `json:"step_index"`
	ToWhom        string  `json:"to_whom"`
	Status        string  `json:"status"`
	ValidatedAt   *string `json:"validated_at,omitempty"`
	ValidatedBy   *string `json:"validated_by,omitempty"`
	Comment       *string `json:"comment,omitempty"`
	SignatureRef  *string `json:"signature_ref,omitempty"`
	Version       int     `json:"version"`
}

type ChainResponse struct {
	MissionID     string               `json:"mission_id"`
	OverallStatus string               `json:"overall_status"`
	Eligibility   string               `json:"eligibility"`
	Steps         []ValidationResponse `json:"steps"`
}

type AdvanceResponse struct {
	Step          ValidationResponse `json:"step"`
	OverallStatus string             `json:"overall_status"`
}
