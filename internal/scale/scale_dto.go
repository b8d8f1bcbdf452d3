package scale

type CreateScaleRequest struct {
	EmployeeCategoryID string  `json:"employee_category_id" binding:"required,uuid"`
	ExpenseTypeID      *string `json:"expense_type_id" binding:"omitempty,uuid"`
	TransportID        *string `json:"transport_id" binding:"omitempty,uuid"`
	Amount             string  `json:"amount" binding:"required,money"`
	EffectiveFrom      *string `json:"effective_from" binding:"omitempty,isodate"`
	EffectiveTo        *string `json:"effective_to" binding:"omitempty,isodate"`
}

type ScaleResponse struct {
	ID                 string  `json:"id"`
	EmployeeCategoryID string  `json:"employee_category_id"`
	ExpenseTypeID      *string `json:"expense_type_id,omitempty"`
	TransportID        *string `json:"transport_id,omitempty"`
	Target             string  `json:"target"`
	Amount             string  `json:"amount"`
	EffectiveFrom      *string `json:"effective_from,omitempty"`
	EffectiveTo        *string `json:"effective_to,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
