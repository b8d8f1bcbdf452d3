package payment

import (
	"time"

	"go-mission/internal/compensation"
	"go-mission/internal/mission"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Sub-amount names in the order every view and export lists them.
const (
	PartTransport     = "transport"
	PartBreakfast     = "breakfast"
	PartLunch         = "lunch"
	PartDinner        = "dinner"
	PartAccommodation = "accommodation"
)

var partOrder = []string{PartTransport, PartBreakfast, PartLunch, PartDinner, PartAccommodation}

// PaymentView is the assignation detail joined with its ledger lines. Total is
// always the sum of the line totals; the service refuses to build a view when
// the ledger disagrees.
type PaymentView struct {
	Detail mission.AssignationDetail
	Lines  []compensation.Compensation
	Total  decimal.Decimal
}

func lineParts(l compensation.Compensation) []decimal.Decimal {
	return []decimal.Decimal{l.Transport, l.Breakfast, l.Lunch, l.Dinner, l.Accommodation}
}

func (v PaymentView) ToResponse() PaymentViewResponse {
	d := v.Detail
	daily := make([]DailyPayment, 0, len(v.Lines))
	for _, l := range v.Lines {
		parts := lineParts(l)
		scales := make([]ScaleAmount, 0, len(parts))
		for i, amount := range parts {
			scales = append(scales, ScaleAmount{Type: partOrder[i], Amount: amount.StringFixed(2)})
		}
		daily = append(daily, DailyPayment{
			Date:               l.Date.Format(dateLayout),
			Status:             l.Status,
			CompensationScales: scales,
			TotalAmount:        l.Total.StringFixed(2),
		})
	}

	return PaymentViewResponse{
		AssignmentDetails: AssignmentDetails{
			AssignationID:    d.AssignationID.String(),
			MissionID:        d.MissionID.String(),
			MissionName:      d.MissionName,
			MissionStatus:    d.MissionStatus,
			MissionStartDate: d.MissionStartDate.Format(dateLayout),
			MissionEndDate:   d.MissionEndDate.Format(dateLayout),
			EmployeeID:       d.EmployeeID.String(),
			EmployeeName:     d.EmployeeName,
			Transport:        d.TransportLabel,
			DepartureAt:      d.DepartureAt.Format(time.RFC3339),
			ReturnAt:         d.ReturnAt.Format(time.RFC3339),
			DurationDays:     d.DurationDays,
		},
		DailyPaiements: daily,
		TotalAmount:    v.Total.StringFixed(2),
	}
}
