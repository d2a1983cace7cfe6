/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Amounts travel as
  decimal strings so no precision is lost in transit.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - factory/schedule.go: ScheduleJSON (schedule bodies)
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CalculatePaymentRequest asks for one payment calculation.
type CalculatePaymentRequest struct {
	Schedule string `json:"schedule,omitempty"`
	Input    string `json:"input" validate:"required"`
}

// PaymentDTO is a computed payment.
type PaymentDTO struct {
	ID       string           `json:"id"`
	Employee string           `json:"employee"`
	Schedule string           `json:"schedule"`
	Total    decimal.Decimal  `json:"total"`
	Lines    []PaymentLineDTO `json:"lines"`
}

// PaymentLineDTO is the contribution of one (interval, band) slice.
type PaymentLineDTO struct {
	Day          string          `json:"day"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	BandStart    string          `json:"band_start"`
	BandEnd      string          `json:"band_end"`
	Rate         decimal.Decimal `json:"rate"`
	OverlapHours decimal.Decimal `json:"overlap_hours"`
	PaidHours    decimal.Decimal `json:"paid_hours"`
	Amount       decimal.Decimal `json:"amount"`
}

// ScheduleDTO is a schedule in API responses.
type ScheduleDTO struct {
	Name           string               `json:"name"`
	ConfiguredDays []string             `json:"configured_days"`
	Config         factory.ScheduleJSON `json:"config"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toPaymentDTO(id string, p *payroll.Payment) PaymentDTO {
	dto := PaymentDTO{
		ID:       id,
		Employee: p.Employee,
		Schedule: p.Schedule,
		Total:    p.Total,
		Lines:    make([]PaymentLineDTO, 0, len(p.Lines)),
	}
	for _, l := range p.Lines {
		dto.Lines = append(dto.Lines, PaymentLineDTO{
			Day:          l.Interval.Day.String(),
			Start:        l.Interval.Start.String(),
			End:          l.Interval.End.String(),
			BandStart:    l.Band.Start.String(),
			BandEnd:      l.Band.End.String(),
			Rate:         l.Band.Rate,
			OverlapHours: l.OverlapHours.Round(4),
			PaidHours:    l.PaidHours,
			Amount:       l.Amount,
		})
	}
	return dto
}

func toScheduleDTO(f *factory.ScheduleFactory, s *payroll.RateSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		Name:           s.Name(),
		ConfiguredDays: []string{},
		Config:         f.ToJSON(s),
	}
	for _, d := range s.ConfiguredDays() {
		dto.ConfiguredDays = append(dto.ConfiguredDays, d.String())
	}
	return dto
}
