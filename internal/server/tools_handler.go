package server

import (
	"errors"
	"net/http"

	"github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/pkg/dateutil"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/labstack/echo/v4"
)

// SurchargeRequest is the body of POST /api/v1/tools/surcharge.
type SurchargeRequest struct {
	Amount      any    `json:"amount"`
	DueDate     string `json:"due_date"`
	PaymentDate string `json:"payment_date"`
}

// LossUpdateRequest is the body of POST /api/v1/tools/losses.
type LossUpdateRequest struct {
	ApplicationYear int                     `json:"application_year"`
	Losses          []domain.HistoricalLoss `json:"losses"`
}

// RFCCheck reports whether an RFC is well formed.
type RFCCheck struct {
	RFC        string            `json:"rfc"`
	Valid      bool              `json:"valid"`
	PersonType domain.PersonType `json:"person_type,omitempty"`
	Generic    bool              `json:"generic"`
	Temporary  bool              `json:"temporary"`
	Error      string            `json:"error,omitempty"`
}

// Surcharge handles POST /api/v1/tools/surcharge
func (s *Server) Surcharge(c echo.Context) error {
	var req SurchargeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var problems []ValidationError
	due, err := dateutil.ParseDate(req.DueDate)
	if err != nil {
		problems = append(problems, ValidationError{Field: "due_date", Message: err.Error()})
	}
	paid, err := dateutil.ParseDate(req.PaymentDate)
	if err != nil {
		problems = append(problems, ValidationError{Field: "payment_date", Message: err.Error()})
	}
	if len(problems) > 0 {
		return NewValidationError(c, "Invalid dates", problems)
	}

	result, err := s.engine.Surcharge(fiscaldec.Coerce(req.Amount), due, paid)
	if err != nil {
		if errors.Is(err, calculation.ErrINPCNotFound) {
			return NewNotFoundError(c, err.Error())
		}
		return NewValidationError(c, err.Error(), nil)
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateLosses handles POST /api/v1/tools/losses. Per-loss problems are
// reported inside the result rather than failing the request.
func (s *Server) UpdateLosses(c echo.Context) error {
	var req LossUpdateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.ApplicationYear == 0 {
		return NewValidationError(c, "Application year is required", []ValidationError{
			{Field: "application_year", Message: "required"},
		})
	}
	return c.JSON(http.StatusOK, s.engine.UpdateLosses(req.Losses, req.ApplicationYear))
}

// ValidateRFC handles GET /api/v1/tools/rfc/:rfc
func (s *Server) ValidateRFC(c echo.Context) error {
	rfc := domain.NormalizeRFC(c.Param("rfc"))
	check := RFCCheck{
		RFC:       rfc,
		Generic:   domain.IsGenericRFC(rfc),
		Temporary: domain.IsTemporaryRFC(rfc),
	}
	if err := domain.ValidateRFC(rfc); err != nil {
		check.Error = err.Error()
	} else {
		check.Valid = true
	}
	if pt, err := domain.ClassifyRFC(rfc); err == nil {
		check.PersonType = pt
	}
	return c.JSON(http.StatusOK, check)
}
