package server

import (
	"errors"
	"net/http"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/internal/store"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/labstack/echo/v4"
)

// RecordUpdate sets one amount of one monthly record.
type RecordUpdate struct {
	Field string `json:"field"`
	Value any    `json:"value"` // numbers or numeric strings; anything else is zero
}

// loadTaxpayer fetches the bundle named by the :rfc path parameter. When it
// returns a nil bundle the error response has already been written.
func (s *Server) loadTaxpayer(c echo.Context) (*domain.TaxpayerData, error) {
	rfc := c.Param("rfc")
	data, err := s.store.Get(c.Request().Context(), rfc)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewNotFoundError(c, "Taxpayer "+rfc+" not found")
		}
		s.log.Error().Err(err).Str("rfc", rfc).Msg("Failed to load taxpayer")
		return nil, NewInternalError(c, "Failed to load taxpayer")
	}
	return data, nil
}

func (s *Server) saveTaxpayer(c echo.Context, data *domain.TaxpayerData, status int) error {
	if err := s.store.Save(c.Request().Context(), data); err != nil {
		s.log.Error().Err(err).Str("rfc", data.Config.RFC).Msg("Failed to save taxpayer")
		return NewInternalError(c, "Failed to save taxpayer")
	}
	return c.JSON(status, data)
}

// ListTaxpayers handles GET /api/v1/taxpayers
func (s *Server) ListTaxpayers(c echo.Context) error {
	entries, err := s.store.List(c.Request().Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list taxpayers")
		return NewInternalError(c, "Failed to list taxpayers")
	}
	return c.JSON(http.StatusOK, entries)
}

// CreateTaxpayer handles POST /api/v1/taxpayers. A bundle without RFC gets a
// temporary identifier until the real one is captured.
func (s *Server) CreateTaxpayer(c echo.Context) error {
	var data domain.TaxpayerData
	if err := c.Bind(&data); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if data.Config.RFC == "" {
		data.Config.RFC = domain.NewTemporaryRFC()
	}
	if err := s.parser.ValidateTaxpayerData(&data); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	return s.saveTaxpayer(c, &data, http.StatusCreated)
}

// GetTaxpayer handles GET /api/v1/taxpayers/:rfc
func (s *Server) GetTaxpayer(c echo.Context) error {
	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

// ReplaceTaxpayer handles PUT /api/v1/taxpayers/:rfc
func (s *Server) ReplaceTaxpayer(c echo.Context) error {
	var data domain.TaxpayerData
	if err := c.Bind(&data); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	path := domain.NormalizeRFC(c.Param("rfc"))
	data.Config.RFC = domain.NormalizeRFC(data.Config.RFC)
	if data.Config.RFC == "" {
		data.Config.RFC = path
	}
	if data.Config.RFC != path {
		return NewValidationError(c, "RFC in body does not match the path", []ValidationError{
			{Field: "config.rfc", Message: "must equal " + path},
		})
	}
	if err := s.parser.ValidateTaxpayerData(&data); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}
	return s.saveTaxpayer(c, &data, http.StatusOK)
}

// DeleteTaxpayer handles DELETE /api/v1/taxpayers/:rfc
func (s *Server) DeleteTaxpayer(c echo.Context) error {
	rfc := c.Param("rfc")
	if err := s.store.Delete(c.Request().Context(), rfc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError(c, "Taxpayer "+rfc+" not found")
		}
		s.log.Error().Err(err).Str("rfc", rfc).Msg("Failed to delete taxpayer")
		return NewInternalError(c, "Failed to delete taxpayer")
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRecord handles PATCH /api/v1/taxpayers/:rfc/records/:ledger/:month.
// The ledger is income, expenses or resico; the month is 1-12 or its Spanish name.
func (s *Server) UpdateRecord(c echo.Context) error {
	month, err := domain.ParseMonth(c.Param("month"))
	if err != nil {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Month must be between 1 and 12"},
		})
	}
	var req RecordUpdate
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}

	value := fiscaldec.Coerce(req.Value)
	switch c.Param("ledger") {
	case "income":
		f, err := domain.ParseIncomeField(req.Field)
		if err != nil {
			return NewValidationError(c, err.Error(), []ValidationError{{Field: "field", Message: err.Error()}})
		}
		data.Income[month].Set(f, value)
	case "expenses":
		f, err := domain.ParseExpenseField(req.Field)
		if err != nil {
			return NewValidationError(c, err.Error(), []ValidationError{{Field: "field", Message: err.Error()}})
		}
		data.Expenses[month].Set(f, value)
	case "resico":
		f, err := domain.ParseResicoField(req.Field)
		if err != nil {
			return NewValidationError(c, err.Error(), []ValidationError{{Field: "field", Message: err.Error()}})
		}
		data.Resico[month].Set(f, value)
	default:
		return NewValidationError(c, "Invalid ledger", []ValidationError{
			{Field: "ledger", Message: "Ledger must be income, expenses or resico"},
		})
	}
	return s.saveTaxpayer(c, data, http.StatusOK)
}
