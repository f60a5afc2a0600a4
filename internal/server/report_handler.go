package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/defycont/SIFIDE2025-v1.0/internal/cfdi"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/internal/output"
	"github.com/labstack/echo/v4"
)

// maxCFDIUpload bounds the size of one uploaded XML file.
const maxCFDIUpload = 2 << 20

// contentTypes maps formatter names to the response media type.
var contentTypes = map[string]string{
	"json":         echo.MIMEApplicationJSONCharsetUTF8,
	"html":         echo.MIMETextHTMLCharsetUTF8,
	"csv":          "text/csv; charset=UTF-8",
	"detailed-csv": "text/csv; charset=UTF-8",
	"console":      echo.MIMETextPlainCharsetUTF8,
	"console-lite": echo.MIMETextPlainCharsetUTF8,
}

// GetReport handles GET /api/v1/taxpayers/:rfc/report?format=json
func (s *Server) GetReport(c echo.Context) error {
	format := output.NormalizeFormatName(c.QueryParam("format"))
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return NewValidationError(c, "Unsupported format "+format, []ValidationError{
			{Field: "format", Message: "Format must be one of the available formatters"},
		})
	}

	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}
	report := s.engine.Calculate(*data)
	if format == "json" {
		return c.JSON(http.StatusOK, report)
	}

	body, err := formatter.Format(report)
	if err != nil {
		s.log.Error().Err(err).Str("format", format).Msg("Failed to format report")
		return NewInternalError(c, "Failed to format report")
	}
	return c.Blob(http.StatusOK, contentTypes[formatter.Name()], body)
}

// GetAlerts handles GET /api/v1/taxpayers/:rfc/alerts
func (s *Server) GetAlerts(c echo.Context) error {
	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.engine.Calculate(*data).Alerts)
}

// Project handles POST /api/v1/taxpayers/:rfc/projection. An empty body
// projects with no adjustments.
func (s *Server) Project(c echo.Context) error {
	var settings domain.ProjectionSettings
	if err := c.Bind(&settings); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}
	report := s.engine.Calculate(*data)
	return c.JSON(http.StatusOK, s.engine.Project(report, settings))
}

// GetLossUpdate handles GET /api/v1/taxpayers/:rfc/losses?year=2025. The
// application year defaults to the taxpayer's fiscal year.
func (s *Server) GetLossUpdate(c echo.Context) error {
	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}
	year := data.Config.FiscalYear
	if raw := c.QueryParam("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid year", []ValidationError{
				{Field: "year", Message: "Year must be an integer"},
			})
		}
	}
	return c.JSON(http.StatusOK, s.engine.UpdateLosses(data.HistoricalLosses, year))
}

// ImportCFDI handles POST /api/v1/taxpayers/:rfc/cfdi with the XML invoices
// in the multipart field "files". The updated bundle is saved.
func (s *Server) ImportCFDI(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewValidationError(c, "Expected a multipart form", nil)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return NewValidationError(c, "No files uploaded", []ValidationError{
			{Field: "files", Message: "At least one XML file is required"},
		})
	}

	data, err := s.loadTaxpayer(c)
	if data == nil {
		return err
	}

	docs := make([]cfdi.Document, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxCFDIUpload {
			return NewValidationError(c, "File too large", []ValidationError{
				{Field: "files", Message: fh.Filename + " exceeds the upload limit"},
			})
		}
		f, err := fh.Open()
		if err != nil {
			return NewInternalError(c, "Failed to read upload")
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return NewInternalError(c, "Failed to read upload")
		}
		docs = append(docs, cfdi.Document{Name: fh.Filename, Data: content})
	}

	result := cfdi.Import(data, docs)
	if result.Applied > 0 {
		if err := s.store.Save(c.Request().Context(), data); err != nil {
			s.log.Error().Err(err).Str("rfc", data.Config.RFC).Msg("Failed to save imported invoices")
			return NewInternalError(c, "Failed to save taxpayer")
		}
	}
	s.log.Info().Str("rfc", data.Config.RFC).Int("files", len(docs)).
		Int("applied", result.Applied).Int("failed", len(result.Failed)).Msg("Imported CFDI")
	return c.JSON(http.StatusOK, result)
}

// Calculate handles POST /api/v1/calculate: a report for an unsaved bundle.
func (s *Server) Calculate(c echo.Context) error {
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
	return c.JSON(http.StatusOK, s.engine.Calculate(data))
}
