package output

import (
	"encoding/json"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
)

// JSONFormatter serializes the fiscal report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
