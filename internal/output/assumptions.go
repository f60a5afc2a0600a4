package output

import (
	"fmt"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the basis of every report regardless of the taxpayer.
var DefaultAssumptions = []string{
	"Cifras estimadas; no sustituyen la declaración presentada ante el SAT",
	"Tarifas ISR del artículo 96 LISR acumuladas por mes; diciembre usa la tarifa anual",
	"RESICO PF: tasa mensual según el ingreso del mes, sin deducciones",
	"IVA: saldo a favor acreditado contra el mes siguiente",
}

// GenerateAssumptions creates the assumptions list from the report's configuration.
func GenerateAssumptions(report *domain.FiscalReport) []string {
	cfg := report.Config
	out := []string{
		fmt.Sprintf("Ejercicio fiscal %d, %s", cfg.FiscalYear, cfg.Regime.Label()),
		fmt.Sprintf("Tasa de IVA: %s", FormatPercentage(cfg.VATRatePercent)),
	}
	if !cfg.Regime.IsResico() && cfg.PriorLosses.IsPositive() {
		out = append(out, fmt.Sprintf("Pérdidas fiscales de ejercicios anteriores: %s", FormatCurrency(cfg.PriorLosses)))
	}
	return append(out, DefaultAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
