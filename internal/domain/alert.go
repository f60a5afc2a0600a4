package domain

// AlertSeverity ranks a FiscalAlert for display.
type AlertSeverity string

const (
	SeveritySuccess AlertSeverity = "success"
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
	SeverityError   AlertSeverity = "error"
)

// Alert codes raised by the compliance checks.
const (
	AlertFiscalLoss    = "PERDIDA_FISCAL"
	AlertNoData        = "SIN_DATOS"
	AlertResicoCeiling = "RESICO_LIMITE_EXCEDIDO"
	AlertBenfordIncome = "BENFORD_INGRESOS"
	AlertHighVATDue    = "IVA_CARGO_ALTO"
	AlertAllClear      = "TODO_OK"
)

// FiscalAlert is a user-facing compliance or anomaly notice.
type FiscalAlert struct {
	ID       string        `json:"id"`
	Code     string        `json:"code"`
	Severity AlertSeverity `json:"severity"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
}
