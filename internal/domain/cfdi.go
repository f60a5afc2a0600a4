package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CFDIKind tells whether the taxpayer issued or received an invoice.
type CFDIKind string

const (
	CFDIIssued   CFDIKind = "Emitido"
	CFDIReceived CFDIKind = "Recibido"
)

// XMLSummaryItem is what the importer keeps from one CFDI document.
type XMLSummaryItem struct {
	Kind           CFDIKind        `json:"kind"`
	UUID           string          `json:"uuid"`
	VoucherType    string          `json:"voucher_type"` // TipoDeComprobante: I, E, P, N or T
	FileName       string          `json:"file_name"`
	IssuedAt       time.Time       `json:"issued_at"`
	PaymentForm    string          `json:"payment_form"`
	IssuerRFC      string          `json:"issuer_rfc"`
	ReceiverRFC    string          `json:"receiver_rfc"`
	SubTotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	StandardBase   decimal.Decimal `json:"standard_base"`   // transferred IVA at a positive rate
	ZeroRatedBase  decimal.Decimal `json:"zero_rated_base"` // transferred IVA at 0%
	ExemptBase     decimal.Decimal `json:"exempt_base"`     // TipoFactor Exento
	TransferredVAT decimal.Decimal `json:"transferred_vat"`
}

// Counterparty returns the RFC on the other side of the invoice.
func (x XMLSummaryItem) Counterparty() string {
	if x.Kind == CFDIIssued {
		return x.ReceiverRFC
	}
	return x.IssuerRFC
}

// PaymentFormKPI aggregates invoice totals per SAT FormaPago code.
type PaymentFormKPI struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// CounterpartyTotal is an invoiced amount per client or supplier RFC.
type CounterpartyTotal struct {
	RFC   string          `json:"rfc"`
	Total decimal.Decimal `json:"total"`
}

// CFDIImportResult summarizes a batch of CFDI documents.
type CFDIImportResult struct {
	Items        []XMLSummaryItem          `json:"items"`
	Failed       []string                  `json:"failed,omitempty"` // file names that could not be read
	PaymentForms map[string]PaymentFormKPI `json:"payment_forms"`
	TopClients   []CounterpartyTotal       `json:"top_clients"`
	TopSuppliers []CounterpartyTotal       `json:"top_suppliers"`
	// Applied counts items folded into monthly records; others fell outside the fiscal year.
	Applied int `json:"applied"`
}
