// Package cfdi reads SAT CFDI 4.0 invoices and folds their VAT bases into a
// taxpayer's monthly records. Signatures and the SAT seal are not verified.
package cfdi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
)

var (
	// ErrNoComprobante is returned for XML that is not a CFDI.
	ErrNoComprobante = errors.New("cfdi: Comprobante element not found")
	// ErrNotParty is returned when the taxpayer is neither issuer nor receiver.
	ErrNotParty = errors.New("cfdi: taxpayer is neither issuer nor receiver")
)

const (
	// DefaultPaymentForm is SAT FormaPago "Por definir", used when the attribute is absent.
	DefaultPaymentForm = "99"
	// MissingUUID marks invoices without a TimbreFiscalDigital.
	MissingUUID = "SIN UUID"

	vatTaxCode = "002"
	dateLayout = "2006-01-02T15:04:05"
)

// Reader extracts invoice summaries on behalf of one taxpayer.
type Reader struct {
	TaxpayerRFC string
}

// NewReader creates a reader for the taxpayer identified by rfc.
func NewReader(rfc string) *Reader {
	return &Reader{TaxpayerRFC: domain.NormalizeRFC(rfc)}
}

// Parse reads one CFDI document. The invoice is Emitido when the taxpayer is
// the issuer and Recibido when it is the receiver.
func (r *Reader) Parse(name string, data []byte) (domain.XMLSummaryItem, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return domain.XMLSummaryItem{}, fmt.Errorf("failed to parse XML %s: %w", name, err)
	}
	root := doc.FindElement("//Comprobante")
	if root == nil {
		return domain.XMLSummaryItem{}, fmt.Errorf("%s: %w", name, ErrNoComprobante)
	}

	item := domain.XMLSummaryItem{
		FileName:    name,
		UUID:        MissingUUID,
		VoucherType: strings.ToUpper(root.SelectAttrValue("TipoDeComprobante", "I")),
		PaymentForm: root.SelectAttrValue("FormaPago", DefaultPaymentForm),
		IssuerRFC:   partyRFC(root, "Emisor"),
		ReceiverRFC: partyRFC(root, "Receptor"),
		SubTotal:    fiscaldec.CoerceString(root.SelectAttrValue("SubTotal", "0")),
		Total:       fiscaldec.CoerceString(root.SelectAttrValue("Total", "0")),
	}
	if item.PaymentForm == "" {
		item.PaymentForm = DefaultPaymentForm
	}

	switch r.TaxpayerRFC {
	case item.IssuerRFC:
		item.Kind = domain.CFDIIssued
	case item.ReceiverRFC:
		item.Kind = domain.CFDIReceived
	default:
		return domain.XMLSummaryItem{}, fmt.Errorf("%s: %w (%s)", name, ErrNotParty, r.TaxpayerRFC)
	}

	issued, err := time.Parse(dateLayout, root.SelectAttrValue("Fecha", ""))
	if err != nil {
		return domain.XMLSummaryItem{}, fmt.Errorf("%s: invalid Fecha: %w", name, err)
	}
	item.IssuedAt = issued

	if timbre := root.FindElement(".//TimbreFiscalDigital"); timbre != nil {
		if uuid := strings.TrimSpace(timbre.SelectAttrValue("UUID", "")); uuid != "" {
			item.UUID = strings.ToUpper(uuid)
		}
	}

	bucketTransfers(root, &item)
	return item, nil
}

func partyRFC(root *etree.Element, tag string) string {
	if e := root.FindElement(tag); e != nil {
		if rfc := domain.NormalizeRFC(e.SelectAttrValue("Rfc", "")); rfc != "" {
			return rfc
		}
	}
	return domain.GenericRFCPublic
}

// bucketTransfers splits the invoice's IVA transfers into standard, zero-rated
// and exempt bases. Concept-level transfers are preferred over the summary at
// Comprobante level; an invoice with no IVA transfer at all is exempt.
func bucketTransfers(root *etree.Element, item *domain.XMLSummaryItem) {
	transfers := root.FindElements("./Conceptos/Concepto/Impuestos/Traslados/Traslado")
	if len(transfers) == 0 {
		transfers = root.FindElements("./Impuestos/Traslados/Traslado")
	}

	found := false
	for _, t := range transfers {
		if t.SelectAttrValue("Impuesto", "") != vatTaxCode {
			continue
		}
		found = true
		base := fiscaldec.CoerceString(t.SelectAttrValue("Base", "0"))
		if strings.EqualFold(t.SelectAttrValue("TipoFactor", ""), "Exento") {
			item.ExemptBase = item.ExemptBase.Add(base)
			continue
		}
		rate := fiscaldec.CoerceString(t.SelectAttrValue("TasaOCuota", "0"))
		if rate.IsZero() {
			item.ZeroRatedBase = item.ZeroRatedBase.Add(base)
			continue
		}
		item.StandardBase = item.StandardBase.Add(base)
		vat := fiscaldec.CoerceString(t.SelectAttrValue("Importe", ""))
		if vat.IsZero() {
			vat = base.Mul(rate).Round(2)
		}
		item.TransferredVAT = item.TransferredVAT.Add(vat)
	}
	if !found {
		item.ExemptBase = item.SubTotal
	}
}
