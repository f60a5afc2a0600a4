package cfdi

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// TopCounterparties is how many clients and suppliers an import ranks.
const TopCounterparties = 10

// Document is one XML file to import.
type Document struct {
	Name string
	Data []byte
}

// LoadDocuments reads every .xml file named by paths; directories are walked recursively.
func LoadDocuments(paths ...string) ([]Document, error) {
	var docs []Document
	read := func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
		docs = append(docs, Document{Name: filepath.Base(path), Data: data})
		return nil
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", p, err)
		}
		if !info.IsDir() {
			if err := read(p); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
				return nil
			}
			return read(path)
		})
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Import parses docs for the bundle's taxpayer and adds the VAT bases of
// every ingreso invoice dated in the bundle's fiscal year to its monthly
// records: issued invoices to income, received ones to expenses. Documents
// that cannot be read are listed in Failed and otherwise skipped.
func Import(data *domain.TaxpayerData, docs []Document) domain.CFDIImportResult {
	reader := NewReader(data.Config.RFC)
	result := domain.CFDIImportResult{PaymentForms: map[string]domain.PaymentFormKPI{}}
	clients := map[string]decimal.Decimal{}
	suppliers := map[string]decimal.Decimal{}

	for _, doc := range docs {
		item, err := reader.Parse(doc.Name, doc.Data)
		if err != nil {
			result.Failed = append(result.Failed, doc.Name)
			continue
		}
		result.Items = append(result.Items, item)

		kpi := result.PaymentForms[item.PaymentForm]
		kpi.Total = kpi.Total.Add(item.Total)
		kpi.Count++
		result.PaymentForms[item.PaymentForm] = kpi

		if item.Kind == domain.CFDIIssued {
			clients[item.Counterparty()] = clients[item.Counterparty()].Add(item.Total)
		} else {
			suppliers[item.Counterparty()] = suppliers[item.Counterparty()].Add(item.Total)
		}

		if fold(data, item) {
			result.Applied++
		}
	}

	result.TopClients = rank(clients)
	result.TopSuppliers = rank(suppliers)
	return result
}

func fold(data *domain.TaxpayerData, item domain.XMLSummaryItem) bool {
	if item.VoucherType != "I" || item.IssuedAt.Year() != data.Config.FiscalYear {
		return false
	}
	m := int(item.IssuedAt.Month()) - 1
	if item.Kind == domain.CFDIIssued {
		r := &data.Income[m]
		r.Standard = r.Standard.Add(item.StandardBase)
		r.ZeroRated = r.ZeroRated.Add(item.ZeroRatedBase)
		r.Exempt = r.Exempt.Add(item.ExemptBase)
		return true
	}
	r := &data.Expenses[m]
	r.Standard = r.Standard.Add(item.StandardBase)
	r.ZeroRated = r.ZeroRated.Add(item.ZeroRatedBase)
	r.Exempt = r.Exempt.Add(item.ExemptBase)
	return true
}

// rank orders totals descending, ties by RFC, and keeps the first TopCounterparties.
func rank(totals map[string]decimal.Decimal) []domain.CounterpartyTotal {
	out := make([]domain.CounterpartyTotal, 0, len(totals))
	for rfc, total := range totals {
		out = append(out, domain.CounterpartyTotal{RFC: rfc, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].RFC < out[j].RFC
	})
	if len(out) > TopCounterparties {
		out = out[:TopCounterparties]
	}
	return out
}
