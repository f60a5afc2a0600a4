// Package store persists taxpayer bundles. Calculations never write; callers
// load a bundle, compute, and save it back.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
)

// ErrNotFound is returned when no bundle is stored under an RFC.
var ErrNotFound = errors.New("taxpayer not found")

// Store defines the persistence operations used by the service
type Store interface {
	Get(ctx context.Context, rfc string) (*domain.TaxpayerData, error)
	// Save inserts or replaces the bundle keyed by its RFC and stamps LastSaved.
	Save(ctx context.Context, data *domain.TaxpayerData) error
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, rfc string) error
}

// Entry is the listing view of a stored bundle.
type Entry struct {
	RFC         string        `json:"rfc"`
	CompanyName string        `json:"company_name"`
	FiscalYear  int           `json:"fiscal_year"`
	Regime      domain.Regime `json:"regime"`
	LastSaved   time.Time     `json:"last_saved"`
}

// nowFunc stamps saved bundles (override in tests for determinism).
var nowFunc = time.Now

func entryFor(data *domain.TaxpayerData) Entry {
	e := Entry{
		RFC:         data.Config.RFC,
		CompanyName: data.Config.CompanyName,
		FiscalYear:  data.Config.FiscalYear,
		Regime:      data.Config.Regime,
	}
	if data.LastSaved != nil {
		e.LastSaved = *data.LastSaved
	}
	return e
}
