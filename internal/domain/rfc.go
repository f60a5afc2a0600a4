package domain

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// TemporaryRFCPrefix marks taxpayers created before a real RFC was captured.
const TemporaryRFCPrefix = "TEMP_NEW_RFC_"

// Generic RFCs the SAT assigns to the general public and to foreign counterparties.
const (
	GenericRFCPublic  = "XAXX010101000"
	GenericRFCForeign = "XEXX010101000"
)

var (
	ErrInvalidRFCFormat     = errors.New("invalid RFC format")
	ErrInvalidRFCCheckDigit = errors.New("invalid RFC check digit")
)

var (
	rfcMoralPattern  = regexp.MustCompile(`^[A-Z&Ñ]{3}\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])[A-Z\d]{3}$`)
	rfcFisicaPattern = regexp.MustCompile(`^[A-Z&Ñ]{4}\d{2}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])[A-Z\d]{3}$`)
)

const rfcCheckAlphabet = "0123456789ABCDEFGHIJKLMN&OPQRSTUVWXYZ Ñ"

// PersonType distinguishes legal entities from individuals.
type PersonType string

const (
	PersonaMoral  PersonType = "MORAL"
	PersonaFisica PersonType = "FISICA"
)

// NormalizeRFC upper-cases and trims an RFC. Temporary identifiers are kept verbatim.
func NormalizeRFC(rfc string) string {
	rfc = strings.TrimSpace(rfc)
	if IsTemporaryRFC(rfc) {
		return rfc
	}
	return strings.ToUpper(rfc)
}

// NewTemporaryRFC returns a placeholder identifier for an unsaved taxpayer.
func NewTemporaryRFC() string {
	return TemporaryRFCPrefix + uuid.NewString()
}

// IsTemporaryRFC reports whether rfc is a placeholder from NewTemporaryRFC.
func IsTemporaryRFC(rfc string) bool {
	return strings.HasPrefix(rfc, TemporaryRFCPrefix)
}

// IsGenericRFC reports whether rfc is one of the SAT generic identifiers.
func IsGenericRFC(rfc string) bool {
	return rfc == GenericRFCPublic || rfc == GenericRFCForeign
}

// ClassifyRFC returns the person type implied by the RFC format.
func ClassifyRFC(rfc string) (PersonType, error) {
	rfc = NormalizeRFC(rfc)
	switch {
	case rfcMoralPattern.MatchString(rfc):
		return PersonaMoral, nil
	case rfcFisicaPattern.MatchString(rfc):
		return PersonaFisica, nil
	default:
		return "", ErrInvalidRFCFormat
	}
}

// ValidateRFC checks the format and the mod-11 check digit. Temporary and
// generic RFCs are accepted as-is.
func ValidateRFC(rfc string) error {
	rfc = NormalizeRFC(rfc)
	if IsTemporaryRFC(rfc) || IsGenericRFC(rfc) {
		return nil
	}
	if _, err := ClassifyRFC(rfc); err != nil {
		return err
	}
	if rfcCheckDigit(rfc) != []rune(rfc)[len([]rune(rfc))-1] {
		return ErrInvalidRFCCheckDigit
	}
	return nil
}

// rfcCheckDigit computes the expected last character. Twelve-character RFCs
// are padded with a leading space so both lengths weigh positions 13..2.
func rfcCheckDigit(rfc string) rune {
	body := []rune(rfc)
	body = body[:len(body)-1]
	if len(body) == 11 {
		body = append([]rune{' '}, body...)
	}
	alphabet := []rune(rfcCheckAlphabet)
	sum := 0
	for i, r := range body {
		idx := 0
		for j, a := range alphabet {
			if a == r {
				idx = j
				break
			}
		}
		sum += idx * (13 - i)
	}
	switch mod := sum % 11; {
	case mod == 0:
		return '0'
	case 11-mod == 10:
		return 'A'
	default:
		return rune('0' + 11 - mod)
	}
}
