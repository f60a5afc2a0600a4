package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRFC(t *testing.T) {
	tests := []struct {
		name    string
		rfc     string
		wantErr error
	}{
		{name: "Persona física", rfc: "GODE561231GR8"},
		{name: "Persona moral", rfc: "EKU9003173C9"},
		{name: "Lower case input", rfc: " cacx7605101p8 "},
		{name: "Generic public RFC", rfc: GenericRFCPublic},
		{name: "Generic foreign RFC", rfc: GenericRFCForeign},
		{name: "Wrong check digit", rfc: "MELM8305281H0", wantErr: ErrInvalidRFCCheckDigit},
		{name: "Wrong check digit moral", rfc: "AAA010101AAA", wantErr: ErrInvalidRFCCheckDigit},
		{name: "Invalid month", rfc: "GODE561331GR8", wantErr: ErrInvalidRFCFormat},
		{name: "Too short", rfc: "ABC", wantErr: ErrInvalidRFCFormat},
		{name: "Empty", rfc: "", wantErr: ErrInvalidRFCFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRFC(tt.rfc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClassifyRFC(t *testing.T) {
	kind, err := ClassifyRFC("EKU9003173C9")
	require.NoError(t, err)
	assert.Equal(t, PersonaMoral, kind)

	kind, err = ClassifyRFC("GODE561231GR8")
	require.NoError(t, err)
	assert.Equal(t, PersonaFisica, kind)
}

func TestTemporaryRFC(t *testing.T) {
	rfc := NewTemporaryRFC()

	assert.True(t, strings.HasPrefix(rfc, TemporaryRFCPrefix))
	assert.True(t, IsTemporaryRFC(rfc))
	assert.Equal(t, rfc, NormalizeRFC(rfc), "temporary identifiers keep their case")
	assert.NoError(t, ValidateRFC(rfc))
	assert.NotEqual(t, rfc, NewTemporaryRFC())
	assert.False(t, IsTemporaryRFC("GODE561231GR8"))
}
