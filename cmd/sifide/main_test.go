package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestExampleThenCalculate(t *testing.T) {
	bundle := filepath.Join(t.TempDir(), "contribuyente.yaml")

	assert.Contains(t, run(t, "example", bundle), bundle)

	out := run(t, "calculate", bundle, "--format", "csv")
	assert.Contains(t, out, "Mes,Ingresos,Egresos")
	assert.Contains(t, out, "Total")

	out = run(t, "calculate", bundle, "--format", "resumen")
	assert.Contains(t, out, "RESUMEN FISCAL 2024 - EKU9003173C9")

	out = run(t, "losses", bundle)
	assert.Contains(t, out, "Pérdidas actualizadas para 2024")
	assert.Contains(t, out, "2022")
}

func TestRFCCommand(t *testing.T) {
	assert.Contains(t, run(t, "rfc", "eku9003173c9"), "EKU9003173C9 válido (persona moral)")

	rootCmd.SetArgs([]string{"rfc", "NOPE"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}

func TestSurchargeCommand(t *testing.T) {
	out := run(t, "surcharge", "--amount", "1000", "--due", "2024-01-17", "--paid", "2024-04-17")
	assert.Contains(t, out, "Monto original:     $1,000.00")
	assert.Contains(t, out, "Total a pagar:")
}
