package domain

import (
	"bytes"
	"encoding/json"

	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Monthly records tolerate partial data entry: a missing key, null, NaN or
// a non-numeric string decodes to zero instead of failing the whole bundle.

func decodeAmountsYAML(value *yaml.Node, keys []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(keys))
	if value == nil || value.Kind != yaml.MappingNode {
		return out, nil
	}
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return nil, err
	}
	for i, key := range keys {
		if n, ok := raw[key]; ok && n.Kind == yaml.ScalarNode {
			out[i] = fiscaldec.CoerceString(n.Value)
		}
	}
	return out, nil
}

func decodeAmountsJSON(data []byte, keys []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(keys))
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return out, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for i, key := range keys {
		if msg, ok := raw[key]; ok {
			out[i] = coerceRaw(msg)
		}
	}
	return out, nil
}

func coerceRaw(msg json.RawMessage) decimal.Decimal {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return decimal.Zero
	}
	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return decimal.Zero
		}
		return fiscaldec.CoerceString(s)
	}
	return fiscaldec.CoerceString(string(msg))
}
