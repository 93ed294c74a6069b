package model

import (
	"bytes"
	"encoding/json"
)

// Persisted calculator blobs predate this codebase and arrive in two shapes:
// a JSON object, or a JSON string containing the encoded object (one decode
// step too many on the write side, historically). Both decoders accept either
// and never fail: unreadable blobs degrade to zero values, per the
// degrade-to-default policy for malformed external data.

// DecodeInputs defensively decodes a persisted calculator_inputs blob.
func DecodeInputs(data []byte) CalculatorInputs {
	var in CalculatorInputs
	data = unwrapJSONString(data)
	if len(data) == 0 {
		return in
	}
	_ = json.Unmarshal(data, &in)
	return in
}

// DecodeResults defensively decodes a persisted calculator_results blob.
// ok is false when the blob was absent or unreadable and the caller should
// synthesize defaults.
func DecodeResults(data []byte) (CalculationResults, bool) {
	var res CalculationResults
	data = unwrapJSONString(data)
	if len(data) == 0 {
		return res, false
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return CalculationResults{}, false
	}
	if res.TierKey == "" && res.HumanCostMonthly == 0 && res.AICostMonthly.Total == 0 {
		return res, false
	}
	return res, true
}

// unwrapJSONString peels one layer of string-encoding if present.
func unwrapJSONString(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '"' {
		return data
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return bytes.TrimSpace([]byte(s))
}
