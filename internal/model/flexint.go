package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt is an int that tolerates the shapes persisted leads actually
// arrive in: JSON numbers, numeric strings ("250", "250.0"), floats, null,
// and garbage. Anything unparseable decodes to 0 rather than failing the
// whole record.
type FlexInt int

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// MarshalJSON writes the value as a plain JSON number.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

// UnmarshalJSON implements tolerant decoding.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		*f = parseFlexInt(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

func parseFlexInt(s string) FlexInt {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return FlexInt(i)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return FlexInt(n)
	}
	return 0
}
