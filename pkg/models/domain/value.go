package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a table cell that is either a number or free text. The dataset
// fills missing cells with "" so numeric columns carry both kinds.
type Value struct {
	num     float64
	text    string
	numeric bool
}

func NumberValue(f float64) Value {
	return Value{num: f, numeric: true}
}

func TextValue(s string) Value {
	return Value{text: s}
}

// ParseValue keeps numeric-looking cells as numbers
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TextValue(s)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NumberValue(f)
	}
	return TextValue(s)
}

func (v Value) IsNumber() bool {
	return v.numeric
}

// IsEmpty reports a missing cell
func (v Value) IsEmpty() bool {
	return !v.numeric && strings.TrimSpace(v.text) == ""
}

// Float converts the cell to a number: empty text is 0 and non-numeric text is NaN.
func (v Value) Float() float64 {
	if v.numeric {
		return v.num
	}
	trimmed := strings.TrimSpace(v.text)
	if trimmed == "" {
		return 0
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (v Value) String() string {
	if v.numeric {
		return formatFloat(v.num)
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte(`""`), nil
		}
		return []byte(formatFloat(v.num)), nil
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = TextValue("")
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NumberValue(f)
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
