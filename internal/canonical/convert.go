package canonical

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Conversion is a named, total-on-empty value conversion. Empty input
// passes through unchanged so that defaults can still apply downstream.
type Conversion func(string) (string, error)

var conversions = map[string]Conversion{
	"padLeft10":   padLeft10,
	"toUpperCase": toUpperCase,
	"toDecimal":   toDecimal,
	"toInteger":   toInteger,
	"toDate":      toDate,
}

// LookupConversion returns the named conversion, or nil if unknown.
func LookupConversion(name string) Conversion {
	return conversions[name]
}

func padLeft10(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if len(v) >= 10 {
		return v, nil
	}
	return strings.Repeat("0", 10-len(v)) + v, nil
}

func toUpperCase(v string) (string, error) {
	return strings.ToUpper(v), nil
}

func toDecimal(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("toDecimal: %q is not numeric", v)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

func toInteger(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return "", fmt.Errorf("toInteger: %q is not numeric", v)
	}
	return strconv.FormatInt(int64(f), 10), nil
}

// toDate accepts the compact YYYYMMDD form and ISO dates, normalizing to
// ISO 8601.
func toDate(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	for _, layout := range []string{"20060102", "2006-01-02", "02.01.2006", "01/02/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("toDate: %q is not a recognized date", v)
}
