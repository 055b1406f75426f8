// Package extractors holds the concrete extractor fleet. Each extractor
// declares its identity and expected tables, reads through the gateway
// helpers of the base type, and shapes its rows into named sections.
package extractors

import (
	"fmt"
	"strconv"

	"github.com/erplens/erplens/internal/extract"
)

// RegisterAll registers the full fleet in its canonical order.
func RegisterAll(r *extract.Registry) error {
	all := []extract.Extractor{
		NewCompanyCodes(),
		NewNumberRanges(),
		NewControlling(),
		NewMaterials(),
		NewBusinessPartners(),
		NewChangeDocuments(),
		NewUsageStatistics(),
		NewCustomObjects(),
		NewSecurityUsers(),
		NewSecurityRoles(),
		NewInterfaces(),
		NewBatchJobs(),
		NewArchiving(),
	}
	for _, x := range all {
		if err := r.Register(x); err != nil {
			return fmt.Errorf("registering %s: %w", x.Identity().ID, err)
		}
	}
	return nil
}

func str(row map[string]interface{}, col string) string {
	v, ok := row[col]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func num(row map[string]interface{}, col string) float64 {
	switch v := row[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
