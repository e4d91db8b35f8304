package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/operata/feedback-portal/internal/domain"
)

// Layouts that carry no timezone information. A value parsing only through
// one of these is a naive date-time and is accepted.
var naiveLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Layouts that carry an offset or zone. Values matching these are rejected
// rather than stored.
var awareLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 MST",
}

// Coerce converts a raw cell value to the field's declared semantic type.
// A value already matching the declared type passes through unchanged, and
// an empty string coerces to nil regardless of type. Coercion never fails
// hard for a single cell: on failure the value degrades to nil and the
// returned log lines record what happened, so one bad cell cannot abort a
// whole tab.
func Coerce(raw any, declared domain.FieldType) (any, []string) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	if matchesType(raw, declared) {
		return raw, nil
	}

	text := strings.TrimSpace(domain.ValueString(raw))

	switch declared {
	case domain.FieldTypeString:
		return text, nil

	case domain.FieldTypeInteger:
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil && math.Mod(f, 1) == 0 {
			return int64(f), nil
		}
		return nil, []string{fmt.Sprintf("unable to coerce %q to integer; value reset to nil", text)}

	case domain.FieldTypeFloat:
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f, nil
		}
		return nil, []string{fmt.Sprintf("unable to coerce %q to float; value reset to nil", text)}

	case domain.FieldTypeDecimal:
		if d, err := decimal.NewFromString(text); err == nil {
			return d, nil
		}
		return nil, []string{fmt.Sprintf("unable to coerce %q to decimal; value reset to nil", text)}

	case domain.FieldTypeBoolean:
		switch strings.ToLower(text) {
		case "1", "yes", "y":
			return true, nil
		case "0", "no", "n":
			return false, nil
		}
		if b, err := strconv.ParseBool(strings.ToLower(text)); err == nil {
			return b, nil
		}
		return nil, []string{fmt.Sprintf("unable to coerce %q to boolean; value reset to nil", text)}

	case domain.FieldTypeDateTime:
		return coerceDateTime(text)

	default:
		return text, nil
	}
}

// coerceDateTime parses a naive date-time. Timezone-aware values fail closed:
// the field is reset to nil and the rejection is logged.
func coerceDateTime(text string) (any, []string) {
	for _, layout := range naiveLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	for _, layout := range awareLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return nil, []string{fmt.Sprintf("timezone-aware datetime %q rejected; value reset to nil", text)}
		}
	}
	return nil, []string{fmt.Sprintf("unable to coerce %q to datetime; value reset to nil", text)}
}

func matchesType(raw any, declared domain.FieldType) bool {
	switch declared {
	case domain.FieldTypeString:
		_, ok := raw.(string)
		return ok
	case domain.FieldTypeInteger:
		switch raw.(type) {
		case int, int64:
			return true
		}
	case domain.FieldTypeFloat:
		_, ok := raw.(float64)
		return ok
	case domain.FieldTypeBoolean:
		_, ok := raw.(bool)
		return ok
	case domain.FieldTypeDecimal:
		_, ok := raw.(decimal.Decimal)
		return ok
	case domain.FieldTypeDateTime:
		if ts, ok := raw.(time.Time); ok {
			_, offset := ts.Zone()
			return offset == 0
		}
	}
	return false
}
