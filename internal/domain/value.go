package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ValueString renders a payload value the way it is compared and audited.
// Old/new audit values and dropdown membership both work on this canonical
// string form, so it must be stable across ingestion and editing.
func ValueString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case decimal.Decimal:
		return value.String()
	case time.Time:
		return value.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", value)
	}
}
