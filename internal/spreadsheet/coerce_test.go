package spreadsheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operata/feedback-portal/internal/domain"
)

func TestCoercePassThrough(t *testing.T) {
	value, logs := Coerce(int64(42), domain.FieldTypeInteger)
	assert.Equal(t, int64(42), value)
	assert.Empty(t, logs)

	value, logs = Coerce("already a string", domain.FieldTypeString)
	assert.Equal(t, "already a string", value)
	assert.Empty(t, logs)
}

func TestCoerceEmptyString(t *testing.T) {
	for _, ft := range []domain.FieldType{
		domain.FieldTypeString,
		domain.FieldTypeInteger,
		domain.FieldTypeFloat,
		domain.FieldTypeBoolean,
		domain.FieldTypeDateTime,
		domain.FieldTypeDecimal,
	} {
		value, logs := Coerce("  ", ft)
		assert.Nil(t, value, "type %s", ft)
		assert.Empty(t, logs, "type %s", ft)
	}
}

func TestCoerceNumeric(t *testing.T) {
	value, logs := Coerce("1001", domain.FieldTypeInteger)
	require.Empty(t, logs)
	assert.Equal(t, int64(1001), value)

	// Float representations that are losslessly integral are accepted.
	value, logs = Coerce("7.0", domain.FieldTypeInteger)
	require.Empty(t, logs)
	assert.Equal(t, int64(7), value)

	value, logs = Coerce("12.5", domain.FieldTypeFloat)
	require.Empty(t, logs)
	assert.Equal(t, 12.5, value)
}

func TestCoerceMalformedNumericDegrades(t *testing.T) {
	value, logs := Coerce("abc", domain.FieldTypeInteger)
	assert.Nil(t, value)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "abc")
	assert.Contains(t, logs[0], "reset to nil")
}

func TestCoerceDecimal(t *testing.T) {
	value, logs := Coerce("1503.250", domain.FieldTypeDecimal)
	require.Empty(t, logs)
	d, ok := value.(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("1503.25")))

	value, logs = Coerce("not-a-number", domain.FieldTypeDecimal)
	assert.Nil(t, value)
	assert.Len(t, logs, 1)
}

func TestCoerceBoolean(t *testing.T) {
	for raw, want := range map[string]bool{
		"yes": true, "Y": true, "1": true, "true": true,
		"no": false, "N": false, "0": false, "false": false,
	} {
		value, logs := Coerce(raw, domain.FieldTypeBoolean)
		require.Empty(t, logs, "raw %q", raw)
		assert.Equal(t, want, value, "raw %q", raw)
	}

	value, logs := Coerce("maybe", domain.FieldTypeBoolean)
	assert.Nil(t, value)
	assert.Len(t, logs, 1)
}

func TestCoerceNaiveDateTime(t *testing.T) {
	value, logs := Coerce("2025-03-14 09:30:00", domain.FieldTypeDateTime)
	require.Empty(t, logs)
	ts, ok := value.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2025, ts.Year())
	assert.Equal(t, 9, ts.Hour())
}

func TestCoerceTimezoneAwareFailsClosed(t *testing.T) {
	for _, raw := range []string{
		"2025-03-14T09:30:00Z",
		"2025-03-14T09:30:00+02:00",
		"2025-03-14 09:30:00 -0700",
	} {
		value, logs := Coerce(raw, domain.FieldTypeDateTime)
		assert.Nil(t, value, "raw %q", raw)
		require.Len(t, logs, 1, "raw %q", raw)
		assert.Contains(t, logs[0], "timezone-aware")
	}
}

func TestCoerceUnparseableDateTime(t *testing.T) {
	value, logs := Coerce("soon", domain.FieldTypeDateTime)
	assert.Nil(t, value)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "datetime")
}

func TestValidateDropdown(t *testing.T) {
	plain := domain.FieldDefinition{Key: "notes", Type: domain.FieldTypeString}
	assert.Nil(t, ValidateDropdown("anything", plain))

	dd := domain.FieldDefinition{
		Key:           "emission_type",
		Type:          domain.FieldTypeString,
		IsDropdown:    true,
		AllowedValues: []string{"Please Select", "Venting", "Flaring"},
	}

	valid := ValidateDropdown("Venting", dd)
	require.NotNil(t, valid)
	assert.True(t, *valid)

	invalid := ValidateDropdown("Leaking", dd)
	require.NotNil(t, invalid)
	assert.False(t, *invalid)
}
