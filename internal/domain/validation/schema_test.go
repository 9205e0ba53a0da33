package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPayload struct {
	StreetAddress string  `json:"streetAddress" validate:"required,street_address"`
	Suburb        string  `json:"suburb" validate:"required,suburb_name"`
	State         string  `json:"state" validate:"required,region_code"`
	Postcode      string  `json:"postcode" validate:"required,postcode"`
	Country       string  `json:"country" validate:"omitempty,country_name"`
	AddressType   *string `json:"addressType" validate:"omitnil,address_type"`
}

func TestSchema_Struct_Valid(t *testing.T) {
	schema := NewSchema()

	payload := createPayload{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
		Country:       "Australia",
	}

	assert.NoError(t, schema.Struct(payload))
}

func TestSchema_Struct_ReportsWireFieldNames(t *testing.T) {
	schema := NewSchema()

	payload := createPayload{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "20000",
	}

	err := schema.Struct(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postcode must be exactly 4 digits")
}

func TestSchema_Struct_CollectsEveryViolation(t *testing.T) {
	schema := NewSchema()

	payload := createPayload{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "XYZ",
		Postcode:      "abc",
	}

	err := schema.Struct(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state must be one of")
	assert.Contains(t, err.Error(), "postcode must be exactly 4 digits")
}

func TestSchema_Struct_OmitnilSkipsAbsentPointer(t *testing.T) {
	schema := NewSchema()

	payload := createPayload{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
	}

	// Absent pointer passes; present-but-invalid fails.
	assert.NoError(t, schema.Struct(payload))

	bad := "CASTLE"
	payload.AddressType = &bad
	err := schema.Struct(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addressType must be one of")
}

func TestSchema_Struct_OmitemptySkipsEmptyCountry(t *testing.T) {
	schema := NewSchema()

	payload := createPayload{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
		Country:       "",
	}

	assert.NoError(t, schema.Struct(payload))
}
