package validation

import (
	"reflect"
	"strings"

	"addrbook/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Tag names registered for the domain predicates. Payload DTOs reference
// these in their validate struct tags.
const (
	TagUserID        = "user_id"
	TagAddressID     = "address_id"
	TagStreetAddress = "street_address"
	TagSuburb        = "suburb_name"
	TagState         = "region_code"
	TagCountry       = "country_name"
	TagPostcode      = "postcode"
	TagAddressType   = "address_type"
)

// Schema validates address payload structs against the domain predicates.
// It is safe for concurrent use.
type Schema struct {
	validate *validator.Validate
}

// NewSchema builds a validator with every domain predicate registered.
func NewSchema() *Schema {
	v := validator.New()

	// Report fields by their wire name so reasons read like the payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	stringPredicate := func(pred func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return pred(fl.Field().String())
		}
	}

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(v.RegisterValidation(TagUserID, stringPredicate(UserID)))
	must(v.RegisterValidation(TagAddressID, stringPredicate(AddressID)))
	must(v.RegisterValidation(TagStreetAddress, stringPredicate(StreetAddress)))
	must(v.RegisterValidation(TagSuburb, stringPredicate(Suburb)))
	must(v.RegisterValidation(TagState, stringPredicate(State)))
	must(v.RegisterValidation(TagCountry, stringPredicate(Country)))
	must(v.RegisterValidation(TagPostcode, stringPredicate(Postcode)))
	must(v.RegisterValidation(TagAddressType, stringPredicate(AddressType)))

	return &Schema{validate: v}
}

// Struct validates v and returns an error whose text lists every violated
// field with a human-readable reason.
func (s *Schema) Struct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "schema validation")
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		reasons = append(reasons, fe.Field()+" "+reasonFor(fe.Tag()))
	}

	return errors.New(strings.Join(reasons, "; "))
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case TagUserID:
		return "must be 1-128 characters of letters, digits, underscore or hyphen"
	case TagAddressID:
		return "must be a valid UUID"
	case TagStreetAddress:
		return "must be non-empty and contain only letters, digits, spaces and - ' . , #"
	case TagSuburb:
		return "must be non-empty and contain only letters, digits, spaces and - ' ."
	case TagState:
		return "must be one of " + strings.Join(stateList(), ", ")
	case TagCountry:
		return "must be non-empty and contain only letters, digits, spaces and - '"
	case TagPostcode:
		return "must be exactly 4 digits"
	case TagAddressType:
		return "must be one of " + strings.Join(addressTypeList(), ", ")
	default:
		return "is invalid"
	}
}
