// Package repository defines the store adapter contracts. The engines only
// ever talk to these interfaces; the concrete key-value mechanics live in
// the infrastructure layer.
package repository

import (
	"context"

	"addrbook/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressField names a patchable address attribute. The set is closed so a
// patch can never introduce an attribute the schema does not know about.
type AddressField string

// Patchable address attributes.
const (
	FieldStreetAddress AddressField = "street_address"
	FieldSuburb        AddressField = "suburb"
	FieldState         AddressField = "state"
	FieldPostcode      AddressField = "postcode"
	FieldCountry       AddressField = "country"
	FieldAddressType   AddressField = "address_type"
	FieldUpdatedAt     AddressField = "updated_at"
)

// AddressPatch maps a closed set of field names to their new values. The
// store adapter translates it into its native partial-update mechanism; the
// engines never build query text themselves.
type AddressPatch map[AddressField]any

// AddressRepository is the address store adapter. Records live under a
// (userID, addressID) composite key; the suburb and postcode listings are
// backed by secondary orderings over the same records.
type AddressRepository interface {
	// Insert persists a new record. The addressID is freshly generated by
	// the caller, so no conditional write is needed.
	Insert(ctx context.Context, address *entity.Address) error

	// ListByUser returns every record in the user's partition.
	ListByUser(ctx context.Context, userID string) ([]*entity.Address, error)

	// ListByUserAndSuburb returns the user's records matching the suburb,
	// via the suburb-oriented secondary ordering.
	ListByUserAndSuburb(ctx context.Context, userID, suburb string) ([]*entity.Address, error)

	// ListByUserAndPostcode returns the user's records matching the
	// postcode, via the postcode-oriented secondary ordering.
	ListByUserAndPostcode(ctx context.Context, userID, postcode string) ([]*entity.Address, error)

	// Patch applies a partial-attribute update keyed by (userID, addressID)
	// and returns the post-update record. A missing key materializes a
	// record containing only the key and the patched attributes, mirroring
	// the store's native upsert-on-update behavior.
	Patch(ctx context.Context, userID string, addressID uuid.UUID, patch AddressPatch) (*entity.Address, error)

	// Delete removes the record by key. Deleting a nonexistent key is not
	// an error.
	Delete(ctx context.Context, userID string, addressID uuid.UUID) error
}
