// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// addressRepository implements the domain's AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Insert persists a new address record. The addressID is freshly generated
// by the engine, so a plain insert cannot collide with existing keys.
func (repo *addressRepository) Insert(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert address")
	}

	return nil
}

// ListByUser returns every record in the user's partition, oldest first.
func (repo *addressRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Address, error) {
	var records []*model.AddressModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses")
	}

	return toAddressDomainSlice(records), nil
}

// ListByUserAndSuburb queries through the (user_id, suburb) ordering.
func (repo *addressRepository) ListByUserAndSuburb(ctx context.Context, userID, suburb string) ([]*entity.Address, error) {
	var records []*model.AddressModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND suburb = ?", userID, suburb).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses by suburb")
	}

	return toAddressDomainSlice(records), nil
}

// ListByUserAndPostcode queries through the (user_id, postcode) ordering.
func (repo *addressRepository) ListByUserAndPostcode(ctx context.Context, userID, postcode string) ([]*entity.Address, error) {
	var records []*model.AddressModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND postcode = ?", userID, postcode).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list addresses by postcode")
	}

	return toAddressDomainSlice(records), nil
}

// Patch applies a partial-attribute update keyed by (userID, addressID) and
// returns the post-update image. It is an upsert: patching a key that does
// not exist materializes a record holding only the key and the patched
// columns, which mirrors the store semantics the engines rely on.
func (repo *addressRepository) Patch(ctx context.Context, userID string, addressID uuid.UUID, patch repository.AddressPatch) (*entity.Address, error) {
	insert := &model.AddressModel{UserID: userID, AddressID: addressID}
	assignments := make(map[string]any, len(patch))

	// The patch keys form a closed set whose values double as column
	// names, so nothing user-controlled ever reaches the query text.
	for field, value := range patch {
		assignments[string(field)] = value
		applyPatchField(insert, field, value)
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "address_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(insert).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to patch address")
	}

	var updated model.AddressModel
	err = repo.db.WithContext(ctx).
		Where("user_id = ? AND address_id = ?", userID, addressID).
		First(&updated).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read back patched address")
	}

	return toAddressDomain(&updated), nil
}

// Delete removes the record by key. Zero rows affected is still success;
// the engines never require the key to exist.
func (repo *addressRepository) Delete(ctx context.Context, userID string, addressID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND address_id = ?", userID, addressID).
		Delete(&model.AddressModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete address")
	}

	return nil
}

func applyPatchField(m *model.AddressModel, field repository.AddressField, value any) {
	switch field {
	case repository.FieldStreetAddress:
		m.StreetAddress, _ = value.(string)
	case repository.FieldSuburb:
		m.Suburb, _ = value.(string)
	case repository.FieldState:
		m.State, _ = value.(string)
	case repository.FieldPostcode:
		m.Postcode, _ = value.(string)
	case repository.FieldCountry:
		m.Country, _ = value.(string)
	case repository.FieldAddressType:
		if s, ok := value.(string); ok {
			m.AddressType = &s
		}
	case repository.FieldUpdatedAt:
		if t, ok := value.(time.Time); ok {
			m.UpdatedAt = t
		}
	}
}

// --- Mapper Functions ---

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		UserID:        data.UserID,
		AddressID:     data.AddressID,
		StreetAddress: data.StreetAddress,
		Suburb:        data.Suburb,
		State:         data.State,
		Postcode:      data.Postcode,
		Country:       data.Country,
		AddressType:   data.AddressType,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromAddressDomain converts a domain Address entity to a GORM AddressModel.
func fromAddressDomain(data *entity.Address) *model.AddressModel {
	if data == nil {
		return nil
	}

	return &model.AddressModel{
		UserID:        data.UserID,
		AddressID:     data.AddressID,
		StreetAddress: data.StreetAddress,
		Suburb:        data.Suburb,
		State:         data.State,
		Postcode:      data.Postcode,
		Country:       data.Country,
		AddressType:   data.AddressType,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toAddressDomainSlice(records []*model.AddressModel) []*entity.Address {
	addresses := make([]*entity.Address, 0, len(records))
	for _, record := range records {
		addresses = append(addresses, toAddressDomain(record))
	}

	return addresses
}
