package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "addrbook/internal/delivery/context"
	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/domain/validation"
	"addrbook/internal/errors"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
)

// addressService implements the AddressUsecase interface.
type addressService struct {
	addresses repository.AddressRepository
	schema    *validation.Schema
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(
	addresses repository.AddressRepository,
	schema *validation.Schema,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.AddressUsecase {
	return &addressService{
		addresses: addresses,
		schema:    schema,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateAddress validates the payload, rejects duplicates within the user's
// partition and persists a fresh record.
func (srv *addressService) CreateAddress(ctx context.Context, userID string, input *usecase.CreateAddressInput) (*entity.Address, error) {
	if !validation.UserID(userID) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid userId")
	}
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage("request body is required")
	}

	normalizeCreateInput(input)

	if err := srv.schema.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage(err.Error())
	}

	candidate := &entity.Address{
		UserID:        userID,
		StreetAddress: input.StreetAddress,
		Suburb:        input.Suburb,
		State:         input.State,
		Postcode:      input.Postcode,
		Country:       input.Country,
		AddressType:   input.AddressType,
	}

	// Best-effort duplicate check: a read-then-write with no isolation
	// against a concurrent create for the same user.
	existing, err := srv.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan addresses for duplicate check")
	}
	for _, record := range existing {
		if record.SameLocation(candidate) {
			return nil, domainerrors.ErrDuplicateAddress
		}
	}

	now := time.Now().UTC()
	candidate.AddressID = uuid.New()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if err := srv.addresses.Insert(ctx, candidate); err != nil {
		return nil, errors.Wrap(err, "failed to insert address")
	}

	srv.logger.InfoContext(ctx, "Address created",
		slog.String("userId", userID),
		slog.String("addressId", candidate.AddressID.String()),
	)
	srv.publish(ctx, service.EventAddressCreated, userID, candidate.AddressID.String())

	return candidate, nil
}

// ListAddresses returns the user's addresses, optionally narrowed by suburb
// and/or postcode. When both filters are present the suburb ordering drives
// the query and the postcode is applied as a post-query filter.
func (srv *addressService) ListAddresses(ctx context.Context, userID string, filter *usecase.AddressFilter) ([]*entity.Address, error) {
	if !validation.UserID(userID) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid userId")
	}

	suburb, postcode := "", ""
	if filter != nil {
		suburb = strings.TrimSpace(filter.Suburb)
		postcode = strings.TrimSpace(filter.Postcode)
	}
	if suburb != "" && !validation.Suburb(suburb) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid suburb filter")
	}
	if postcode != "" && !validation.Postcode(postcode) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid postcode filter")
	}

	switch {
	case suburb != "":
		records, err := srv.addresses.ListByUserAndSuburb(ctx, userID, suburb)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list addresses by suburb")
		}
		if postcode == "" {
			return records, nil
		}

		filtered := make([]*entity.Address, 0, len(records))
		for _, record := range records {
			if strings.TrimSpace(record.Postcode) == postcode {
				filtered = append(filtered, record)
			}
		}

		return filtered, nil

	case postcode != "":
		records, err := srv.addresses.ListByUserAndPostcode(ctx, userID, postcode)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list addresses by postcode")
		}

		return records, nil

	default:
		records, err := srv.addresses.ListByUser(ctx, userID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list addresses")
		}

		return records, nil
	}
}

// UpdateAddress applies a partial update to the record keyed by
// (userID, addressID) and returns the post-update image. Updating a key
// that does not exist materializes a partial record; this mirrors the
// store's native upsert-on-update behavior and is intentional.
func (srv *addressService) UpdateAddress(ctx context.Context, userID, addressID string, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	if !validation.UserID(userID) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid userId")
	}
	if !validation.AddressID(addressID) {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid addressId")
	}
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage("must have at least 1 key")
	}

	id, err := uuid.Parse(addressID)
	if err != nil {
		return nil, domainerrors.ErrBadRequest.WithMessage("Invalid addressId")
	}

	normalizeUpdateInput(input)

	if err := srv.schema.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage(err.Error())
	}

	patch := buildPatch(input)
	if len(patch) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithMessage("must have at least 1 key")
	}
	patch[repository.FieldUpdatedAt] = time.Now().UTC()

	updated, err := srv.addresses.Patch(ctx, userID, id, patch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to patch address")
	}

	srv.logger.InfoContext(ctx, "Address updated",
		slog.String("userId", userID),
		slog.String("addressId", addressID),
		slog.Int("patchedFields", len(patch)-1),
	)
	srv.publish(ctx, service.EventAddressUpdated, userID, addressID)

	return updated, nil
}

// DeleteAddress removes the record by key. Deletion is unconditional:
// removing a nonexistent key succeeds.
func (srv *addressService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if !validation.UserID(userID) {
		return domainerrors.ErrBadRequest.WithMessage("Invalid userId")
	}
	if !validation.AddressID(addressID) {
		return domainerrors.ErrBadRequest.WithMessage("Invalid addressId")
	}

	id, err := uuid.Parse(addressID)
	if err != nil {
		return domainerrors.ErrBadRequest.WithMessage("Invalid addressId")
	}

	if err := srv.addresses.Delete(ctx, userID, id); err != nil {
		return errors.Wrap(err, "failed to delete address")
	}

	srv.logger.InfoContext(ctx, "Address deleted",
		slog.String("userId", userID),
		slog.String("addressId", addressID),
	)
	srv.publish(ctx, service.EventAddressDeleted, userID, addressID)

	return nil
}

// publish emits an address change event. Failures are logged and dropped;
// the write has already succeeded and the response must not depend on the
// event pipeline.
func (srv *addressService) publish(ctx context.Context, eventType, userID, addressID string) {
	event := &service.AddressEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     userID,
		AddressID:  addressID,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAddressEvent(ctx, event); err != nil {
		srv.logger.WarnContext(ctx, "Failed to publish address event",
			slog.String("type", eventType),
			slog.String("addressId", addressID),
			slog.Any("error", err),
		)
	}
}

// normalizeCreateInput trims every string field, applies the country
// default and canonicalizes the address type before validation.
func normalizeCreateInput(input *usecase.CreateAddressInput) {
	input.StreetAddress = strings.TrimSpace(input.StreetAddress)
	input.Suburb = strings.TrimSpace(input.Suburb)
	input.State = strings.TrimSpace(input.State)
	input.Postcode = strings.TrimSpace(input.Postcode)
	input.Country = strings.TrimSpace(input.Country)
	if input.Country == "" {
		input.Country = entity.DefaultCountry
	}
	input.AddressType = canonicalAddressType(input.AddressType)
}

// normalizeUpdateInput trims present fields and canonicalizes the address
// type. Absent fields stay absent.
func normalizeUpdateInput(input *usecase.UpdateAddressInput) {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*s)

		return &trimmed
	}

	input.StreetAddress = trim(input.StreetAddress)
	input.Suburb = trim(input.Suburb)
	input.State = trim(input.State)
	input.Postcode = trim(input.Postcode)
	input.Country = trim(input.Country)
	input.AddressType = canonicalAddressType(input.AddressType)
}

// canonicalAddressType uppercases a present address type so the stored form
// is always the canonical member of the enumeration.
func canonicalAddressType(addressType *string) *string {
	if addressType == nil {
		return nil
	}
	canonical := strings.ToUpper(strings.TrimSpace(*addressType))

	return &canonical
}

// buildPatch translates present input fields into the closed patch set.
func buildPatch(input *usecase.UpdateAddressInput) repository.AddressPatch {
	patch := repository.AddressPatch{}
	if input.StreetAddress != nil {
		patch[repository.FieldStreetAddress] = *input.StreetAddress
	}
	if input.Suburb != nil {
		patch[repository.FieldSuburb] = *input.Suburb
	}
	if input.State != nil {
		patch[repository.FieldState] = *input.State
	}
	if input.Postcode != nil {
		patch[repository.FieldPostcode] = *input.Postcode
	}
	if input.Country != nil {
		patch[repository.FieldCountry] = *input.Country
	}
	if input.AddressType != nil {
		patch[repository.FieldAddressType] = *input.AddressType
	}

	return patch
}
