package impl

import (
	"context"
	"testing"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/domain/validation"
	"addrbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAddressServiceForTest(addresses *mockAddressRepository, publisher *mockEventPublisher) usecase.AddressUsecase {
	return NewAddressService(addresses, validation.NewSchema(), publisher, discardLogger())
}

func strPtr(s string) *string {
	return &s
}

func validCreateInput() *usecase.CreateAddressInput {
	return &usecase.CreateAddressInput{
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
	}
}

func TestAddressService_CreateAddress_Success(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	mockAddresses.On("ListByUser", ctx, "user-1").Return([]*entity.Address{}, nil)
	mockAddresses.On("Insert", ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.AnythingOfType("*service.AddressEvent")).Return(nil)

	address, err := svc.CreateAddress(ctx, "user-1", validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, "user-1", address.UserID)
	assert.NotEqual(t, uuid.Nil, address.AddressID)
	assert.Equal(t, "123 George St", address.StreetAddress)
	assert.Equal(t, entity.DefaultCountry, address.Country)
	assert.Nil(t, address.AddressType)
	assert.False(t, address.CreatedAt.IsZero())
	assert.Equal(t, address.CreatedAt, address.UpdatedAt)

	mockPublisher.AssertCalled(t, "PublishAddressEvent", ctx, mock.MatchedBy(func(event *service.AddressEvent) bool {
		return event.Type == service.EventAddressCreated && event.UserID == "user-1"
	}))
}

func TestAddressService_CreateAddress_CanonicalizesAddressType(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	mockAddresses.On("ListByUser", ctx, "user-1").Return([]*entity.Address{}, nil)
	mockAddresses.On("Insert", ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).Return(nil)

	input := validCreateInput()
	input.AddressType = strPtr("home")

	address, err := svc.CreateAddress(ctx, "user-1", input)
	require.NoError(t, err)
	require.NotNil(t, address.AddressType)
	assert.Equal(t, entity.AddressTypeHome, *address.AddressType)
}

func TestAddressService_CreateAddress_Duplicate(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	existing := &entity.Address{
		UserID:        "user-1",
		AddressID:     uuid.New(),
		StreetAddress: "123 GEORGE ST ",
		Suburb:        " sydney",
		State:         "nsw",
		Postcode:      "2000",
		Country:       "AUSTRALIA",
	}
	mockAddresses.On("ListByUser", ctx, "user-1").Return([]*entity.Address{existing}, nil)

	// Matching is case-insensitive on trimmed values, so this payload
	// collides with the stored record despite the different casing.
	address, err := svc.CreateAddress(ctx, "user-1", validCreateInput())
	assert.Nil(t, address)
	assert.Equal(t, domainerrors.ErrDuplicateAddress, err)
	mockAddresses.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "PublishAddressEvent", mock.Anything, mock.Anything)
}

func TestAddressService_CreateAddress_AddressTypeDistinguishes(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	existing := &entity.Address{
		UserID:        "user-1",
		AddressID:     uuid.New(),
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
		Country:       entity.DefaultCountry,
		AddressType:   strPtr(entity.AddressTypeHome),
	}
	mockAddresses.On("ListByUser", ctx, "user-1").Return([]*entity.Address{existing}, nil)
	mockAddresses.On("Insert", ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).Return(nil)

	// Same location fields but no addressType: a missing type only matches
	// a missing type, so this is not a duplicate.
	address, err := svc.CreateAddress(ctx, "user-1", validCreateInput())
	require.NoError(t, err)
	assert.NotNil(t, address)
}

func TestAddressService_CreateAddress_SamePayloadDifferentUser(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	existing := &entity.Address{
		UserID:        "user-1",
		AddressID:     uuid.New(),
		StreetAddress: "123 George St",
		Suburb:        "Sydney",
		State:         "NSW",
		Postcode:      "2000",
		Country:       entity.DefaultCountry,
	}

	// Duplicate detection is scoped to the owner's partition, so user-2
	// only ever sees user-2's records.
	mockAddresses.On("ListByUser", ctx, "user-2").Return([]*entity.Address{}, nil)
	mockAddresses.On("Insert", ctx, mock.AnythingOfType("*entity.Address")).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).Return(nil)

	address, err := svc.CreateAddress(ctx, "user-2", validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.Equal(t, "user-2", address.UserID)
	assert.True(t, address.SameLocation(existing))
	mockAddresses.AssertNotCalled(t, "ListByUser", ctx, "user-1")
}

func TestAddressService_CreateAddress_InvalidUserID(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	address, err := svc.CreateAddress(context.Background(), "bad user!", validCreateInput())
	assert.Nil(t, address)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "BAD_REQUEST", appErr.ErrorCode())
	mockAddresses.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestAddressService_CreateAddress_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(input *usecase.CreateAddressInput)
	}{
		{
			name:   "missing street address",
			mutate: func(input *usecase.CreateAddressInput) { input.StreetAddress = "" },
		},
		{
			name:   "unknown state",
			mutate: func(input *usecase.CreateAddressInput) { input.State = "XYZ" },
		},
		{
			name:   "postcode too short",
			mutate: func(input *usecase.CreateAddressInput) { input.Postcode = "200" },
		},
		{
			name:   "postcode not numeric",
			mutate: func(input *usecase.CreateAddressInput) { input.Postcode = "20ab" },
		},
		{
			name:   "street address with forbidden characters",
			mutate: func(input *usecase.CreateAddressInput) { input.StreetAddress = "123 <script>" },
		},
		{
			name:   "unknown address type",
			mutate: func(input *usecase.CreateAddressInput) { input.AddressType = strPtr("CASTLE") },
		},
		{
			name:   "whitespace-only suburb",
			mutate: func(input *usecase.CreateAddressInput) { input.Suburb = "   " },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAddresses := new(mockAddressRepository)
			mockPublisher := new(mockEventPublisher)
			svc := newAddressServiceForTest(mockAddresses, mockPublisher)

			input := validCreateInput()
			tt.mutate(input)

			address, err := svc.CreateAddress(context.Background(), "user-1", input)
			assert.Nil(t, address)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
			mockAddresses.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestAddressService_ListAddresses_NoFilter(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	expected := []*entity.Address{{UserID: "user-1", AddressID: uuid.New()}}
	mockAddresses.On("ListByUser", ctx, "user-1").Return(expected, nil)

	addresses, err := svc.ListAddresses(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, expected, addresses)
}

func TestAddressService_ListAddresses_RepeatedReadsAgree(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	records := []*entity.Address{
		{UserID: "user-1", AddressID: uuid.New(), Suburb: "Sydney", Postcode: "2000"},
		{UserID: "user-1", AddressID: uuid.New(), Suburb: "Sydney", Postcode: "2001"},
	}
	mockAddresses.On("ListByUser", ctx, "user-1").Return(records, nil)
	mockAddresses.On("ListByUserAndSuburb", ctx, "user-1", "Sydney").Return(records, nil)

	// Reading twice with an unchanged store returns identical result sets;
	// listing never mutates state.
	first, err := svc.ListAddresses(ctx, "user-1", nil)
	require.NoError(t, err)
	second, err := svc.ListAddresses(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	filter := &usecase.AddressFilter{Suburb: "Sydney", Postcode: "2000"}
	firstFiltered, err := svc.ListAddresses(ctx, "user-1", filter)
	require.NoError(t, err)
	secondFiltered, err := svc.ListAddresses(ctx, "user-1", filter)
	require.NoError(t, err)
	assert.Equal(t, firstFiltered, secondFiltered)

	mockAddresses.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockAddresses.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockAddresses.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "PublishAddressEvent", mock.Anything, mock.Anything)
}

func TestAddressService_ListAddresses_SuburbFilter(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	expected := []*entity.Address{{UserID: "user-1", Suburb: "Sydney"}}
	mockAddresses.On("ListByUserAndSuburb", ctx, "user-1", "Sydney").Return(expected, nil)

	addresses, err := svc.ListAddresses(ctx, "user-1", &usecase.AddressFilter{Suburb: "Sydney"})
	require.NoError(t, err)
	assert.Equal(t, expected, addresses)
	mockAddresses.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestAddressService_ListAddresses_CombinedFilters(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	records := []*entity.Address{
		{UserID: "user-1", Suburb: "Sydney", Postcode: "2000"},
		{UserID: "user-1", Suburb: "Sydney", Postcode: "2001"},
	}
	mockAddresses.On("ListByUserAndSuburb", ctx, "user-1", "Sydney").Return(records, nil)

	addresses, err := svc.ListAddresses(ctx, "user-1", &usecase.AddressFilter{Suburb: "Sydney", Postcode: "2000"})
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, "2000", addresses[0].Postcode)
}

func TestAddressService_ListAddresses_PostcodeFilter(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	expected := []*entity.Address{{UserID: "user-1", Postcode: "2000"}}
	mockAddresses.On("ListByUserAndPostcode", ctx, "user-1", "2000").Return(expected, nil)

	addresses, err := svc.ListAddresses(ctx, "user-1", &usecase.AddressFilter{Postcode: "2000"})
	require.NoError(t, err)
	assert.Equal(t, expected, addresses)
}

func TestAddressService_ListAddresses_InvalidFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter *usecase.AddressFilter
	}{
		{name: "bad suburb", filter: &usecase.AddressFilter{Suburb: "Syd<ney>"}},
		{name: "bad postcode", filter: &usecase.AddressFilter{Postcode: "20000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAddresses := new(mockAddressRepository)
			mockPublisher := new(mockEventPublisher)
			svc := newAddressServiceForTest(mockAddresses, mockPublisher)

			addresses, err := svc.ListAddresses(context.Background(), "user-1", tt.filter)
			assert.Nil(t, addresses)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "BAD_REQUEST", appErr.ErrorCode())
		})
	}
}

func TestAddressService_UpdateAddress_Success(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	addressID := uuid.New()
	updated := &entity.Address{UserID: "user-1", AddressID: addressID, Suburb: "Melbourne"}

	mockAddresses.On("Patch", ctx, "user-1", addressID, mock.MatchedBy(func(patch repository.AddressPatch) bool {
		// The patch must carry exactly the supplied fields plus the
		// engine-controlled timestamp.
		if len(patch) != 3 {
			return false
		}
		if patch[repository.FieldSuburb] != "Melbourne" {
			return false
		}
		if patch[repository.FieldPostcode] != "3000" {
			return false
		}
		_, hasUpdatedAt := patch[repository.FieldUpdatedAt]

		return hasUpdatedAt
	})).Return(updated, nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).Return(nil)

	input := &usecase.UpdateAddressInput{
		Suburb:   strPtr("Melbourne"),
		Postcode: strPtr("3000"),
	}

	address, err := svc.UpdateAddress(ctx, "user-1", addressID.String(), input)
	require.NoError(t, err)
	assert.Equal(t, updated, address)

	mockPublisher.AssertCalled(t, "PublishAddressEvent", ctx, mock.MatchedBy(func(event *service.AddressEvent) bool {
		return event.Type == service.EventAddressUpdated
	}))
}

func TestAddressService_UpdateAddress_EmptyPatch(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	address, err := svc.UpdateAddress(context.Background(), "user-1", uuid.New().String(), &usecase.UpdateAddressInput{})
	assert.Nil(t, address)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Message(), "must have at least 1 key")
	mockAddresses.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddressService_UpdateAddress_PresentButInvalidField(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	input := &usecase.UpdateAddressInput{Postcode: strPtr("200")}

	address, err := svc.UpdateAddress(context.Background(), "user-1", uuid.New().String(), input)
	assert.Nil(t, address)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAddressService_UpdateAddress_InvalidAddressID(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	input := &usecase.UpdateAddressInput{Suburb: strPtr("Melbourne")}

	address, err := svc.UpdateAddress(context.Background(), "user-1", "not-a-uuid", input)
	assert.Nil(t, address)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BAD_REQUEST", appErr.ErrorCode())
	assert.Equal(t, "Invalid addressId", appErr.Message())
}

func TestAddressService_DeleteAddress_Success(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	addressID := uuid.New()
	mockAddresses.On("Delete", ctx, "user-1", addressID).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).Return(nil)

	err := svc.DeleteAddress(ctx, "user-1", addressID.String())
	require.NoError(t, err)

	mockPublisher.AssertCalled(t, "PublishAddressEvent", ctx, mock.MatchedBy(func(event *service.AddressEvent) bool {
		return event.Type == service.EventAddressDeleted && event.AddressID == addressID.String()
	}))
}

func TestAddressService_DeleteAddress_PublishFailureIsSwallowed(t *testing.T) {
	mockAddresses := new(mockAddressRepository)
	mockPublisher := new(mockEventPublisher)
	svc := newAddressServiceForTest(mockAddresses, mockPublisher)

	ctx := context.Background()
	addressID := uuid.New()
	mockAddresses.On("Delete", ctx, "user-1", addressID).Return(nil)
	mockPublisher.On("PublishAddressEvent", ctx, mock.Anything).
		Return(assert.AnError)

	// The write succeeded; a broken event pipeline must not fail the call.
	err := svc.DeleteAddress(ctx, "user-1", addressID.String())
	assert.NoError(t, err)
}
