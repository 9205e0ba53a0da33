package postgres

import (
	"context"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/errors"
	"addrbook/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// credentialRepository implements the domain's CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// FindByClientID retrieves a credential record by its client identifier.
func (repo *credentialRepository) FindByClientID(ctx context.Context, clientID string) (*entity.Credential, error) {
	var credentialM model.CredentialModel

	err := repo.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		First(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential")
	}

	return toCredentialDomain(&credentialM), nil
}

// Insert persists a new credential record.
func (repo *credentialRepository) Insert(ctx context.Context, credential *entity.Credential) error {
	credentialM := fromCredentialDomain(credential)

	if err := repo.db.WithContext(ctx).Create(credentialM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert credential")
	}

	return nil
}

// --- Mapper Functions ---

func toCredentialDomain(data *model.CredentialModel) *entity.Credential {
	if data == nil {
		return nil
	}

	credential := &entity.Credential{
		ClientID:    data.ClientID,
		SecretHash:  data.SecretHash,
		ClientName:  data.ClientName,
		Description: data.Description,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
	}
	if data.ExpiresAt != nil {
		credential.ExpiresAt = *data.ExpiresAt
	}

	return credential
}

func fromCredentialDomain(data *entity.Credential) *model.CredentialModel {
	if data == nil {
		return nil
	}

	credentialM := &model.CredentialModel{
		ClientID:    data.ClientID,
		SecretHash:  data.SecretHash,
		ClientName:  data.ClientName,
		Description: data.Description,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
	}
	if !data.ExpiresAt.IsZero() {
		expiresAt := data.ExpiresAt
		credentialM.ExpiresAt = &expiresAt
	}

	return credentialM
}
