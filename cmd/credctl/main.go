// Command credctl provisions API credentials. It writes the SHA-256 digest
// of a freshly generated secret to the credential store and prints the
// secret exactly once; the plaintext is never stored.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"time"

	"addrbook/config"
	"addrbook/internal/domain/entity"
	"addrbook/internal/domain/validation"
	"addrbook/internal/infra/auth"
	"addrbook/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

const secretBytes = 32

func main() {
	clientID := flag.String("client-id", "", "Client identifier (required)")
	clientName := flag.String("name", "", "Human-readable client name")
	description := flag.String("description", "", "Free-form description")
	ttl := flag.Duration("ttl", 0, "Credential lifetime (0 = never expires)")
	flag.Parse()

	if err := run(context.Background(), *clientID, *clientName, *description, *ttl); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, clientID, clientName, description string, ttl time.Duration) error {
	if !validation.UserID(clientID) {
		return errors.New("client-id must be 1-128 characters of [A-Za-z0-9_-]")
	}

	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return errors.Wrap(err, "connect to PostgreSQL")
	}
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})
	defer closeDB(db)

	secret, err := generateSecret()
	if err != nil {
		return errors.Wrap(err, "generate secret")
	}

	hasher := auth.NewSHA256Hasher()
	now := time.Now().UTC()

	credential := &entity.Credential{
		ClientID:    clientID,
		SecretHash:  hasher.Digest(secret),
		ClientName:  clientName,
		Description: description,
		Active:      true,
		CreatedAt:   now,
	}
	if ttl > 0 {
		credential.ExpiresAt = now.Add(ttl)
	}

	repo := postgres.NewCredentialRepository(db)
	if err := repo.Insert(ctx, credential); err != nil {
		return errors.Wrap(err, "insert credential")
	}

	fmt.Printf("Client ID: %s\n", clientID)
	fmt.Printf("Secret:    %s\n", secret)
	if ttl > 0 {
		fmt.Printf("Expires:   %s\n", credential.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Println("Store the secret now; it cannot be recovered later.")

	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.WithStack(err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
