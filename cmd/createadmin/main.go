// Command createadmin provisions an administrator account. Admins cannot be
// created or promoted through the API, so this is the only way to mint one.
//
// Usage:
//
//	createadmin -email admin@example.com -password secret [-username admin]
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/config"
	mongodb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/mongo"
	"github.com/eventsphere/eventsphere-api/pkg/logger"
)

const bcryptCost = 12

func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required, min 6 chars)")
	username := flag.String("username", "admin", "admin username")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}
	if len(*password) < 6 {
		log.Fatal().Msg("password must be at least 6 characters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if existing, err := users.FindByEmail(ctx, *email); err == nil && existing != nil {
		log.Fatal().Str("email", *email).Msg("an account with this email already exists")
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("email lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	admin, err := users.Create(ctx, &domain.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	log.Info().
		Str("user_id", admin.ID).
		Str("email", admin.Email).
		Msg("admin account created")
}
