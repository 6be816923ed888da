package main

import (
	"log"

	"cardvault/internal/domain/binder"
	"cardvault/internal/infrastructure/postgres"
	httphandlers "cardvault/internal/interfaces/http"
	"cardvault/internal/shared/auth"
	"cardvault/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler   *httphandlers.AuthHandler
	CardHandler   *httphandlers.CardHandler
	BinderHandler *httphandlers.BinderHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies. The store client
// is constructed here and handed down explicitly; nothing reads it from
// ambient state.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	cardRepo := postgres.NewCardRepository(db)
	binderRepo := postgres.NewBinderRepository(db)

	// Domain services
	binderService := binder.NewService(binderRepo, cardRepo)

	// Auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	cardHandler := httphandlers.NewCardHandler(cardRepo)
	binderHandler := httphandlers.NewBinderHandler(binderService)

	return &Dependencies{
		DB:            db,
		AuthHandler:   authHandler,
		CardHandler:   cardHandler,
		BinderHandler: binderHandler,
		JWT:           jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
