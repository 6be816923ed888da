package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cardvault/internal/domain/binder"
	"cardvault/internal/domain/card"
	"cardvault/internal/domain/user"
	"cardvault/internal/infrastructure/postgres"
	"cardvault/internal/shared/auth"
	"cardvault/internal/shared/config"
)

const usage = `Card Vault Seed CLI - Load demo data into the Card Vault API database

Usage:
  seed [options]

Loads a demo account with a sample card collection and a pre-filled binder.
If the demo account already exists, pass --reset to wipe and reseed it.

Examples:
  # Seed the default demo account (demo / demo123)
  seed

  # Wipe the existing demo account and reseed it
  seed --reset

  # Seed under a different username
  seed --username=showcase --password=showcase123
`

func main() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	username := fs.String("username", "demo", "Username for the demo account")
	password := fs.String("password", "demo123", "Password for the demo account")
	reset := fs.Bool("reset", false, "Delete the existing demo account before seeding")
	timeoutStr := fs.String("timeout", "2m", "Timeout for the operation (e.g., 30s, 5m)")

	fs.Usage = func() {
		fmt.Print(usage)
		fmt.Println("Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Initialize repositories and services
	userRepo := postgres.NewUserRepository(db)
	cardRepo := postgres.NewCardRepository(db)
	binderRepo := postgres.NewBinderRepository(db)
	binderService := binder.NewService(binderRepo, cardRepo)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := seed(ctx, userRepo, cardRepo, binderService, *username, *password, *reset); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func seed(ctx context.Context, userRepo user.Repository, cardRepo card.Repository, binders *binder.Service, username, password string, reset bool) error {
	existing, err := userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if !reset {
			log.Printf("User %q already exists; pass --reset to wipe and reseed", username)
			return nil
		}
		if err := wipeUser(ctx, userRepo, cardRepo, binders, existing); err != nil {
			return fmt.Errorf("failed to wipe existing demo account: %w", err)
		}
		log.Printf("Removed existing demo account %q", username)
	case errors.Is(err, user.ErrUserNotFound):
		// Fresh seed
	default:
		return fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userRepo.Create(ctx, user.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		IsDemo:       true,
	})
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}
	log.Printf("Created demo user %q (%s)", u.Username, u.ID)

	cardIDs := make([]string, 0, len(demoCards))
	for _, params := range demoCards {
		c, err := cardRepo.Create(ctx, u.ID, params)
		if err != nil {
			return fmt.Errorf("failed to create card %q: %w", params.Name, err)
		}
		cardIDs = append(cardIDs, c.ID)
		log.Printf("Created card %q (%s)", c.Name, c.ID)
	}

	b, err := binders.Create(ctx, u.ID, binder.CreateBinderParams{
		Name:    "Favorites",
		Rows:    3,
		Columns: 3,
	})
	if err != nil {
		return fmt.Errorf("failed to create binder: %w", err)
	}

	// Fill the first row and the center slot of the demo binder
	slots := binder.NewSlots(3, 3)
	for i := 0; i < 3 && i < len(cardIDs); i++ {
		slots[0][i] = &cardIDs[i]
	}
	if len(cardIDs) > 3 {
		slots[1][1] = &cardIDs[3]
	}

	if _, err := binders.Update(ctx, u.ID, b.ID, binder.UpdateBinderParams{Slots: slots}); err != nil {
		return fmt.Errorf("failed to fill binder slots: %w", err)
	}
	log.Printf("Created binder %q (%s) with %d cards placed", b.Name, b.ID, len(slots.CardIDs()))

	log.Printf("Seed complete: log in with %s / %s", username, password)
	return nil
}

// wipeUser removes the demo account and everything it owns.
func wipeUser(ctx context.Context, userRepo user.Repository, cardRepo card.Repository, binders *binder.Service, u *user.User) error {
	ownedBinders, err := binders.ListByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, b := range ownedBinders {
		if err := binders.Delete(ctx, u.ID, b.ID); err != nil {
			return err
		}
	}

	ownedCards, err := cardRepo.ListByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	for _, c := range ownedCards {
		if err := cardRepo.Delete(ctx, u.ID, c.ID); err != nil {
			return err
		}
	}

	return userRepo.Delete(ctx, u.ID)
}

var demoCards = []card.CreateCardParams{
	{
		Name:       "Charizard",
		Set:        "Base Set",
		CardNumber: "4/102",
		ImageURL:   "https://images.pokemontcg.io/base1/4_hires.png",
		IsGraded:   true,
		Grading: &card.Grading{
			Company:    "PSA",
			Grade:      9,
			CertNumber: "12345678",
		},
		PurchasePrice:  850,
		EstimatedValue: 1400,
		Notes:          "Holo, strong centering",
		Tags:           []string{"holo", "vintage", "fire"},
	},
	{
		Name:           "Blastoise",
		Set:            "Base Set",
		CardNumber:     "2/102",
		ImageURL:       "https://images.pokemontcg.io/base1/2_hires.png",
		Condition:      "Near Mint",
		PurchasePrice:  320,
		EstimatedValue: 410,
		Tags:           []string{"holo", "vintage", "water"},
	},
	{
		Name:           "Venusaur",
		Set:            "Base Set",
		CardNumber:     "15/102",
		ImageURL:       "https://images.pokemontcg.io/base1/15_hires.png",
		Condition:      "Lightly Played",
		PurchasePrice:  180,
		EstimatedValue: 230,
		Notes:          "Light whitening on back corners",
		Tags:           []string{"holo", "vintage", "grass"},
	},
	{
		Name:       "Pikachu",
		Set:        "Jungle",
		CardNumber: "60/64",
		ImageURL:   "https://images.pokemontcg.io/jungle/60_hires.png",
		IsGraded:   true,
		Grading: &card.Grading{
			Company:    "BGS",
			Grade:      8.5,
			CertNumber: "0011223344",
		},
		PurchasePrice:  45,
		EstimatedValue: 70,
		Tags:           []string{"vintage", "electric"},
	},
	{
		Name:           "Mewtwo ex",
		Set:            "Scarlet & Violet 151",
		CardNumber:     "150/165",
		ImageURL:       "https://images.pokemontcg.io/sv3pt5/150_hires.png",
		Condition:      "Mint",
		PurchasePrice:  12,
		EstimatedValue: 18,
		Quantity:       intPtr(2),
		Tags:           []string{"modern", "psychic"},
	},
}

func intPtr(v int) *int { return &v }
