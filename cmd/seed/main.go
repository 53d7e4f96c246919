package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lifestream/internal/config"
	"lifestream/internal/db"
	"lifestream/internal/model"
	"lifestream/internal/repository"
)

//go:embed users.json
var usersFixture []byte

// SeedUserData is one user entry of the fixture file.
type SeedUserData struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	BloodGroup string `json:"bloodGroup"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	var fixture []SeedUserData
	if err := json.Unmarshal(usersFixture, &fixture); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}
	log.Printf("Loaded %d users from fixture", len(fixture))

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	seeded, skipped := 0, 0
	for _, item := range fixture {
		existing, err := userRepo.FindByEmail(ctx, item.Email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking user %s: %v", item.Email, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		user := model.User{
			Name:       item.Name,
			Email:      item.Email,
			Role:       model.UserRole(item.Role),
			Status:     model.UserStatus(item.Status),
			BloodGroup: item.BloodGroup,
			District:   item.District,
			Upazila:    item.Upazila,
		}
		if item.Password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Error hashing password for %s: %v", item.Email, err)
			}
			user.PasswordHash = string(hashed)
		}

		if err := userRepo.Create(ctx, &user); err != nil {
			log.Fatalf("Error creating user %s: %v", item.Email, err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", seeded)
	log.Printf("  - Existing users skipped: %d", skipped)
}
