package main

import (
	"fmt"
	"log"
	"os"

	"campusvoice/backend/internal/complaint"
	"campusvoice/backend/internal/config"
	"campusvoice/backend/internal/models"
	"campusvoice/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// opsSession is the identity CLI commands run under. The CLI talks to the
// same service layer as the API, so it needs the admin capability.
var opsSession = models.Session{
	UserID:   "ops-cli",
	UserName: "Ops CLI",
	Role:     config.RoleAdmin,
}

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	svc := complaint.NewService(storageSvc)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, promote, demote, set-status, stats")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <name> <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin account %s created.\n", os.Args[3])
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <email>")
			os.Exit(1)
		}
		if err := setRole(storageSvc, os.Args[2], config.RoleAdmin); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an admin.\n", os.Args[2])
	case "demote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin demote <email>")
			os.Exit(1)
		}
		if err := setRole(storageSvc, os.Args[2], config.RoleStudent); err != nil {
			log.Fatalf("Error demoting user: %v", err)
		}
		fmt.Printf("User %s is now a student.\n", os.Args[2])
	case "set-status":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-status <tracking_id> <status>")
			os.Exit(1)
		}
		if err := setStatus(svc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error updating status: %v", err)
		}
		fmt.Printf("Complaint %s set to %s.\n", os.Args[2], os.Args[3])
	case "stats":
		stats, err := svc.Stats(opsSession)
		if err != nil {
			log.Fatalf("Error computing stats: %v", err)
		}
		fmt.Printf("Total: %d\nPending: %d\nIn progress: %d\nResolved: %d\nRejected: %d\n",
			stats.Total, stats.Pending, stats.InProgress, stats.Resolved, stats.Rejected)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(s storage.Storage, name, email, password string) error {
	existing, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("email %s already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.CreateUser(&models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         config.RoleAdmin,
	})
}

func setRole(s storage.Storage, email, role string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user with email %s", email)
	}
	user.Role = role
	return s.UpdateUser(user)
}

func setStatus(svc *complaint.Service, trackingID, status string) error {
	c, err := svc.Track(trackingID)
	if err != nil {
		return err
	}
	_, err = svc.UpdateStatus(opsSession, c.ID, status)
	return err
}
