package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"civicgo/backend/internal/config"
	"civicgo/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

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

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: promote-admin, resolve, seed-categories, stats")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote-admin":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote-admin <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := storageSvc.UpdateUserRole(userID, config.RoleAdmin); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an admin.\n", userID)
	case "resolve":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin resolve <complaint_id> [notes...]")
			os.Exit(1)
		}
		complaintID := os.Args[2]
		notes := strings.Join(os.Args[3:], " ")
		if err := resolveComplaint(storageSvc, complaintID, notes); err != nil {
			log.Fatalf("Error resolving complaint: %v", err)
		}
		fmt.Printf("Complaint %s has been resolved.\n", complaintID)
	case "seed-categories":
		if err := storageSvc.SeedDefaultCategories(); err != nil {
			log.Fatalf("Error seeding categories: %v", err)
		}
		fmt.Println("Categories seeded.")
	case "stats":
		if err := printStats(storageSvc); err != nil {
			log.Fatalf("Error computing stats: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func resolveComplaint(s *storage.Service, complaintID, notes string) error {
	existing, err := s.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("complaint %s not found", complaintID)
	}

	fields := map[string]interface{}{
		"status":     config.StatusResolved,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if notes != "" {
		fields["resolution_notes"] = notes
	}
	return s.UpdateComplaintFields(complaintID, fields)
}

func printStats(s *storage.Service) error {
	total, err := s.CountComplaints("")
	if err != nil {
		return err
	}
	pending, err := s.CountComplaints(config.StatusPending)
	if err != nil {
		return err
	}
	inProgress, err := s.CountComplaints(config.StatusInProgress)
	if err != nil {
		return err
	}
	resolved, err := s.CountComplaints(config.StatusResolved)
	if err != nil {
		return err
	}

	fmt.Printf("Total: %d\nPending: %d\nIn progress: %d\nResolved: %d\n",
		total, pending, inProgress, resolved)

	breakdown, err := s.CategoryBreakdown()
	if err != nil {
		return err
	}
	fmt.Println("By category:")
	for _, row := range breakdown {
		fmt.Printf("  %s: %d\n", row.Category, row.Count)
	}
	return nil
}
