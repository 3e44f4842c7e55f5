package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/pesabot/pesabot-backend/config"
	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Bulk-imports customers from an xlsx sheet with columns:
// name | email | phone_number
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	customers, err := readCustomersFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total customers to import: %d\n", len(customers))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := db.GetDB().CreateInBatches(customers, batchSize).Error; err != nil {
		log.Fatal("Failed to bulk create customers:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total customers imported: %d\n", len(customers))
}

func readCustomersFromXLSX(filePath string) ([]model.Customer, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var customers []model.Customer
	seenPhones := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 3 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		email := strings.ToLower(strings.TrimSpace(row[1]))
		phone := normalizePhone(strings.TrimSpace(row[2]))

		if name == "" || phone == "" {
			skippedCount++
			continue
		}
		if !isValidPhone(phone) {
			skippedCount++
			continue
		}

		if seenPhones[phone] {
			skippedCount++
			continue
		}
		seenPhones[phone] = true

		customers = append(customers, model.Customer{
			Name:        name,
			Email:       email,
			PhoneNumber: phone,
		})

		if len(customers)%500 == 0 {
			fmt.Printf("Processed %d customers...\n", len(customers))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid customers: %d\n", len(customers))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return customers, nil
}

// normalizePhone strips spacing and punctuation and keeps a leading plus.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isValidPhone accepts E.164-shaped numbers.
func isValidPhone(phone string) bool {
	reg := regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)
	return reg.MatchString(phone)
}
