// Command import loads phone records from a CSV file into the catalog.
//
// Usage:
//
//	import [--clear] <csv-file>
//
// The file must carry a header row with at least the columns name,
// price, image, release_date and lte_exists; extra columns are
// ignored. Rows that fail validation are skipped with a warning and
// never abort the run. With --clear all existing records are deleted
// before the first row is read.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	businessflow "github.com/telshop/phone-catalog/business_flow"
	"github.com/telshop/phone-catalog/config"
	"github.com/telshop/phone-catalog/models"
	"github.com/telshop/phone-catalog/repository"
)

func main() {
	clear := flag.Bool("clear", false, "clear all existing phone data before importing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [--clear] <csv-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	// Warnings carry row numbers; keep them unadorned so they read as a report
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flow := businessflow.NewImportFlow(repository.NewPhoneRepository(db))

	summary, err := flow.ImportFile(context.Background(), csvPath, *clear)
	if err != nil {
		switch {
		case businessflow.IsSourceUnavailable(err):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		case businessflow.IsSchemaMismatch(err):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "An unexpected error occurred: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("--- Import Summary ---")
	fmt.Printf("Successfully created: %d phones\n", summary.Created)
	fmt.Printf("Successfully updated: %d phones\n", summary.Updated)
	if summary.Skipped > 0 {
		fmt.Printf("Skipped rows due to errors: %d\n", summary.Skipped)
	}
	fmt.Println("--- Import completed ---")
}

func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Phone{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
