// mixexport dumps the recorded run log from Postgres as CSV on stdout,
// for operators who want the export without the HTTP surface.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	export "MixLab/internal/export"
	run "MixLab/internal/run"
)

func main() {
	_ = godotenv.Load()
	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("DATABASE_URL missing")
	}

	db := run.InitDB()
	defer db.Close()
	store := run.NewPostgresStore(db)

	runs, err := store.List(context.Background())
	if err != nil {
		log.Fatalf("List error: %v", err)
	}
	fmt.Print(export.CSV(runs))
}
