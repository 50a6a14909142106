package main

import (
	"context"
	"log"
	"os"

	"trackfolio/cmd"
	"trackfolio/internal"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// one-shot csv import: script <portfolioID> <transactions.csv>
func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: script <portfolioID> <transactions.csv>")
	}

	handler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(handler)

	portfolioID, err := uuid.Parse(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(os.Args[2])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	ctx := context.Background()
	inserted, err := handler.ImportService.ImportCSV(ctx, portfolioID, f)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("imported %d transactions", len(inserted))

	positions, integrityErrors, err := handler.PositionService.ComputePositions(ctx, portfolioID)
	if err != nil {
		log.Fatal(err)
	}
	internal.Pprint(positions)
	for _, integrityError := range integrityErrors {
		log.Printf("ledger problem: %s", integrityError.Error())
	}
}
