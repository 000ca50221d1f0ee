package main

import (
	"context"
	"flag"
	"log"

	"github.com/dishcovery/dishcovery/cmd/config"
	migration "github.com/dishcovery/dishcovery/cmd/database/migrate"
	"github.com/dishcovery/dishcovery/cmd/database/seed"
	"github.com/dishcovery/dishcovery/internal/utils"
)

func main() {
	runSeed := flag.Bool("seed", false, "seed the catalog with a starter provider query")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if *runSeed {
		if err := seed.Seed(context.Background(), db); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to setup app: %v", err)
	}

	if err := app.Listen(*addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
