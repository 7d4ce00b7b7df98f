package main

import (
	"context"
	"log"
	"os"
	"strings"

	"inkbook/internal/app"
	"inkbook/internal/config"
	"inkbook/internal/mirror"
	"inkbook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("store connect failed: %v", err)
	}
	defer stores.Close()

	sync := mirror.NewSynchronizer(repository.NewAccountRepository(stores.DB), stores.Secondary)
	report, err := sync.Reconcile(ctx)
	if err != nil {
		log.Fatalf("reconcile failed: %v", err)
	}

	log.Printf("reconcile completed: scanned=%d succeeded=%d unchanged=%d failed=%d pruned=%d",
		report.Scanned, report.Succeeded, report.Unchanged, report.Failed, report.Pruned)
	if report.Failed > 0 {
		log.Printf("reconcile errors: %s", strings.Join(report.Errors, "; "))
		os.Exit(1)
	}
}
