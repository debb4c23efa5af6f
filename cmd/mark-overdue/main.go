// mark-overdue flips Pending transactions past their due date to Overdue.
// Intended to run as a scheduled job (e.g. Cloud Scheduler + Cloud Run job)
// once per day; the API exposes the same sweep per business on demand.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/mark-overdue
//
// Pass BUSINESS_ID to sweep a single business; otherwise all businesses are swept.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/property_backend/config"
	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/utils"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	var businessIDs []string
	if v := os.Getenv("BUSINESS_ID"); v != "" {
		businessIDs = []string{v}
	} else {
		if err := db.WithContext(ctx).Model(&models.Business{}).Pluck("id", &businessIDs).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to list businesses: %v\n", err)
			os.Exit(1)
		}
	}

	now := time.Now().UTC()
	var total int64
	for _, id := range businessIDs {
		bizCtx := utils.SetBusinessIdInContext(ctx, id)
		bizCtx = utils.SetSkipTenantScopeInContext(bizCtx, true)
		n, err := models.MarkOverdueTransactions(bizCtx, now)
		if err != nil {
			fmt.Fprintf(os.Stderr, "business %s: sweep failed: %v\n", id, err)
			continue
		}
		if n > 0 {
			fmt.Printf("business %s: marked %d transaction(s) overdue\n", id, n)
		}
		total += n
	}
	fmt.Printf("done: %d transaction(s) marked overdue across %d business(es)\n", total, len(businessIDs))
}
