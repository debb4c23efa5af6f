package config

import (
	"os"
	"strings"
)

// StrictTransactionImmutability enables fintech-grade guardrails:
// paid transactions cannot be edited; they must be cancelled and recreated.
//
// Set via env:
// - STRICT_TRANSACTION_IMMUTABLE=true
func StrictTransactionImmutability() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_TRANSACTION_IMMUTABLE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// ReportCacheEnabled turns on Redis-backed caching of report responses.
//
// Set via env:
// - ENABLE_REPORT_CACHE=true
func ReportCacheEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ENABLE_REPORT_CACHE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
