// Package main - marketdesk CLI
//
// Usage:
//
//	go run ./cmd/marketdesk dashboard
//	go run ./cmd/marketdesk quote SPY --class etf
//	go run ./cmd/marketdesk feed --analyst --limit 10
//	go run ./cmd/marketdesk seed --sqlite data/marketdesk.db
package main

import (
	"os"

	"github.com/wonny/marketdesk/cmd/marketdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
