package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/rachaconta/backend/internal/api"
	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/service"
	"github.com/rachaconta/backend/internal/settlement"
	"github.com/rachaconta/backend/internal/storage/sqlite"
	"github.com/rachaconta/backend/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/racha.db")
	port := getEnv("PORT", "8080")
	corsOrigins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080"), ",")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	collector := metrics.NewCollector("rachaconta")

	groups := service.NewGroupService(store)
	expenses := service.NewExpenseService(store, collector)
	debts := service.NewDebtService(store, collector)

	handler := api.NewHandler(groups, expenses, debts, settlement.NewFormatter(settlement.BRL))
	router := api.NewRouter(handler, collector, corsOrigins)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
