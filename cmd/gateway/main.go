// Package main is the entry point of the CenterPlus landing gateway.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/centerplus/centerplus-landing/gateway/internal/adapters/centerplus"
	"github.com/centerplus/centerplus-landing/gateway/internal/authtoken"
	"github.com/centerplus/centerplus-landing/gateway/internal/cache"
	"github.com/centerplus/centerplus-landing/gateway/internal/config"
	"github.com/centerplus/centerplus-landing/gateway/internal/handlers"
	"github.com/centerplus/centerplus-landing/gateway/internal/leads"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("starting CenterPlus landing gateway", "env", cfg.Env, "api_base_url", cfg.API.BaseURL)

	tokens := authtoken.NewStore(cfg.API.TokenFile)

	// A static token from the environment takes precedence; credentials
	// are only used when no token is already stored.
	if cfg.API.Username != "" && cfg.API.Password != "" {
		auth := authtoken.NewAuthenticator(cfg.API.AuthBaseURL, &http.Client{Timeout: 30 * time.Second}, tokens, logg)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if !auth.AutoLogin(ctx, cfg.API.Username, cfg.API.Password) {
			logg.Warn("auto login did not yield a token, continuing unauthenticated")
		}
		cancel()
	}

	client := centerplus.New(&cfg.API, tokens, logg)
	lists := cache.New(cfg.Redis, logg)
	pipeline := leads.NewPipeline(client, logg)
	api := handlers.NewAPI(client, pipeline, lists, logg)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", api.HealthCheck)
	mux.HandleFunc("/api/health", api.HealthCheck)
	mux.HandleFunc("/api/courses", api.ListCourses)
	mux.HandleFunc("/api/branches", api.ListBranches)
	mux.HandleFunc("/api/subjects", api.ListSubjects)
	mux.HandleFunc("/api/leads", api.CreateLead)

	addr := ":" + cfg.Port
	logg.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logg.Fatal("server stopped", "error", err)
	}
}
