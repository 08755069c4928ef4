// Package api wires the application services into an HTTP handler.
package api

import (
	"github.com/insurehub/insurehub/internal/advisor"
	"github.com/insurehub/insurehub/internal/auth"
	"github.com/insurehub/insurehub/internal/catalog"
	"github.com/insurehub/insurehub/internal/config"
	"github.com/insurehub/insurehub/internal/llm"
	"github.com/insurehub/insurehub/internal/purchase"
	"github.com/insurehub/insurehub/internal/token"
	"github.com/insurehub/insurehub/internal/userstore"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Store     userstore.Store
	Catalog   *catalog.Catalog
	Tokens    *token.Verifier
	Auth      *auth.Service
	Purchases *purchase.Service
	Advisor   *advisor.Service
}

// AppConfig holds configuration for application initialization
type AppConfig struct {
	Config   *config.Config
	Store    userstore.Store
	Catalog  *catalog.Catalog
	Provider llm.Provider
	Events   purchase.EventPublisher // nil when events are disabled
}

// NewApp creates a new application instance with all dependencies wired
func NewApp(cfg AppConfig) *App {
	issuer := token.NewIssuer(cfg.Config.TokenSecret, cfg.Config.TokenTTL)

	return &App{
		Config:    cfg.Config,
		Store:     cfg.Store,
		Catalog:   cfg.Catalog,
		Tokens:    token.NewVerifier(cfg.Config.TokenSecret),
		Auth:      auth.NewService(cfg.Store, issuer),
		Purchases: purchase.NewService(cfg.Store, cfg.Events),
		Advisor:   advisor.NewService(cfg.Store, cfg.Provider, cfg.Config.LLMModel),
	}
}
