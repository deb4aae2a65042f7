package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ledgercontracts "claimgate/contracts/ledger"

	"claimgate/internal/audit"
	"claimgate/internal/claims/oracle"
	oracleMetrics "claimgate/internal/claims/oracle/metrics"
	"claimgate/internal/claims/store"
	"claimgate/internal/compliance"
	complianceMetrics "claimgate/internal/compliance/metrics"
	"claimgate/internal/ledger"
	"claimgate/internal/platform/config"
	"claimgate/internal/platform/health"
	"claimgate/internal/platform/httpserver"
	"claimgate/internal/platform/logger"
	"claimgate/internal/platform/metrics"
	"claimgate/internal/ratelimit/checker"
	ratelimitConfig "claimgate/internal/ratelimit/config"
	ratelimitMW "claimgate/internal/ratelimit/middleware"
	"claimgate/internal/ratelimit/store/bucket"
	"claimgate/internal/tracer"
	"claimgate/internal/transcript"
	httptransport "claimgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing claimgate relayer",
		"addr", cfg.Addr,
		"chain_rpc", cfg.ChainRPCURL,
		"token_symbol", cfg.TokenSymbol,
		"demo_mode", cfg.DemoMode,
		"wallet_configured", cfg.WalletConfigured(),
		"ledger_contract", ledgercontracts.ContractVersion,
	)

	wallet, err := ledger.NewWallet(cfg.RelayerPrivateKey)
	if err != nil {
		log.Error("invalid relayer key material", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.New()

	claims := store.NewInMemoryStore()
	roles := ledger.NewInMemoryRoles()
	journal := ledger.NewInMemoryJournal()

	// The deployment's own wallet is the bootstrap agent.
	if wallet != nil {
		if err := roles.GrantRole(context.Background(), ledger.AgentRole, wallet.Address()); err != nil {
			log.Error("failed to bootstrap agent role", "error", err)
			os.Exit(1)
		}
	}

	auditStore := audit.NewInMemoryStore()
	auditor := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer auditor.Close()

	otelTracer := tracer.NewOTel()

	complianceSvc := compliance.New(claims,
		compliance.WithLogger(log),
		compliance.WithMetrics(complianceMetrics.New()),
		compliance.WithTracer(otelTracer),
	)

	token := ledger.NewToken(cfg.TokenSymbol, complianceSvc, journal)

	oracleSvc := oracle.New(claims, roles, journal, auditor,
		oracle.WithLogger(log),
		oracle.WithMetrics(oracleMetrics.New()),
		oracle.WithTracer(otelTracer),
		oracle.WithClaimTTL(cfg.ClaimTTL),
	)

	validator := transcript.New(
		transcript.WithLogger(log),
		transcript.WithDemoMode(cfg.DemoMode),
	)

	limiter, err := checker.New(bucket.NewInMemoryBucketStore(),
		checker.WithLogger(log),
		checker.WithConfig(&ratelimitConfig.Config{
			Window:      cfg.RateLimitWindow,
			MaxRequests: cfg.RateLimitMax,
		}),
	)
	if err != nil {
		log.Error("failed to build rate limiter", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(
		validator, oracleSvc, complianceSvc, token, journal, roles, log,
		httptransport.WithWallet(wallet),
		httptransport.WithAuditor(auditor),
		httptransport.WithTracer(otelTracer),
	)

	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		Logger:  log,
		Metrics: appMetrics,
		Health:  health.New(health.ChainConfig{
			RPCConfigured:    cfg.ChainRPCURL != "",
			OracleConfigured: cfg.ClaimOracleAddress != "",
			WalletConfigured: cfg.WalletConfigured(),
		}),
		RateLimit:      ratelimitMW.New(limiter, log, ratelimitMW.WithMetrics(appMetrics)),
		AdminJWTSecret: cfg.AdminJWTSecret,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
