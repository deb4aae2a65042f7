package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures relayer-level configuration sourced from the environment.
// Signing key material has no default: chain-writing operations degrade to an
// explicit wallet_not_configured error when it is absent.
type Server struct {
	Addr string

	// Chain collaborator settings.
	ChainRPCURL        string
	RelayerPrivateKey  string
	ClaimOracleAddress string
	TokenSymbol        string

	// ClaimTTL is the lifetime recorded on every accepted claim. It is an
	// oracle-level policy input, not a gateway constant.
	ClaimTTL time.Duration

	// Rate limiting for the submission gateway.
	RateLimitWindow time.Duration
	RateLimitMax    int

	// DemoMode relaxes the missing-field transcript policy. A transcript
	// whose received bytes lack the expected field is still rejected when
	// DemoMode is false.
	DemoMode bool

	AdminJWTSecret string
}

const (
	defaultAddr        = ":3001"
	defaultRPCURL      = "https://rpc.sepolia.mantle.xyz"
	defaultTokenSymbol = "mUSDY"
	defaultClaimTTL    = 30 * 24 * time.Hour
	defaultRateWindow  = 60 * time.Second
	defaultRateMax     = 10
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:               envOr("CLAIMGATE_ADDR", defaultAddr),
		ChainRPCURL:        envOr("CHAIN_RPC_URL", defaultRPCURL),
		RelayerPrivateKey:  os.Getenv("RELAYER_PRIVATE_KEY"),
		ClaimOracleAddress: os.Getenv("CLAIM_ORACLE_ADDRESS"),
		TokenSymbol:        envOr("TOKEN_SYMBOL", defaultTokenSymbol),
		ClaimTTL:           defaultClaimTTL,
		RateLimitWindow:    defaultRateWindow,
		RateLimitMax:       defaultRateMax,
		DemoMode:           os.Getenv("DEMO_MODE") == "true",
	}

	if ttl := os.Getenv("CLAIM_TTL"); ttl != "" {
		if duration, err := time.ParseDuration(ttl); err == nil && duration > 0 {
			cfg.ClaimTTL = duration
		}
	}
	if window := os.Getenv("RATE_LIMIT_WINDOW"); window != "" {
		if duration, err := time.ParseDuration(window); err == nil && duration > 0 {
			cfg.RateLimitWindow = duration
		}
	}
	if maxStr := os.Getenv("RATE_LIMIT_MAX"); maxStr != "" {
		if n, err := strconv.Atoi(maxStr); err == nil && n > 0 {
			cfg.RateLimitMax = n
		}
	}

	cfg.AdminJWTSecret = os.Getenv("ADMIN_JWT_SECRET")
	if cfg.AdminJWTSecret == "" {
		// Use a default for development - should be overridden in production
		cfg.AdminJWTSecret = "dev-secret-key-change-in-production"
	}

	return cfg
}

// WalletConfigured reports whether signing key material is present.
func (s Server) WalletConfigured() bool {
	return s.RelayerPrivateKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
