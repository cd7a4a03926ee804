// Root command for the turboctl CLI.
package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenciaturbo/turbo-ops-go/internal/config"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/supabase"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	// flagEnvFile is set by the --env-file flag.
	flagEnvFile string

	// client is the global Supabase client, initialized on startup.
	client *supabase.Client
)

var rootCmd = &cobra.Command{
	Use:   "turboctl",
	Short: "turboctl administers the Turbo Ops backend",
	Long: `turboctl is the operator CLI for the Turbo Ops backend. It connects
directly to Supabase using the service-role key, bypassing the HTTP API
and its role checks. Use it for break-glass operations like promoting
the first admin.`,
	SilenceUsage:      true,
	PersistentPreRunE: initClient,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "env file to load before reading configuration")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(setRoleCmd)
}

// initClient loads configuration and builds the Supabase client shared
// by all subcommands.
func initClient(cmd *cobra.Command, args []string) error {
	_ = config.LoadDotEnv(flagEnvFile)
	cfg := config.Load()

	if cfg.SupabaseURL == "" {
		return errMissingEnv("SUPABASE_URL")
	}
	if cfg.SupabaseServiceKey == "" {
		return errMissingEnv("SUPABASE_SERVICE_ROLE_KEY")
	}

	buildClient(cfg)
	return nil
}

func buildClient(cfg *config.Config) {
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	client = supabase.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		resilience.NewCircuitBreaker("supabase"),
		resilienceCfg,
		zap.NewNop(),
	)
}

func errMissingEnv(name string) error {
	return fmt.Errorf("%s is not set; export it or put it in the env file", name)
}
