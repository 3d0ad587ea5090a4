package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shramsaathi/marketplace/internal/config"
	"github.com/shramsaathi/marketplace/internal/server"
)

var (
	serveConfigPath      string
	servePort            int
	servePolicy          string
	serveMatchLimit      int
	serveHardTradeFilter bool
	serveWeightsPath     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the match, search, auth and application endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&servePolicy, "policy", "", "Default scoring policy (weighted or percentage)")
	serveCmd.Flags().IntVar(&serveMatchLimit, "limit", 0, "Default top-N for match endpoints")
	serveCmd.Flags().BoolVar(&serveHardTradeFilter, "hard-trade-filter", false, "Drop trade-mismatched candidates before scoring")
	serveCmd.Flags().StringVar(&serveWeightsPath, "weights", "", "Path to a weight table JSON override for the weighted policy")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Config{Port: 8080})

	// CLI flags override config file values when explicitly set
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("policy") {
		cfg.MatchPolicy = servePolicy
	}
	if cmd.Flags().Changed("limit") {
		cfg.MatchLimit = serveMatchLimit
	}
	if cmd.Flags().Changed("hard-trade-filter") {
		cfg.HardTradeFilter = serveHardTradeFilter
	}
	if cmd.Flags().Changed("weights") {
		cfg.WeightTablePath = serveWeightsPath
	}

	// Secrets come from the environment, never from the config file
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	weights, err := loadWeightTable(cfg.WeightTablePath)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		DatabaseURL:     cfg.DatabaseURL,
		MatchPolicy:     cfg.MatchPolicy,
		MatchLimit:      cfg.MatchLimit,
		HardTradeFilter: cfg.HardTradeFilter,
		Weights:         weights,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
