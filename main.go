package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/devtrack/backend/config"
	"github.com/devtrack/backend/database"
	"github.com/devtrack/backend/errs"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:     "devtrack",
		Short:   "Developer, project and technology API",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Load environment variables from .env file
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Error loading %s: %v\n", envFile, err)
			}
			setupLogger(config.New())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// setupLogger configures the global zerolog logger from LOG_LEVEL and
// LOG_FORMAT (json or console).
func setupLogger(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// openDatabase connects using DATABASE_URL and the optional comma separated
// DATABASE_REPLICA_URL.
func openDatabase(c map[string]string) (*gorm.DB, error) {
	dsn := config.GetString(c, "DATABASE_URL", "")
	if dsn == "" {
		return nil, errs.NewEnvironmentVariableError("DATABASE_URL")
	}

	return database.Open(database.Config{
		DSN:          dsn,
		ReplicaDSNs:  config.GetStrings(c, "DATABASE_REPLICA_URL"),
		LogLevel:     config.GetString(c, "DB_LOG_LEVEL", "warn"),
		MaxOpenConns: config.GetInt(c, "DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns: config.GetInt(c, "DB_MAX_IDLE_CONNS", 5),
		ConnMaxLife:  config.GetSeconds(c, "DB_CONN_MAX_LIFETIME_SECONDS", 1800),
	})
}
