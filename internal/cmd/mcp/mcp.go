// Package mcp parses MCP command flags and serves the hero tools over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/louisbranch/herosheet/internal/mcp/service"
	platformcmd "github.com/louisbranch/herosheet/internal/platform/cmd"
	"github.com/louisbranch/herosheet/internal/random"
	"github.com/louisbranch/herosheet/internal/session"
	"github.com/louisbranch/herosheet/internal/storage"
	"github.com/louisbranch/herosheet/internal/storage/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config holds MCP command configuration.
type Config struct {
	// DBPath is the SQLite hero store. Empty disables persistence.
	DBPath string `env:"MCP_DB_PATH"`
	Locale string `env:"MCP_LOCALE" envDefault:"en-US"`
	// RollSeed replays dice from a fixed seed. Zero draws a random seed.
	RollSeed int64 `env:"MCP_ROLL_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.DBPath, "db", "", "path to the SQLite hero store (empty disables persistence)")
	fs.StringVar(&cfg.Locale, "locale", "", "locale for summaries and error messages")
	fs.Int64Var(&cfg.RollSeed, "seed", 0, "dice seed for deterministic rolls (0 draws a random seed)")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on stdio.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return run(ctx, cfg, &mcp.StdioTransport{}, os.Stderr)
	})
}

func run(ctx context.Context, cfg Config, transport mcp.Transport, logOut io.Writer) error {
	logger := log.New(logOut, log.Prefix(), log.LstdFlags)

	seed := cfg.RollSeed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	logger.Printf("dice seed %d", seed)

	var store storage.HeroStore
	if cfg.DBPath != "" {
		sqliteStore, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open hero store: %w", err)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				logger.Printf("close hero store: %v", err)
			}
		}()
		store = sqliteStore
	}

	server, err := service.New(service.Config{
		Session: session.New(session.Config{Source: random.NewSource(seed)}),
		Store:   store,
		Locale:  cfg.Locale,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	return server.Serve(ctx, transport)
}
