// Command cardctl maintains the card database: schema migrations, bulk card
// imports and region recomputation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/heart0018/OriginalProduct/internal/logging"
)

const usage = `usage: cardctl <command> [flags]

commands:
  migrate [up|down|version]   apply or roll back the schema
  import  -file cards.json    load cards and their reviews
  regions [-dry-run]          recompute card regions from addresses
`

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger, err := logging.New(level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Errorw("cardctl failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.SugaredLogger, cmd string, args []string) error {
	switch cmd {
	case "migrate":
		return migrateCmd(logger, args)
	case "import":
		return importCmd(ctx, logger, args)
	case "regions":
		return regionsCmd(ctx, logger, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}
