package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/heart0018/OriginalProduct/internal/db"
)

func migrateCmd(logger *zap.SugaredLogger, args []string) error {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	addr := os.Getenv("DB_ADDR")
	if addr == "" {
		return errors.New("DB_ADDR is not set")
	}

	m, err := db.NewMigrator(addr)
	if err != nil {
		return err
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	logger.Infow("schema version", "version", version, "dirty", dirty, "ran", direction)
	return nil
}
