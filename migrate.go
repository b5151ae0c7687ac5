package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farrowscore/api/config"
	"github.com/farrowscore/api/dao"
	"github.com/farrowscore/api/db"
	logger "github.com/farrowscore/api/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the SQL transactions table",
	Long: `Create or update the SQL transactions table.

Uses sql.driver and sql.dsn from the configuration. Examples:
  farrowscore migrate
  SCORE_SQL_DRIVER=postgres SCORE_SQL_DSN=postgres://... farrowscore migrate`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := config.InitConfig(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.GetConfig()

	if err := logger.InitLogger(logger.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level, Console: cfg.Log.Console}); err != nil {
		return err
	}
	defer logger.Sync()

	gdb, err := db.OpenSQL(cfg.SQL)
	if err != nil {
		return err
	}
	defer db.CloseSQL(gdb)

	if err := dao.NewSQLTransactionStore(gdb).Migrate(context.Background()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Migration complete", zap.String("driver", cfg.SQL.Driver))
	fmt.Println("Migration complete")
	return nil
}
