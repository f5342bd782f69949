package command

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roomescape/internal/config"
	"roomescape/internal/storage"
)

type MigrateCommand struct {
	Logger *log.Logger
}

func (cmd MigrateCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	var source string
	c := &cobra.Command{
		Use:       "migrate [up|down|auto]",
		Short:     "run migration",
		ValidArgs: []string{"up", "down", "auto"},
		Run: func(_ *cobra.Command, args []string) {
			cmd.main(cfg, ctx, source, args)
		},
	}
	c.Flags().StringVar(&source, "source", storage.DefaultMigrationsDir, "golang-migrate source url")
	return c
}

func (cmd MigrateCommand) main(cfg *config.Config, ctx context.Context, source string, args []string) {
	if len(args) == 0 {
		cmd.Logger.WithContext(ctx).Fatal("please specify migration command")
		return
	}
	if cfg.Database.Driver == config.MemoryDriver {
		cmd.Logger.WithContext(ctx).Fatal("migrate : memory driver has nothing to migrate")
		return
	}

	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "migrate : failed to connect to database"))
		return
	}
	migrator := storage.NewMigrator(db, source)

	migrationCommand := args[0]
	switch migrationCommand {
	case "up", "down":
		if cfg.Database.Driver != config.PostgresDriver {
			cmd.Logger.WithContext(ctx).Fatal(errors.Errorf("migration command : %s needs postgres, use auto for %s", migrationCommand, cfg.Database.Driver))
			return
		}
		if migrationCommand == "up" {
			err = migrator.Up(cfg.Database.Postgres.Database)
		} else {
			err = migrator.Down(cfg.Database.Postgres.Database)
		}
	case "auto":
		err = migrator.Auto()
	default:
		err = errors.Errorf("migration command : %s is not supported", migrationCommand)
	}
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(err)
		return
	}
	cmd.Logger.WithContext(ctx).Infof("migration %s finished", migrationCommand)
}
