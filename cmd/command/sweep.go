package command

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roomescape/internal/config"
	"roomescape/internal/tasks"
)

// SweepCommand один раз удаляет записи ожидания на прошедшие слоты.
type SweepCommand struct {
	Logger *log.Logger
}

func (cmd SweepCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "purge waitings for past schedules",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd SweepCommand) main(cfg *config.Config, ctx context.Context) {
	b, err := openBackend(ctx, cfg.Database)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "sweep : failed to open storage"))
		return
	}
	defer b.Close()

	if _, err := tasks.NewPlanner(b.purger, cmd.Logger, cfg.Database.Timeout).PurgeExpired(ctx); err != nil {
		cmd.Logger.WithContext(ctx).Error(err)
	}
}
