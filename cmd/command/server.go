package command

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roomescape/internal/auth"
	"roomescape/internal/catalog"
	"roomescape/internal/config"
	"roomescape/internal/handlers"
	"roomescape/internal/queue"
	"roomescape/internal/storage"
	"roomescape/internal/tasks"
)

type Server struct {
	Logger *logrus.Logger
}

func (cmd Server) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "run waiting list server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd Server) main(cfg *config.Config, ctx context.Context) {
	b, err := openBackend(ctx, cfg.Database)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to open storage"))
		return
	}
	defer func() {
		if err := b.Close(); err != nil {
			cmd.Logger.WithContext(ctx).Error(errors.Wrap(err, "server : failed to close storage"))
		}
	}()

	slots := b.slots
	if cfg.Redis.CacheEnabled() {
		redisClient, err := storage.NewRedisClient(ctx, cfg.Redis, cmd.Logger)
		if err != nil {
			cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to connect to redis"))
			return
		}
		defer func() {
			if err = redisClient.Close(); err != nil {
				cmd.Logger.WithContext(ctx).Error(errors.Wrap(err, "server : failed to close redis"))
			}
		}()
		slots = catalog.NewCachedSlots(b.slots, redisClient, cfg.Redis.SlotTTL, cmd.Logger)
	}

	manager := queue.NewManager(b.store, b.members, slots,
		queue.WithRejectDuplicates(cfg.Waiting.RejectDuplicates),
		queue.WithTimeout(cfg.Database.Timeout),
		queue.WithLogger(cmd.Logger),
	)

	planner := tasks.NewPlanner(b.purger, cmd.Logger, cfg.Database.Timeout)
	scheduler, err := planner.Start(ctx, cfg.Waiting.SweepCron)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to start planner"))
		return
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	waitingHandler := handlers.NewWaitingHandler(manager)
	authMiddleware := auth.Middleware(cfg.Auth.AccessSecret)

	server := handlers.NewServer(cfg.AppEnv, cmd.Logger, func() *gin.Engine {
		return handlers.NewRouter(waitingHandler, authMiddleware, cmd.Logger)
	})

	if err := server.Serve(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
		cmd.Logger.Fatal(err)
	}
}
