package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roomescape/cmd/command"
	"roomescape/internal/config"
)

// @Title						Лист ожидания на слоты квест-комнат
// @Version					1.0
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New()
	logger.SetOutput(os.Stdout)

	root := newRootCommand(ctx, logger)
	if err := root.Execute(); err != nil {
		logger.WithContext(ctx).Fatalf("failed to execute root command: \n%v", err)
	}
}

func newRootCommand(ctx context.Context, logger *log.Logger) *cobra.Command {
	// заполняется перед запуском подкоманды, чтобы --help работал без окружения
	cfg := &config.Config{}

	const description = "Room escape waiting list"
	root := &cobra.Command{
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			*cfg = *loaded

			logger.SetLevel(cfg.LogLevel)
			if cfg.AppEnv == config.ProductionEnv {
				logger.SetFormatter(&log.JSONFormatter{})
			}
			return nil
		},
	}

	root.AddCommand(
		command.Server{Logger: logger}.Command(ctx, cfg),
		command.MigrateCommand{Logger: logger}.Command(ctx, cfg),
		command.SweepCommand{Logger: logger}.Command(ctx, cfg),
	)
	return root
}
