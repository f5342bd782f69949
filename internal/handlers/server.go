package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"roomescape/internal/config"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	engine *gin.Engine
	logger *logrus.Logger
}

func NewServer(appEnv config.AppEnv, logger *logrus.Logger, build func() *gin.Engine) *Server {
	if appEnv == config.ProductionEnv {
		gin.SetMode(gin.ReleaseMode)
	}
	return &Server{engine: build(), logger: logger}
}

// Serve слушает address до отмены ctx, затем корректно завершает соединения.
func (s *Server) Serve(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Infof("rest server starting at: %s", address)
	srvError := make(chan error, 1)
	go func() {
		srvError <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("rest server is shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-srvError:
		return err
	}
}
