package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"invoicing/api"
	"invoicing/config"
	infranotification "invoicing/infrastructure/notification"
	"invoicing/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App the running service: HTTP server plus the optional receipt consumer.
type App struct {
	config   *config.Config
	router   *api.Router
	server   *http.Server
	db       *gorm.DB
	consumer *infranotification.ReceiptConsumer
	closers  []func() error
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.consumer != nil {
		a.consumer.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("base_path", a.config.Server.BasePath))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("server failed: %w", serveErr)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	cancel()
	a.close()

	logger.Info("Server stopped")
	return serveErr
}

func (a *App) close() {
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			logger.Warn("Failed to close receipt consumer", zap.Error(err))
		}
	}

	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			logger.Warn("Failed to close notification driver", zap.Error(err))
		}
	}

	if a.db != nil {
		closeDB(a.db)
	}
}

// GetServer returns the gin engine (for tests)
func (a *App) GetServer() *gin.Engine {
	return a.router.GetEngine()
}
