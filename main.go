package main

import (
	"context"
	"errors"
	"os"

	"maqola/platform/app"
	"maqola/platform/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		if errors.Is(err, config.ErrNoSecret) {
			config.PrintSecretHint()
			os.Exit(0)
		}

		panic(err)
	}

	if err := app.MakeLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	router, d, err := app.New(cfg)
	if err != nil {
		zap.L().Fatal("Failed to start", zap.Error(err))
	}

	if cfg.DeleteUserEmail != "" {
		if err := d.Accounts.Delete(context.Background(), cfg.DeleteUserEmail); err != nil {
			zap.L().Fatal("Failed to delete user", zap.String("email", cfg.DeleteUserEmail), zap.Error(err))
		}

		zap.L().Info("User deleted", zap.String("email", cfg.DeleteUserEmail))
		return
	}

	zap.L().Info("Server starting", zap.String("addr", cfg.Addr()))

	if cfg.SSLEnabled {
		err = router.RunTLS(cfg.Addr(), cfg.SSLCertificatePath, cfg.SSLCertificateKeyPath)
	} else {
		err = router.Run(cfg.Addr())
	}

	if err != nil {
		zap.L().Fatal("Server stopped", zap.Error(err))
	}
}
