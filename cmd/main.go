package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patentq/internal/api"
	"patentq/internal/auth"
	"patentq/internal/config"
	"patentq/internal/database"
	"patentq/internal/importer"
	"patentq/internal/logger"
	"patentq/internal/mail"
	"patentq/internal/patents"
	"patentq/internal/store"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}

func run(cfg *config.Config, lg *zap.SugaredLogger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, patentStore, closeStore, err := openStores(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, err := newMailer(cfg.SMTP, lg)
	if err != nil {
		return err
	}

	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL, cfg.OTP.ResetTokenTTL)
	authSvc := auth.NewService(users, tokens, mailer, lg.Named("auth"), auth.Options{
		OTPTTL:            cfg.OTP.TTL,
		RequireResetToken: cfg.OTP.RequireResetToken,
	})
	router := api.New(authSvc, patents.NewService(patentStore, lg.Named("patents")), importer.New(patentStore, lg.Named("import")), lg, api.Options{
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		MaxUploadBytes:    cfg.Upload.MaxBytes,
		UploadRequireAuth: cfg.Upload.RequireAuth,
		StaticDir:         cfg.Server.StaticDir,
		AccessLog:         os.Stdout,
	})

	srv := &http.Server{
		Handler:      router.Handler(),
		Addr:         ":" + cfg.App.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Infow("server running", "addr", srv.Addr, "env", cfg.App.Env, "store", cfg.Mongo.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	lg.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	lg.Info("server exited gracefully")
	return nil
}

// openStores picks the store driver. The returned close func is always
// safe to call.
func openStores(ctx context.Context, cfg *config.Config, lg *zap.SugaredLogger) (store.UserStore, store.PatentStore, func(), error) {
	if cfg.Mongo.Driver == config.DriverMemory {
		lg.Warn("using in-memory store; data is lost on exit")
		return store.NewMemoryUserStore(), store.NewMemoryPatentStore(), func() {}, nil
	}

	client, err := database.ConnectMongoDB(ctx, cfg.Mongo.URI, lg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			lg.Errorw("error disconnecting from mongo", "error", err)
		}
	}
	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return store.NewMongoUserStore(db), store.NewMongoPatentStore(db), closeFn, nil
}

func newMailer(c config.SMTPConfig, lg *zap.SugaredLogger) (mail.Sender, error) {
	if !c.Configured() {
		lg.Warn("smtp not configured; reset codes are written to the log")
		return mail.NewLogSender(lg.Named("mail")), nil
	}
	s, err := mail.NewSMTPSender(c.Server, c.User, c.Password, c.From)
	if err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return s, nil
}
