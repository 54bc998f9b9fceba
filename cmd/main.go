package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	grpcctx "github.com/dtroode/identity-server/internal/api/grpc/context"
	"github.com/dtroode/identity-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/identity-server/internal/api/grpc/server"
	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/credential"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/repository/memory"
	"github.com/dtroode/identity-server/internal/repository/postgres"
	"github.com/dtroode/identity-server/internal/server"
	"github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	accounts, refreshTokens, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer closeStores()

	lockout, closeLockout, err := openLockout(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize lockout backend", "error", err)
	}
	defer closeLockout()

	tokenManager, err := token.NewJWT(cfg.TokenConfig())
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	m := metrics.New()
	opts := []service.Option{service.WithMetrics(m)}

	credentials := credential.NewStore(cfg.CredentialConfig(), accounts, lockout, logger)
	tokenService := service.NewTokenService(cfg.SessionConfig(), tokenManager, refreshTokens, accounts, logger, opts...)
	authService := service.NewAuth(cfg.SessionConfig(), accounts, credentials, tokenService, logger, opts...)
	accountService := service.NewAccount(accounts, credentials, tokenService, logger, opts...)
	if err := accountService.GrantAdmin(ctx, cfg.Session.AdminEmails); err != nil {
		logger.Fatal("failed to grant admin roles", "error", err)
	}

	r := router.New(authService, tokenService, accountService, grpcctx.NewManager(), logger)
	grpcSrv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	type listening struct {
		srv model.Server
		sl  model.SecurityLayer
	}
	servers := []listening{{srv: grpcSrv, sl: sl}}
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		servers = append(servers, listening{srv: server.NewHTTPServer(mux, cfg.Metrics.Addr), sl: server.NewPlainListener()})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.srv.Address())
			if err := s.srv.Start(s.sl); err != nil {
				return fmt.Errorf("server %s: %w", s.srv.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received interruption signal, shutting down")
		r.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.srv.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	logAppVersion()

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.AccountStore, model.RefreshTokenStore, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		logger.Warn("using in-memory storage, accounts and sessions are lost on restart")
		return memory.NewAccountRepository(), memory.NewRefreshTokenRepository(), func() {}, nil
	}

	conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err)
		}
	}
	return postgres.NewAccountRepository(conn.DB), postgres.NewRefreshTokenRepository(conn.DB), closeFn, nil
}

func openLockout(ctx context.Context, cfg *config.Config, logger *logger.Logger) (credential.Lockout, func(), error) {
	lockoutCfg := cfg.CredentialConfig().Lockout
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR is empty, failed login counters are kept per process")
		return credential.NewMemoryLockout(lockoutCfg, nil), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}
	return credential.NewRedisLockout(client, lockoutCfg), closeFn, nil
}
