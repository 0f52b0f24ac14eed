package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	adapthttp "github.com/Krieglerlawoko/alx-backend-user-data/internal/adapter/http"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/adapter/memory"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/adapter/postgres"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/app"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/domain"
	"github.com/Krieglerlawoko/alx-backend-user-data/internal/logutil"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(logutil.NewRedactingWriter(os.Stderr))

	cliApp := &cli.App{
		Name:  "authapi",
		Usage: "User authentication API with pluggable auth strategies",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", EnvVars: []string{"ADDR"}},
			&cli.StringFlag{
				Name:    "auth-type",
				Value:   app.StrategySession,
				Usage:   "none | basic | session | session_exp | session_db (empty disables the gate)",
				EnvVars: []string{"AUTH_TYPE"},
			},
			&cli.StringFlag{Name: "session-name", Value: "_my_session_id", EnvVars: []string{"SESSION_NAME"}},
			&cli.StringFlag{
				Name:    "session-duration",
				Value:   "0",
				Usage:   "session lifetime in seconds; 0 or junk means never expire",
				EnvVars: []string{"SESSION_DURATION"},
			},
			&cli.StringFlag{Name: "database-url", EnvVars: []string{"DATABASE_URL"}},
			&cli.StringFlag{Name: "oidc-issuer", EnvVars: []string{"OIDC_ISSUER"}},
			&cli.StringFlag{Name: "oidc-client-id", EnvVars: []string{"OIDC_CLIENT_ID"}},
			&cli.StringFlag{Name: "oidc-client-secret", EnvVars: []string{"OIDC_CLIENT_SECRET"}},
			&cli.StringFlag{Name: "oidc-redirect-url", EnvVars: []string{"OIDC_REDIRECT_URL"}},
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

func run(c *cli.Context) error {
	var (
		users    domain.UserRepository
		sessions domain.SessionRepository
	)
	if connStr := c.String("database-url"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		users = db
		sessions = postgres.NewSessionRepo(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory storage")
		users = memory.New()
		sessions = memory.NewSessionRepo()
	}

	cookieName := c.String("session-name")
	var strategy app.Authenticator
	if authType := c.String("auth-type"); authType != "" {
		var err error
		strategy, err = app.NewAuthenticator(app.StrategyConfig{
			Type:            authType,
			CookieName:      cookieName,
			SessionDuration: sessionDuration(c.String("session-duration")),
		}, users, sessions)
		if err != nil {
			return err
		}
	}

	var oidcCfg *adapthttp.OIDCConfig
	if issuer := c.String("oidc-issuer"); issuer != "" {
		var err error
		oidcCfg, err = adapthttp.NewOIDC(c.Context, issuer,
			c.String("oidc-client-id"), c.String("oidc-client-secret"), c.String("oidc-redirect-url"))
		if err != nil {
			return err
		}
	}

	authSvc := app.NewAuthService(users)
	handler := adapthttp.New(authSvc, strategy, cookieName, oidcCfg).Handler()
	return serve(c.Context, c.String("addr"), handler)
}

// sessionDuration mirrors the lenient env parsing of the expiring strategy:
// anything that is not a positive integer means sessions never expire.
func sessionDuration(raw string) time.Duration {
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := http.Server{
		Handler:           handler,
		Addr:              addr,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Minute,
		IdleTimeout:       5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("server.addr", addr).Msg("Starting HTTP server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Initiating shutdown process")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		log.Info().Msg("Shutdown completed")
		return nil
	}
}
