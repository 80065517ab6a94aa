package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"refashion/internal/app"
	"refashion/internal/auth"
	"refashion/internal/clients/growloop"
	"refashion/internal/clients/restapi"
	"refashion/internal/config"
	"refashion/internal/events"
	"refashion/internal/listings"
	"refashion/internal/server"
	"refashion/internal/storage"
	"refashion/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "refashion: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "refashion",
		Short:         "Refashion session service",
		Long:          "Serves the bag, rewards and marketplace state of one refashion client over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("config", "", "path to a YAML config file")

	cmd.AddCommand(newServeCmd(), newSetUIDCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// newSetUIDCmd overrides the Firebase UID sent to the secondary backend
func newSetUIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-uid <uid>",
		Short: "Store the mock Firebase UID used for secondary backend calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, _, closeFn, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := growloop.SetMockFirebaseUID(cmd.Context(), store, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "firebase uid set to %s\n", args[0])
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	utils.ConfigureLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	return cfg, nil
}

// openStore returns the Redis backed store and bus when configured, the in-memory pair otherwise
func openStore(ctx context.Context, cfg config.Config) (storage.KVStore, events.Bus, func(), error) {
	if !cfg.UsesRedis() {
		utils.Warn("REDIS_ADDR not set, state will not survive a restart", nil)
		return storage.NewMemoryStore(), events.NewMemoryBus(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis (%s): %w", cfg.RedisAddr, err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			utils.Warn("closing redis client failed", map[string]any{"error": err.Error()})
		}
	}
	return storage.NewRedisStore(client, cfg.StorePrefix), events.NewRedisBus(client, cfg.StorePrefix), closeFn, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, bus, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// the REST client reports 401s to the session built below
	var session *app.Session
	rest := restapi.New(cfg.RestAPIURL,
		restapi.WithTimeout(cfg.HTTPTimeout),
		restapi.WithTokenSource(restapi.StoreTokenSource(store)),
		restapi.WithUnauthorizedHandler(func(ctx context.Context) {
			if session != nil {
				session.HandleUnauthorized(ctx)
			}
		}),
	)
	grow := growloop.New(cfg.GrowLoopAPIURL,
		growloop.WithTimeout(cfg.HTTPTimeout),
		growloop.WithUIDSource(growloop.StoreUIDSource(store)),
	)

	deps := app.Deps{
		Store:     store,
		Bus:       bus,
		Catalog:   rest,
		Backend:   rest,
		Registrar: grow,
		Minter:    auth.NewTokenMinter(cfg.DemoTokenSecret),
		BagSync:   growloop.NewBagSync(grow),
		Detector:  rest,
		Profiles:  rest,
		Recyclers: grow,
	}

	if cfg.UsesPostgres() {
		db, err := listings.OpenPostgres(cfg.ListingsDSN)
		if err != nil {
			return err
		}
		repo := listings.NewGormRepository(db)
		defer repo.Close()
		if err := repo.Migrate(ctx); err != nil {
			return err
		}
		deps.Listings = repo
	}

	session = app.NewSession(deps)
	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer session.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.SetupRouter(session),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("server is listening", map[string]any{"addr": srv.Addr, "session_id": session.ID()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("could not listen: %w", err)
		}
		return nil
	case <-quit:
	}
	utils.Info("server is shutting down", nil)

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	utils.Info("server stopped", nil)
	return nil
}
