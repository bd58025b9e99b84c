// Command backoffice arranca el servicio HTTP del back-office de ahorros y
// agrupa las utilidades operativas (migraciones, hash del PIN).
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coopandina/ahorro-backoffice/internal/app"
	"github.com/coopandina/ahorro-backoffice/internal/config"
	"github.com/coopandina/ahorro-backoffice/internal/observability/logger"
	"github.com/coopandina/ahorro-backoffice/internal/security/pin"
	migrations "github.com/coopandina/ahorro-backoffice/migrations/postgres"
)

const shutdownGrace = 10 * time.Second

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Back-office de ahorros: API administrativa de ahorradores",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env es opcional; las variables del sistema mandan
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "ruta del YAML de configuración")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(hashPinCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "backoffice"})
			defer logger.Sync()
			log := logger.Named("serve")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      a.Handler,
				ReadTimeout:  cfg.ReadTimeout(),
				WriteTimeout: cfg.WriteTimeout(),
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info("servidor escuchando", logger.Any("addr", cfg.Server.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("apagando servidor")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Aplica las migraciones de postgres embebidas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = strings.ToLower(args[0])
			}
			if action != "up" && action != "down" {
				return fmt.Errorf("acción desconocida %q (up|down)", action)
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %q)", cfg.Storage.Driver)
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("pgxpool: %w", err)
			}
			defer pool.Close()

			return runMigrations(ctx, pool, action)
		},
	}
}

// runMigrations ejecuta los *_up.sql en orden ascendente, o los *_down.sql en
// orden descendente.
func runMigrations(ctx context.Context, pool *pgxpool.Pool, action string) error {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}
	suffix := "_" + action + ".sql"

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if action == "down" {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}
	if len(files) == 0 {
		fmt.Printf("sin migraciones %s\n", action)
		return nil
	}

	for _, name := range files {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("migración %s: %w", name, err)
		}
		fmt.Printf("aplicada %s\n", name)
	}
	return nil
}

func hashPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin <pin>",
		Short: "Genera el hash Argon2id del PIN para admin.pin_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if !pin.ValidFormat(code) {
				return fmt.Errorf("el PIN debe ser exactamente 6 dígitos")
			}
			phc, err := pin.Hash(pin.Default, code)
			if err != nil {
				return err
			}
			fmt.Println(phc)
			return nil
		},
	}
}
