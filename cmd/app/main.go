package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sqliteadapter "github.com/RomanRosson/Byteful/internal/adapters/db/sqlite"
	httpadapter "github.com/RomanRosson/Byteful/internal/adapters/http"
	rpcadapter "github.com/RomanRosson/Byteful/internal/adapters/rpcjson"
	"github.com/RomanRosson/Byteful/internal/application"
	"github.com/RomanRosson/Byteful/internal/config"
	"github.com/RomanRosson/Byteful/internal/logging"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "byteful",
		Usage: "Personal knowledge base server and CLI",
		Commands: []*cli.Command{
			serveCommand(),
			itemsCommand(),
			typesCommand(),
			loginCommand(),
			logoutCommand(),
			statusCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP and JSON-RPC servers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "HTTP listen address"},
			&cli.StringFlag{Name: "rpc-socket", Usage: "JSON-RPC unix socket path"},
			&cli.StringFlag{Name: "db-path", Usage: "SQLite database path"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				cfg.HTTP.Addr = c.String("addr")
			}
			if c.IsSet("rpc-socket") {
				cfg.RPC.SocketPath = c.String("rpc-socket")
			}
			if c.IsSet("db-path") {
				cfg.DB.Path = c.String("db-path")
			}
			return runServer(ctx, cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log)

	db, err := sqliteadapter.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	if err := sqliteadapter.RunMigrations(ctx, db); err != nil {
		return err
	}

	repo := sqliteadapter.NewRepository(db)
	service := application.NewService(repo)

	created, err := service.BootstrapAdmin(ctx, cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPIN)
	if err != nil {
		return err
	}
	if created {
		logger.Info("default admin created", "username", cfg.Auth.BootstrapUsername)
	}

	router := httpadapter.NewRouter(service, logger)
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	rpcSrv, err := rpcadapter.Start(cfg.RPC.SocketPath, service)
	if err != nil {
		return err
	}
	defer func() {
		_ = rpcSrv.Close()
	}()
	logger.Info("json-rpc listening", "socket", cfg.RPC.SocketPath)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func jsonMarshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
