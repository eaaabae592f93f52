package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/rpg-sheet-store/internal/config"
	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	sheetv1 "github.com/KirkDiggler/rpg-sheet-store/internal/handlers/sheet/v1"
	"github.com/KirkDiggler/rpg-sheet-store/internal/services/character"
	"github.com/KirkDiggler/rpg-sheet-store/internal/watcher"
)

const shutdownTimeout = 30 * time.Second

func newServerCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the store over gRPC",
		Long: `Start the sheet.v1.CharacterStore gRPC service so other local processes
can read and write characters. With the file backend, changes made by other
processes are logged as they happen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.cfg.GRPCPort
			}
			return runServer(cmd.Context(), opts, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 50051, "gRPC server port (default from SHEET_GRPC_PORT)")
	return cmd
}

func runServer(ctx context.Context, opts *rootOptions, port int) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := opts.service()
	if err != nil {
		return err
	}

	srv, healthServer, err := newGRPCServer(svc)
	if err != nil {
		return err
	}

	var w *watcher.Watcher
	if opts.cfg.Backend == config.BackendFile {
		dir, err := opts.storageDir()
		if err != nil {
			return err
		}
		if w, err = watcher.New(&watcher.Config{Dir: dir}); err != nil {
			return err
		}
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen")
	}

	g, gctx := errgroup.WithContext(ctx)

	if w != nil {
		if err := w.Start(gctx); err != nil {
			_ = lis.Close() // nolint:errcheck // not serving yet
			return err
		}
		defer w.Stop()

		g.Go(func() error {
			for change := range w.Changes() {
				slog.InfoContext(gctx, "character changed on disk",
					"op", string(change.Op),
					"character_id", change.ID,
					"path", change.Path)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.InfoContext(gctx, "gRPC server starting", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down gRPC server")
		healthServer.Shutdown()
		gracefulStop(srv)
		return nil
	})

	return g.Wait()
}

// newGRPCServer builds a server with the store, health, and reflection
// services registered.
func newGRPCServer(svc character.Service) (*grpc.Server, *health.Server, error) {
	handler, err := sheetv1.NewHandler(&sheetv1.HandlerConfig{CharacterService: svc})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create character store handler")
	}

	logger := interceptorLogger(slog.Default())
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(grpc_recovery.WithRecoveryHandler(recoverPanic)),
		),
	)

	sheetv1.RegisterCharacterStoreServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(sheetv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv, healthServer, nil
}

func gracefulStop(srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-time.After(shutdownTimeout):
		slog.Warn("graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("server stopped gracefully")
	}
}

// interceptorLogger adapts slog to the middleware logger; the level values
// line up with slog's.
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(p any) error {
	slog.Error("panic in gRPC handler", "panic", p)
	return errors.ToGRPCError(errors.Internalf("panic: %v", p))
}
