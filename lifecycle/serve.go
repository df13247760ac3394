// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

type (
	// Servable is implemented by components that listen and serve requests. The
	// most notable type implementing this are http.Server and grpc.Server.
	Servable interface {
		Serve(net.Listener) error
	}
)

// ServeWithGracefulShutdown glue a Servable with a proper shutdown routine.
// register signals to trigger a proper shutdown sequence. This function does
// not block and returns immediately a channel where an error will be emitted
// if it failed to serve, or the returned shutdown error (or nil if none).
// The channel is closed once the sequence completes.
func ServeWithGracefulShutdown(ctx context.Context, listen net.Listener, server Servable, shutdownTimeout time.Duration) <-chan error {
	logger := zerolog.Ctx(ctx)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	served := make(chan error, 1)
	go func() {
		served <- server.Serve(listen)
	}()

	shutdownCompleted := make(chan error, 1)
	go func() {
		defer close(shutdownCompleted)
		defer signal.Stop(signals)
		defer logger.Info().Msg("Shutdown sequence completed")

		select {
		case err := <-served:
			if err != nil {
				shutdownCompleted <- fmt.Errorf("Server failed to listen: %w", err)
			}
			return
		case <-ctx.Done():
			logger.Info().Msg("Shutdown triggered by context cancellation")
		case sig := <-signals:
			logger.Info().Str("signal", sig.String()).Msgf("Shutdown triggered by signal: %s", sig)
		}

		// The parent context may already be cancelled, the timeout must not
		// inherit it.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := MaybeGracefulShutdown(shutdownCtx, server); err != nil {
			shutdownCompleted <- fmt.Errorf("Unclean shutdown of server: %w", err)
		}
	}()

	return shutdownCompleted
}

// MetricsPath is where ServeGrpcAndMetrics exposes the prometheus metrics.
const MetricsPath = "/metrics"

// ServeGrpcAndMetrics behaves like ServeWithGracefulShutdown excepts that it
// also serves the metrics of gatherer over HTTP1 on the same Listener, at
// MetricsPath. A nil gatherer means prometheus.DefaultGatherer.
func ServeGrpcAndMetrics(ctx context.Context, l net.Listener, server *grpc.Server, gatherer prometheus.Gatherer, shutdownTimeout time.Duration) <-chan error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		errs <- serveMuxed(ctx, l, GrpcServer{server}, metricsHandler(gatherer), shutdownTimeout)
	}()
	return errs
}

func metricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

// serveMuxed routes HTTP1 connections to handler and everything else to
// server. It returns once server is shut down, or on the first failure.
func serveMuxed(ctx context.Context, l net.Listener, server GrpcServer, handler http.Handler, shutdownTimeout time.Duration) error {
	mux := cmux.New(l)
	httpL := mux.Match(cmux.HTTP1Fast())
	grpcL := mux.Match(cmux.Any())
	defer mux.Close()

	// A failing worker cancels ctx which shuts the grpc server down. Stopping
	// the grpc server closes the root listener, which in turn stops the mux
	// and the http server.
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return unlessClosed("grpc", <-ServeWithGracefulShutdown(ctx, grpcL, server, shutdownTimeout))
	})
	group.Go(func() error {
		return unlessClosed("http", (&http.Server{Handler: handler}).Serve(httpL))
	})
	group.Go(func() error {
		return unlessClosed("mux", mux.Serve())
	})
	return group.Wait()
}

func unlessClosed(what string, err error) error {
	if err == nil || isClosedErr(err) {
		return nil
	}
	return fmt.Errorf("Failed serving %s: %w", what, err)
}

func isClosedErr(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, http.ErrServerClosed) ||
		errors.Is(err, cmux.ErrServerClosed) ||
		errors.Is(err, cmux.ErrListenerClosed)
}
