// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	metrics "github.com/grpc-ecosystem/go-grpc-middleware/providers/openmetrics/v2"
	grpczerolog "github.com/grpc-ecosystem/go-grpc-middleware/providers/zerolog/v2"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Options tune NewGRPCService.
type Options struct {
	// AuthFunc authenticates every call. No authentication when nil.
	AuthFunc auth.AuthFunc
	// Registerer receives the gRPC and service metrics. Defaults to
	// prometheus.DefaultRegisterer which also carries the go runtime and
	// process metrics.
	Registerer prometheus.Registerer
}

// NewGRPCService creates a grpc service with various defaults middlewares.
// Notably, the logging and metrics are automatically registered for sane
// defaults of observability. Handlers find the logger of ctx with
// zerolog.Ctx.
func NewGRPCService(ctx context.Context, service interface{}, opts Options, descriptors []*grpc.ServiceDesc) (*grpc.Server, error) {
	if len(descriptors) == 0 {
		return nil, errors.New("Missing descriptors")
	}

	registry := opts.Registerer
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	m := metrics.NewRegisteredServerMetrics(registry, metrics.WithServerHandlingTimeHistogram())
	if collector, ok := service.(prometheus.Collector); ok {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("Failed registering metrics: %w", err)
		}
	}

	logger := zerolog.Ctx(ctx)

	streams := []grpc.StreamServerInterceptor{
		loggerStreamInterceptor(logger),
		logging.StreamServerInterceptor(grpczerolog.InterceptorLogger(*logger)),
		metrics.StreamServerInterceptor(m),
		recovery.StreamServerInterceptor(),
	}
	unaries := []grpc.UnaryServerInterceptor{
		loggerUnaryInterceptor(logger),
		logging.UnaryServerInterceptor(grpczerolog.InterceptorLogger(*logger)),
		metrics.UnaryServerInterceptor(m),
		recovery.UnaryServerInterceptor(),
	}
	if opts.AuthFunc != nil {
		streams = append(streams, auth.StreamServerInterceptor(opts.AuthFunc))
		unaries = append(unaries, auth.UnaryServerInterceptor(opts.AuthFunc))
	}

	server := grpc.NewServer(
		grpc.ChainStreamInterceptor(streams...),
		grpc.ChainUnaryInterceptor(unaries...),
	)

	for _, desc := range descriptors {
		logger.Info().Msgf("Registering grpc service: %s", desc.ServiceName)
		server.RegisterService(desc, service)
	}

	// Ensure that all metrics for all endpoints are default to NULL instead of
	// being lazily added to the metrics the first time an endpoint is hit.
	//
	// This must be called once all gRPC services are registered.
	m.InitializeMetrics(server)

	return server, nil
}

func WithDescriptors(descs ...*grpc.ServiceDesc) []*grpc.ServiceDesc {
	return descs
}

// TokenAuth accepts calls carrying "authorization: bearer <token>".
func TokenAuth(token string) auth.AuthFunc {
	return func(ctx context.Context) (context.Context, error) {
		got, err := auth.AuthFromMD(ctx, "bearer")
		if err != nil {
			return nil, err
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return ctx, nil
	}
}

func loggerUnaryInterceptor(logger *zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		return handler(logger.WithContext(ctx), req)
	}
}

type loggerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *loggerStream) Context() context.Context {
	return s.ctx
}

func loggerStreamInterceptor(logger *zerolog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, stream grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &loggerStream{stream, logger.WithContext(stream.Context())})
	}
}
