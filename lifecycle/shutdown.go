// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package lifecycle

import (
	"context"

	"google.golang.org/grpc"
)

type (
	// GracefulShutdown is implemented by components that need to be gracefully
	// terminated, e.g. flushing buffered sizes to their output or draining
	// in-flight requests. Shutdown must respect the context deadline, callers
	// such as ServeWithGracefulShutdown bound it with a timeout.
	GracefulShutdown interface {
		// Shutdown context should be respected.
		Shutdown(context.Context) error
	}

	// GrpcServer adds GracefulShutdown to a grpc.Server.
	GrpcServer struct {
		*grpc.Server
	}
)

// MaybeGracefulShutdown takes an object and invokes Shutdown if the object
// implements GracefulShutdown. Otherwise it only reports ctx.Err().
func MaybeGracefulShutdown(ctx context.Context, i interface{}) error {
	if s, ok := i.(GracefulShutdown); ok {
		return s.Shutdown(ctx)
	}

	return ctx.Err()
}

// Shutdown waits for pending RPCs with GracefulStop. When ctx expires first,
// the remaining connections are closed with Stop and ctx.Err() is returned.
func (s GrpcServer) Shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.Stop()
		<-stopped
		return ctx.Err()
	}
}
