// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
)

type shutdownFn func(context.Context) error

func (fn shutdownFn) Shutdown(ctx context.Context) error {
	return fn(ctx)
}

var (
	errShutdown = errors.New("Always error on shutdown")

	respectsCtx = shutdownFn(func(ctx context.Context) error { return ctx.Err() })
	alwaysFails = shutdownFn(func(context.Context) error { return errShutdown })
)

func TestMaybeGracefulShutdown(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []struct {
		name     string
		ctx      context.Context
		target   interface{}
		expected error
	}{
		{"graceful", context.Background(), respectsCtx, nil},
		{"failing", context.Background(), alwaysFails, errShutdown},
		{"not graceful", context.Background(), map[string]string{}, nil},
		{"graceful cancelled", cancelled, respectsCtx, context.Canceled},
		{"not graceful cancelled", cancelled, map[string]string{}, context.Canceled},
		{"grpc server", context.Background(), GrpcServer{grpc.NewServer()}, nil},
	}

	for _, c := range cases {
		err := MaybeGracefulShutdown(c.ctx, c.target)
		if c.expected == nil {
			assert.NoError(t, err, c.name)
		} else {
			assert.ErrorIs(t, err, c.expected, c.name)
		}
	}
}

func TestGrpcServerIsGraceful(t *testing.T) {
	var server interface{} = GrpcServer{grpc.NewServer()}
	_, ok := server.(GracefulShutdown)
	assert.True(t, ok)

	_, ok = server.(Servable)
	assert.True(t, ok)
}
