// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package main

import (
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/optable/bytesize/lifecycle"
	"github.com/optable/bytesize/service"
)

type ServeCmd struct {
	Listen          string        `help:"Address serving gRPC and /metrics." default:":8080"`
	ShutdownTimeout time.Duration `help:"Time allowed to drain requests on shutdown." default:"10s"`
	Token           string        `help:"Bearer token required from clients. No authentication when empty." env:"BYTESIZE_TOKEN"`
}

func (cmd *ServeCmd) Run(g *Globals) error {
	logger := zerolog.Ctx(g.ctx)

	opts := service.Options{}
	if cmd.Token != "" {
		opts.AuthFunc = service.TokenAuth(cmd.Token)
	}
	server, err := service.NewGRPCService(g.ctx, service.NewSizeService(), opts, service.WithDescriptors(&service.SizeServiceDesc))
	if err != nil {
		return err
	}

	l, err := net.Listen("tcp", cmd.Listen)
	if err != nil {
		return err
	}
	logger.Info().Str("address", l.Addr().String()).Msg("Serving")

	return <-lifecycle.ServeGrpcAndMetrics(g.ctx, l, server, nil, cmd.ShutdownTimeout)
}
