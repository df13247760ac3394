// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const SizeServiceName = "bytesize.v1.SizeService"

// SizeServiceServer is the server API of SizeServiceDesc.
type SizeServiceServer interface {
	Parse(context.Context, *ParseRequest) (*ParseResponse, error)
	Format(context.Context, *FormatRequest) (*FormatResponse, error)
	Sum(context.Context, *SumRequest) (*SumResponse, error)
}

// SizeServiceDesc describes the size service. Messages are plain structs
// exchanged with the JSON codec, see CodecName.
var SizeServiceDesc = grpc.ServiceDesc{
	ServiceName: SizeServiceName,
	HandlerType: (*SizeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parse",
			Handler: unaryHandler("Parse", func() interface{} { return new(ParseRequest) },
				func(srv SizeServiceServer, ctx context.Context, req interface{}) (interface{}, error) {
					return srv.Parse(ctx, req.(*ParseRequest))
				}),
		},
		{
			MethodName: "Format",
			Handler: unaryHandler("Format", func() interface{} { return new(FormatRequest) },
				func(srv SizeServiceServer, ctx context.Context, req interface{}) (interface{}, error) {
					return srv.Format(ctx, req.(*FormatRequest))
				}),
		},
		{
			MethodName: "Sum",
			Handler: unaryHandler("Sum", func() interface{} { return new(SumRequest) },
				func(srv SizeServiceServer, ctx context.Context, req interface{}) (interface{}, error) {
					return srv.Sum(ctx, req.(*SumRequest))
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bytesize/v1/size.json",
}

type unaryCall func(srv SizeServiceServer, ctx context.Context, req interface{}) (interface{}, error)

// unaryHandler mirrors the handlers generated by protoc-gen-go-grpc.
func unaryHandler(method string, newRequest func() interface{}, call unaryCall) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + SizeServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := newRequest()
		if err := dec(in); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid %s request: %s", method, err)
		}
		if interceptor == nil {
			return call(srv.(SizeServiceServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SizeServiceServer), ctx, req)
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SizeServiceClient calls a SizeServiceDesc server with the JSON codec.
type SizeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSizeServiceClient(cc grpc.ClientConnInterface) *SizeServiceClient {
	return &SizeServiceClient{cc}
}

func (c *SizeServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+SizeServiceName+"/"+method, in, out, opts...)
}

func (c *SizeServiceClient) Parse(ctx context.Context, in *ParseRequest, opts ...grpc.CallOption) (*ParseResponse, error) {
	out := new(ParseResponse)
	if err := c.invoke(ctx, "Parse", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SizeServiceClient) Format(ctx context.Context, in *FormatRequest, opts ...grpc.CallOption) (*FormatResponse, error) {
	out := new(FormatResponse)
	if err := c.invoke(ctx, "Format", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SizeServiceClient) Sum(ctx context.Context, in *SumRequest, opts ...grpc.CallOption) (*SumResponse, error) {
	out := new(SumResponse)
	if err := c.invoke(ctx, "Sum", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
