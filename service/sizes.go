// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/optable/bytesize/errors"
	"github.com/optable/bytesize/io"
	"github.com/optable/bytesize/locale"
	"github.com/optable/bytesize/size"
)

// SizeService implements SizeServiceServer. It is also a
// prometheus.Collector counting parsed entries and failures per error kind,
// NewGRPCService registers it automatically.
type SizeService struct {
	parsed   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func NewSizeService() *SizeService {
	return &SizeService{
		parsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bytesize",
			Name:      "parsed_sizes_total",
			Help:      "Number of sizes parsed successfully.",
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bytesize",
			Name:      "size_errors_total",
			Help:      "Number of invalid inputs by error kind.",
		}, []string{"method", "kind"}),
	}
}

func (s *SizeService) Describe(ch chan<- *prometheus.Desc) {
	s.parsed.Describe(ch)
	s.failures.Describe(ch)
}

func (s *SizeService) Collect(ch chan<- prometheus.Metric) {
	s.parsed.Collect(ch)
	s.failures.Collect(ch)
}

func (s *SizeService) Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error) {
	parser, err := newParser(req.Options)
	if err != nil {
		return nil, s.fail(ctx, "Parse", err)
	}

	parsed, err := parser.Parse(req.Text)
	if err != nil {
		return nil, s.fail(ctx, "Parse", err)
	}

	s.parsed.WithLabelValues("Parse").Inc()
	return &ParseResponse{Size: parsed}, nil
}

func (s *SizeService) Format(ctx context.Context, req *FormatRequest) (*FormatResponse, error) {
	c := formatConfig(req.Config)
	locale.Localize(&c)

	text, err := req.Size.Format(c)
	if err != nil {
		return nil, s.fail(ctx, "Format", err)
	}
	return &FormatResponse{Text: text}, nil
}

func (s *SizeService) Sum(ctx context.Context, req *SumRequest) (*SumResponse, error) {
	parser, err := newParser(req.Options)
	if err != nil {
		return nil, s.fail(ctx, "Sum", err)
	}
	c := formatConfig(req.Config)
	locale.Localize(&c)
	if _, _, err := (size.Size{}).Components(c); err != nil {
		return nil, s.fail(ctx, "Sum", err)
	}

	total, err := io.Sum(io.NewSizeReader(io.StringFrameReader(req.Sizes...), io.Text, parser))

	resp := &SumResponse{Size: total}
	var inputErrs []error
	var many *errors.Errors
	switch {
	case err == nil:
	case errors.As(err, &many):
		inputErrs = many.Errors()
	default:
		inputErrs = []error{err}
	}

	for _, inputErr := range inputErrs {
		var posErr *errors.PositionalError
		if !errors.As(inputErr, &posErr) {
			return nil, s.fail(ctx, "Sum", inputErr)
		}
		kind := errors.KindOf(inputErr)
		s.failures.WithLabelValues("Sum", kindLabel(kind)).Inc()
		resp.Errors = append(resp.Errors, InputError{
			Position: posErr.Position(),
			Input:    posErr.Input(),
			Kind:     kindLabel(kind),
			Message:  posErr.Unwrap().Error(),
		})
	}
	entries := 0
	for _, text := range req.Sizes {
		if strings.TrimSpace(text) != "" {
			entries++
		}
	}
	s.parsed.WithLabelValues("Sum").Add(float64(entries - len(resp.Errors)))

	if resp.Text, err = total.Format(c); err != nil {
		return nil, s.fail(ctx, "Sum", err)
	}
	return resp, nil
}

func newParser(opts ParseOptions) (*size.Parser, error) {
	parseOpts := []size.ParseOption{}
	if opts.DefaultUnit != nil {
		parseOpts = append(parseOpts, size.WithDefaultUnit(*opts.DefaultUnit))
	}
	if opts.Locale != "" {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, errors.NewSizeError(errors.ValueError, "locale", opts.Locale, err)
		}
		c := size.FormatConfig{Locale: tag}
		locale.Localize(&c)
		parseOpts = append(parseOpts, size.WithNumerals(c.Numerals))
	}
	return size.NewParser(parseOpts...), nil
}

func kindLabel(kind errors.Kind) string {
	if kind == 0 {
		return "unknown"
	}
	return kind.Error()
}

// fail counts err and converts it to a gRPC status. Size errors are the
// caller's fault, anything else is internal.
func (s *SizeService) fail(ctx context.Context, method string, err error) error {
	kind := errors.KindOf(err)
	s.failures.WithLabelValues(method, kindLabel(kind)).Inc()
	zerolog.Ctx(ctx).Debug().Err(err).Str("method", method).Msg("Rejected request")
	return toStatus(err)
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, errors.ErrSize):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, fmt.Sprintf("internal error: %s", err))
	}
}
