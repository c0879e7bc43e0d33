// Package host turns a finalized set of resource declarations into a running
// host. The host hands the declarations to a Publisher exactly once; what the
// publisher does with them (render a manifest, plan or provision Azure
// resources) is up to the publisher.
package host

import (
	"context"
	"errors"
	"sync"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/lib/ctxlog"
	"github.com/santiago-labs/apphost/resource"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/santiago-labs/apphost/host"

// ErrAlreadyRun is returned by Run once the declarations have been consumed.
var ErrAlreadyRun = errors.New("host already ran")

type Publisher interface {
	Name() string
	Publish(ctx context.Context, decls []resource.Declaration) error
}

type Host struct {
	declarations []resource.Declaration
	publisher    Publisher

	mu  sync.Mutex
	ran bool
}

// New finalizes b and binds the result to publisher. The builder cannot
// accept declarations afterwards.
func New(b *resource.Builder, publisher Publisher) (*Host, error) {
	if b == nil {
		return nil, oops.Errorf("builder is nil")
	}
	if publisher == nil {
		return nil, oops.Errorf("publisher is nil")
	}

	decls, err := b.Finalize()
	if err != nil {
		return nil, oops.Wrapf(err, "finalize builder")
	}

	return &Host{
		declarations: decls,
		publisher:    publisher,
	}, nil
}

// Declarations returns a copy of the finalized declarations.
func (h *Host) Declarations() []resource.Declaration {
	decls := make([]resource.Declaration, len(h.declarations))
	copy(decls, h.declarations)
	return decls
}

// Run publishes the declarations. It can only be called once.
func (h *Host) Run(ctx context.Context) error {
	h.mu.Lock()
	if h.ran {
		h.mu.Unlock()
		return ErrAlreadyRun
	}
	h.ran = true
	decls := h.declarations
	h.declarations = nil
	h.mu.Unlock()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "host.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("apphost.publisher", h.publisher.Name()),
		attribute.Int("apphost.declarations", len(decls)),
	)

	logger := ctxlog.FromContext(ctx).With("publisher", h.publisher.Name())
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.With("trace_id", sc.TraceID().String())
	}
	logger.Info("running host", "declarations", len(decls))

	if err := h.publisher.Publish(ctx, decls); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return oops.Wrapf(err, "publish with %s", h.publisher.Name())
	}

	logger.Info("host finished")
	return nil
}
