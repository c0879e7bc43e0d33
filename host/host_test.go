package host_test

import (
	"context"
	"errors"
	"testing"

	"github.com/santiago-labs/apphost/host"
	"github.com/santiago-labs/apphost/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	calls [][]resource.Declaration
	err   error
}

func (p *recordingPublisher) Name() string {
	return "recording"
}

func (p *recordingPublisher) Publish(_ context.Context, decls []resource.Declaration) error {
	p.calls = append(p.calls, decls)
	return p.err
}

func newBuilder(t *testing.T) *resource.Builder {
	b := resource.NewBuilder()
	_, err := b.Declare(resource.AppConfiguration, "config")
	require.NoError(t, err)
	_, err = b.Declare(resource.ServiceBus, "service-bus")
	require.NoError(t, err)
	return b
}

func TestRunPublishesOnce(t *testing.T) {
	pub := &recordingPublisher{}
	b := newBuilder(t)

	h, err := host.New(b, pub)
	require.NoError(t, err)
	assert.True(t, b.Finalized(), "host.New must finalize the builder")
	assert.Empty(t, pub.calls, "publisher must not run before Run")

	require.NoError(t, h.Run(context.Background()))
	require.Len(t, pub.calls, 1)
	assert.Equal(t, []resource.Declaration{
		{ResourceName: "config", Kind: resource.AppConfiguration},
		{ResourceName: "service-bus", Kind: resource.ServiceBus},
	}, pub.calls[0])

	assert.ErrorIs(t, h.Run(context.Background()), host.ErrAlreadyRun)
	assert.Len(t, pub.calls, 1)
}

func TestNewRejectsFinalizedBuilder(t *testing.T) {
	b := newBuilder(t)
	_, err := b.Finalize()
	require.NoError(t, err)

	_, err = host.New(b, &recordingPublisher{})
	assert.Error(t, err)
}

func TestNewRequiresArguments(t *testing.T) {
	_, err := host.New(nil, &recordingPublisher{})
	assert.Error(t, err)

	_, err = host.New(resource.NewBuilder(), nil)
	assert.Error(t, err)
}

func TestRunReturnsPublisherError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("boom")}
	h, err := host.New(newBuilder(t), pub)
	require.NoError(t, err)

	err = h.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
