package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{ServiceName: "apphost", Endpoint: "  "})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupWithEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), Settings{ServiceName: "apphost", Endpoint: "http://127.0.0.1:4318"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestAttributes(t *testing.T) {
	attrs := attribute.NewSet(Settings{
		ServiceName:    "apphost",
		ServiceVersion: "1.2.3",
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-apphost",
		Location:       "eastus",
		Publisher:      "deploy",
	}.Attributes()...)

	for key, want := range map[attribute.Key]string{
		"service.name":           "apphost",
		"service.version":        "1.2.3",
		"cloud.provider":         "azure",
		"cloud.account.id":       "sub-1",
		"cloud.region":           "eastus",
		"apphost.resource_group": "rg-apphost",
		"apphost.publisher":      "deploy",
	} {
		got, ok := attrs.Value(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got.AsString(), key)
	}

	minimal := attribute.NewSet(Settings{ServiceName: "apphost"}.Attributes()...)
	_, ok := minimal.Value("cloud.account.id")
	assert.False(t, ok)
}
