package cmd

import (
	"github.com/santiago-labs/apphost/lib/ymlparser"
	"github.com/santiago-labs/apphost/resource"
)

// defaultDeclarations is the built-in program, in declaration order.
var defaultDeclarations = []resource.Declaration{
	{ResourceName: "config", Kind: resource.AppConfiguration},
	{ResourceName: "insights", Kind: resource.ApplicationInsights},
	{ResourceName: "cosmos", Kind: resource.CosmosDB},
	{ResourceName: "event-hubs", Kind: resource.EventHubs},
	{ResourceName: "key-vault", Kind: resource.KeyVault},
	{ResourceName: "log-analytics-workspace", Kind: resource.LogAnalyticsWorkspace},
	{ResourceName: "openai", Kind: resource.OpenAI},
	{ResourceName: "postgres-flexible", Kind: resource.PostgresFlexibleServer},
	{ResourceName: "redis", Kind: resource.Redis},
	{ResourceName: "search", Kind: resource.Search},
	{ResourceName: "service-bus", Kind: resource.ServiceBus},
	{ResourceName: "signalr", Kind: resource.SignalR},
	{ResourceName: "sql", Kind: resource.SqlServer},
	{ResourceName: "storage", Kind: resource.Storage},
	{ResourceName: "web-pub-sub", Kind: resource.WebPubSub},
}

// DefaultProgram declares the built-in resources on b.
func DefaultProgram(b *resource.Builder) error {
	for _, d := range defaultDeclarations {
		if _, err := b.Declare(d.Kind, d.ResourceName); err != nil {
			return err
		}
	}
	return nil
}

func loadBuilder() (*resource.Builder, error) {
	b := resource.NewBuilder()
	if declarationsFile != "" {
		if err := ymlparser.ParseDeclarations(declarationsFile, b); err != nil {
			return nil, err
		}
		return b, nil
	}

	if err := DefaultProgram(b); err != nil {
		return nil, err
	}
	return b, nil
}
