package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/samsarahq/go/oops"
)

// Config holds the environment driven settings of apphost. Command-line
// flags override these after parsing.
type Config struct {
	SubscriptionID string `env:"AZURE_SUBSCRIPTION_ID"`
	TenantID       string `env:"AZURE_TENANT_ID"`
	Location       string `env:"AZURE_LOCATION" envDefault:"eastus"`
	ResourceGroup  string `env:"APPHOST_RESOURCE_GROUP" envDefault:"rg-apphost"`

	// Entra ID administrator for SQL servers. Deploying a SqlServer needs it.
	SQLAdminLogin    string `env:"APPHOST_SQL_ADMIN_LOGIN"`
	SQLAdminObjectID string `env:"APPHOST_SQL_ADMIN_OBJECT_ID"`

	Publisher      string `env:"APPHOST_PUBLISHER" envDefault:"manifest"`
	ManifestFormat string `env:"APPHOST_MANIFEST_FORMAT" envDefault:"json"`
	OutputPath     string `env:"APPHOST_OUTPUT_PATH"`
	ManifestBucket string `env:"APPHOST_MANIFEST_BUCKET"`

	LogLevel        string `env:"APPHOST_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint    string `env:"APPHOST_OTEL_ENDPOINT"`
	PosthogKey      string `env:"APPHOST_POSTHOG_KEY"`
	MetricsDisabled bool   `env:"APPHOST_METRICS_DISABLED"`
}

// Load parses the process environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, oops.Wrapf(err, "parse env")
	}
	return cfg, nil
}

// Scope identifies the subscription and resource group resources are
// deployed into. It seeds physical resource names.
func (c Config) Scope() string {
	return strings.ToLower(c.SubscriptionID + "/" + c.ResourceGroup)
}

// ValidateAzure checks the settings needed to talk to Azure Resource Manager.
func (c Config) ValidateAzure() error {
	var missing []string
	if c.SubscriptionID == "" {
		missing = append(missing, "AZURE_SUBSCRIPTION_ID")
	}
	if c.ResourceGroup == "" {
		missing = append(missing, "APPHOST_RESOURCE_GROUP")
	}
	if c.Location == "" {
		missing = append(missing, "AZURE_LOCATION")
	}
	if len(missing) > 0 {
		return oops.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
