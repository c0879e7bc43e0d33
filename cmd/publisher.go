package cmd

import (
	"strings"

	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/host"
	"github.com/santiago-labs/apphost/lib/azureresources"
	"github.com/santiago-labs/apphost/lib/manifeststore"
	"github.com/santiago-labs/apphost/publisher"
	"github.com/santiago-labs/apphost/resource"
	"github.com/santiago-labs/apphost/resourceoperation"
)

// Set by the manifest command. Empty values fall back to the environment.
var (
	manifestFormat string
	outputPath     string
	bucket         string
)

// azureClient is swapped in tests.
var azureClient = func(subscriptionID string) (azureresources.API, error) {
	return azureresources.New(subscriptionID)
}

func newPublisher(name string, consoleUI runner.ConsoleUI) (host.Publisher, error) {
	switch strings.ToLower(name) {
	case "", "manifest":
		return newManifestPublisher()
	case "diff":
		return newAzurePublisher(resourceoperation.Diff, consoleUI)
	case "deploy":
		return newAzurePublisher(resourceoperation.Deploy, consoleUI)
	default:
		return nil, oops.Errorf("unknown publisher %q: must be one of manifest, diff, deploy", name)
	}
}

func newManifestPublisher() (host.Publisher, error) {
	pub := &publisher.Manifest{
		Format:     firstNonEmpty(manifestFormat, cfg.ManifestFormat),
		OutputPath: firstNonEmpty(outputPath, cfg.OutputPath),
	}

	if b := firstNonEmpty(bucket, cfg.ManifestBucket); b != "" {
		store, err := manifeststore.New(b)
		if err != nil {
			return nil, err
		}
		pub.Uploader = store
	}

	return pub, nil
}

func newAzurePublisher(mode int, consoleUI runner.ConsoleUI) (host.Publisher, error) {
	if err := cfg.ValidateAzure(); err != nil {
		return nil, err
	}

	client, err := azureClient(cfg.SubscriptionID)
	if err != nil {
		return nil, err
	}

	return &publisher.Azure{
		Mode:      mode,
		Client:    client,
		ConsoleUI: consoleUI,
		Group: resource.ResourceGroup{
			SubscriptionID: cfg.SubscriptionID,
			GroupName:      cfg.ResourceGroup,
			Location:       cfg.Location,
		},
		TenantID: cfg.TenantID,
		Scope:    cfg.Scope(),

		AdminLogin:    cfg.SQLAdminLogin,
		AdminObjectID: cfg.SQLAdminObjectID,
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
