package resource

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	AppConfiguration       Kind = "AppConfiguration"
	ApplicationInsights    Kind = "ApplicationInsights"
	CosmosDB               Kind = "CosmosDB"
	EventHubs              Kind = "EventHubs"
	KeyVault               Kind = "KeyVault"
	LogAnalyticsWorkspace  Kind = "LogAnalyticsWorkspace"
	OpenAI                 Kind = "OpenAI"
	PostgresFlexibleServer Kind = "PostgresFlexibleServer"
	Redis                  Kind = "Redis"
	Search                 Kind = "Search"
	ServiceBus             Kind = "ServiceBus"
	SignalR                Kind = "SignalR"
	SqlServer              Kind = "SqlServer"
	Storage                Kind = "Storage"
	WebPubSub              Kind = "WebPubSub"
)

// SKU mirrors the ARM sku block. Empty fields are omitted from requests.
type SKU struct {
	Name string
	Tier string
}

// KindSpec describes how a Kind is provisioned through Azure Resource Manager.
type KindSpec struct {
	Kind        Kind
	DisplayName string
	ARMType     string
	APIVersion  string
	ARMKind     string
	SKU         *SKU

	// MaxNameLength and AlphanumericOnly constrain the physical resource name.
	MaxNameLength    int
	AlphanumericOnly bool

	// RequiresAdmin is set when the kind cannot be created without an Entra
	// ID administrator in PropertiesContext.
	RequiresAdmin bool

	// Properties returns the default ARM properties for a new resource.
	Properties func(ctx PropertiesContext) map[string]interface{}
}

// PropertiesContext carries the deployment values some kinds need in their
// ARM properties.
type PropertiesContext struct {
	PhysicalName string
	Location     string
	TenantID     string

	AdminLogin    string
	AdminObjectID string
}

var kindSpecs = map[Kind]KindSpec{
	AppConfiguration: {
		DisplayName:   "Azure App Configuration",
		ARMType:       "Microsoft.AppConfiguration/configurationStores",
		APIVersion:    "2023-03-01",
		SKU:           &SKU{Name: "standard"},
		MaxNameLength: 50,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{"disableLocalAuth": true}
		},
	},
	ApplicationInsights: {
		DisplayName:   "Azure Application Insights",
		ARMType:       "Microsoft.Insights/components",
		APIVersion:    "2020-02-02",
		ARMKind:       "web",
		MaxNameLength: 260,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{"Application_Type": "web"}
		},
	},
	CosmosDB: {
		DisplayName:   "Azure Cosmos DB",
		ARMType:       "Microsoft.DocumentDB/databaseAccounts",
		APIVersion:    "2023-04-15",
		ARMKind:       "GlobalDocumentDB",
		MaxNameLength: 44,
		Properties: func(pc PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"databaseAccountOfferType": "Standard",
				"consistencyPolicy": map[string]interface{}{
					"defaultConsistencyLevel": "Session",
				},
				"locations": []interface{}{
					map[string]interface{}{"locationName": pc.Location, "failoverPriority": 0},
				},
			}
		},
	},
	EventHubs: {
		DisplayName:   "Azure Event Hubs",
		ARMType:       "Microsoft.EventHub/namespaces",
		APIVersion:    "2021-11-01",
		SKU:           &SKU{Name: "Standard", Tier: "Standard"},
		MaxNameLength: 50,
	},
	KeyVault: {
		DisplayName:   "Azure Key Vault",
		ARMType:       "Microsoft.KeyVault/vaults",
		APIVersion:    "2022-07-01",
		MaxNameLength: 24,
		Properties: func(pc PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"tenantId":                pc.TenantID,
				"enableRbacAuthorization": true,
				"sku": map[string]interface{}{
					"family": "A",
					"name":   "standard",
				},
			}
		},
	},
	LogAnalyticsWorkspace: {
		DisplayName:   "Azure Log Analytics Workspace",
		ARMType:       "Microsoft.OperationalInsights/workspaces",
		APIVersion:    "2022-10-01",
		MaxNameLength: 63,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"sku": map[string]interface{}{"name": "PerGB2018"},
			}
		},
	},
	OpenAI: {
		DisplayName:   "Azure OpenAI",
		ARMType:       "Microsoft.CognitiveServices/accounts",
		APIVersion:    "2023-05-01",
		ARMKind:       "OpenAI",
		SKU:           &SKU{Name: "S0"},
		MaxNameLength: 64,
		Properties: func(pc PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"customSubDomainName": pc.PhysicalName,
				"disableLocalAuth":    true,
			}
		},
	},
	PostgresFlexibleServer: {
		DisplayName:   "Azure Database for PostgreSQL Flexible Server",
		ARMType:       "Microsoft.DBforPostgreSQL/flexibleServers",
		APIVersion:    "2022-12-01",
		SKU:           &SKU{Name: "Standard_B1ms", Tier: "Burstable"},
		MaxNameLength: 63,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"version": "14",
				"storage": map[string]interface{}{"storageSizeGB": 32},
				"authConfig": map[string]interface{}{
					"activeDirectoryAuth": "Enabled",
					"passwordAuth":        "Disabled",
				},
			}
		},
	},
	Redis: {
		DisplayName:   "Azure Cache for Redis",
		ARMType:       "Microsoft.Cache/redis",
		APIVersion:    "2023-08-01",
		MaxNameLength: 63,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"enableNonSslPort":  false,
				"minimumTlsVersion": "1.2",
				"sku": map[string]interface{}{
					"name":     "Basic",
					"family":   "C",
					"capacity": 1,
				},
			}
		},
	},
	Search: {
		DisplayName:   "Azure AI Search",
		ARMType:       "Microsoft.Search/searchServices",
		APIVersion:    "2023-11-01",
		SKU:           &SKU{Name: "basic"},
		MaxNameLength: 60,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"replicaCount":   1,
				"partitionCount": 1,
				"hostingMode":    "default",
			}
		},
	},
	ServiceBus: {
		DisplayName:   "Azure Service Bus",
		ARMType:       "Microsoft.ServiceBus/namespaces",
		APIVersion:    "2021-11-01",
		SKU:           &SKU{Name: "Standard", Tier: "Standard"},
		MaxNameLength: 50,
	},
	SignalR: {
		DisplayName:   "Azure SignalR Service",
		ARMType:       "Microsoft.SignalRService/signalR",
		APIVersion:    "2022-02-01",
		ARMKind:       "SignalR",
		SKU:           &SKU{Name: "Standard_S1", Tier: "Standard"},
		MaxNameLength: 63,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"features": []interface{}{
					map[string]interface{}{"flag": "ServiceMode", "value": "Default"},
				},
			}
		},
	},
	SqlServer: {
		DisplayName:   "Azure SQL Server",
		ARMType:       "Microsoft.Sql/servers",
		APIVersion:    "2021-11-01",
		MaxNameLength: 63,
		RequiresAdmin: true,
		Properties: func(pc PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"version":             "12.0",
				"minimalTlsVersion":   "1.2",
				"publicNetworkAccess": "Enabled",
				"administrators": map[string]interface{}{
					"administratorType":         "ActiveDirectory",
					"azureADOnlyAuthentication": true,
					"login":                     pc.AdminLogin,
					"sid":                       pc.AdminObjectID,
					"tenantId":                  pc.TenantID,
				},
			}
		},
	},
	Storage: {
		DisplayName:      "Azure Storage",
		ARMType:          "Microsoft.Storage/storageAccounts",
		APIVersion:       "2023-01-01",
		ARMKind:          "StorageV2",
		SKU:              &SKU{Name: "Standard_GRS"},
		MaxNameLength:    24,
		AlphanumericOnly: true,
		Properties: func(PropertiesContext) map[string]interface{} {
			return map[string]interface{}{
				"minimumTlsVersion":     "TLS1_2",
				"allowBlobPublicAccess": false,
			}
		},
	},
	WebPubSub: {
		DisplayName:   "Azure Web PubSub",
		ARMType:       "Microsoft.SignalRService/webPubSub",
		APIVersion:    "2021-10-01",
		SKU:           &SKU{Name: "Standard_S1", Tier: "Standard"},
		MaxNameLength: 63,
	},
}

func init() {
	for k, spec := range kindSpecs {
		spec.Kind = k
		kindSpecs[k] = spec
	}
}

// ParseKind resolves a kind from its name, ignoring case.
func ParseKind(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	for k := range kindSpecs {
		if strings.EqualFold(string(k), trimmed) {
			return k, nil
		}
	}
	return "", UnknownKindError{Kind: s}
}

// Kinds returns every supported kind sorted by name.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindSpecs))
	for k := range kindSpecs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})
	return kinds
}

func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

func (k Kind) Spec() (KindSpec, bool) {
	spec, ok := kindSpecs[k]
	return spec, ok
}

func (k Kind) String() string {
	return string(k)
}

// PhysicalName derives the Azure resource name for a declaration. ARM names
// for most of these kinds are global, so a short hash of scope and the
// declared name is appended. The hash covers the name before it is filtered
// and truncated, so names that only differ in dropped characters still get
// distinct physical names.
func (k Kind) PhysicalName(name string, scope string) string {
	spec, ok := kindSpecs[k]
	if !ok {
		return name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && !spec.AlphanumericOnly:
			b.WriteRune(r)
		}
	}
	base := b.String()

	sum := sha256.Sum256([]byte(scope + "/" + strings.ToLower(name)))
	suffix := hex.EncodeToString(sum[:])[:6]

	maxBase := spec.MaxNameLength - len(suffix)
	if !spec.AlphanumericOnly {
		maxBase--
	}
	if len(base) > maxBase {
		base = strings.TrimRight(base[:maxBase], "-")
	}

	if spec.AlphanumericOnly {
		return base + suffix
	}
	return fmt.Sprintf("%s-%s", base, suffix)
}
