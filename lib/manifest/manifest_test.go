package manifest

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/santiago-labs/apphost/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var decls = []resource.Declaration{
	{ResourceName: "storage", Kind: resource.Storage},
	{ResourceName: "config", Kind: resource.AppConfiguration},
	{ResourceName: "key-vault", Kind: resource.KeyVault},
}

func TestBuild(t *testing.T) {
	m, err := Build(decls)
	require.NoError(t, err)

	require.Len(t, m.Resources, 3)
	assert.Equal(t, Resource{
		Name:       "storage",
		Type:       BicepType,
		Path:       "storage.module.bicep",
		Kind:       "Storage",
		AzureType:  "Microsoft.Storage/storageAccounts",
		APIVersion: "2023-01-01",
	}, m.Resources[0])

	_, err = Build([]resource.Declaration{{ResourceName: "x", Kind: "Mainframe"}})
	assert.Error(t, err)
}

func TestEncodeKeepsDeclarationOrder(t *testing.T) {
	m, err := Build(decls)
	require.NoError(t, err)

	for _, format := range []string{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, m.Encode(&buf, format), format)
		out := buf.String()

		storageIdx := strings.Index(out, "storage.module.bicep")
		configIdx := strings.Index(out, "config.module.bicep")
		vaultIdx := strings.Index(out, "key-vault.module.bicep")
		require.True(t, storageIdx >= 0 && configIdx >= 0 && vaultIdx >= 0, format)
		assert.Less(t, storageIdx, configIdx, format)
		assert.Less(t, configIdx, vaultIdx, format)
	}
}

func TestEncodeJSONIsValid(t *testing.T) {
	m, err := Build(decls)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf, FormatJSON))

	var parsed struct {
		Schema    string                     `json:"$schema"`
		Resources map[string]json.RawMessage `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, SchemaURL, parsed.Schema)
	assert.Len(t, parsed.Resources, 3)
	assert.Contains(t, string(parsed.Resources["config"]), `"azure.bicep.v0"`)
}

func TestEncodeYAMLIsValid(t *testing.T) {
	m, err := Build(decls)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf, FormatYAML))

	var parsed struct {
		Schema    string              `yaml:"$schema"`
		Resources map[string]Resource `yaml:"resources"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &parsed))
	assert.Equal(t, SchemaURL, parsed.Schema)
	assert.Equal(t, "Microsoft.KeyVault/vaults", parsed.Resources["key-vault"].AzureType)
}

func TestEncodeEmptyAndUnknownFormat(t *testing.T) {
	m, err := Build(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf, FormatJSON))
	assert.JSONEq(t, `{"$schema":"`+SchemaURL+`","resources":{}}`, buf.String())

	assert.Error(t, m.Encode(&buf, "toml"))
	assert.Equal(t, "yaml", Extension("yml"))
	assert.Equal(t, "json", Extension(""))
}
