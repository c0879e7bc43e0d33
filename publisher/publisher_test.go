package publisher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/santiago-labs/apphost/cmd/runner"
	"github.com/santiago-labs/apphost/host"
	"github.com/santiago-labs/apphost/lib/azureresources/azureresourcesmock"
	"github.com/santiago-labs/apphost/resource"
	"github.com/santiago-labs/apphost/resourceoperation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	ext  string
	body []byte
	err  error
}

func (f *fakeUploader) Put(_ context.Context, ext string, body []byte) (string, error) {
	f.ext = ext
	f.body = body
	return "s3://bucket/apphost/manifest." + ext, f.err
}

func newBuilder(t *testing.T) *resource.Builder {
	b := resource.NewBuilder()
	_, err := b.Declare(resource.Redis, "redis")
	require.NoError(t, err)
	_, err = b.Declare(resource.Search, "search")
	require.NoError(t, err)
	return b
}

var (
	_ host.Publisher = (*Manifest)(nil)
	_ host.Publisher = (*Azure)(nil)
)

func TestManifestToWriterAndUpload(t *testing.T) {
	var out bytes.Buffer
	up := &fakeUploader{}
	h, err := host.New(newBuilder(t), &Manifest{Format: "yaml", Out: &out, Uploader: up})
	require.NoError(t, err)

	require.NoError(t, h.Run(context.Background()))
	assert.Contains(t, out.String(), "redis.module.bicep")
	assert.Less(t, strings.Index(out.String(), "redis:"), strings.Index(out.String(), "search:"))
	assert.Equal(t, "yaml", up.ext)
	assert.Equal(t, out.Bytes(), up.body)
}

func TestManifestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	h, err := host.New(newBuilder(t), &Manifest{OutputPath: path})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Microsoft.Cache/redis"`)
}

func TestManifestUploadError(t *testing.T) {
	h, err := host.New(newBuilder(t), &Manifest{Out: &bytes.Buffer{}, Uploader: &fakeUploader{err: errors.New("denied")}})
	require.NoError(t, err)
	assert.Error(t, h.Run(context.Background()))
}

func TestAzureDeploy(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var out bytes.Buffer
	client := azureresourcesmock.New("sub-1")
	pub := &Azure{
		Mode:      resourceoperation.Deploy,
		Client:    client,
		ConsoleUI: runner.NewWriter(&out),
		Group:     resource.ResourceGroup{SubscriptionID: "sub-1", GroupName: "rg", Location: "westus"},
		Scope:     "sub-1/rg",
	}
	assert.Equal(t, "deploy", pub.Name())

	h, err := host.New(newBuilder(t), pub)
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	assert.Len(t, client.Calls(), 3)
	assert.Contains(t, out.String(), "Deployed: 2 to create, 0 to update.")
}

func TestAzureDiffSubscriptionMissing(t *testing.T) {
	pub := &Azure{
		Mode:      resourceoperation.Diff,
		Client:    azureresourcesmock.New(""),
		ConsoleUI: runner.NewWriter(&bytes.Buffer{}),
	}
	assert.Equal(t, "diff", pub.Name())

	h, err := host.New(newBuilder(t), pub)
	require.NoError(t, err)
	assert.Error(t, h.Run(context.Background()))
}
