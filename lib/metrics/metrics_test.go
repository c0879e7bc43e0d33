package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistinctIdPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".apphost")

	first := uuid.NewString()
	assert.Equal(t, first, distinctIdIn(dir, first))
	assert.Equal(t, first, distinctIdIn(dir, uuid.NewString()))
}

func TestDistinctIdReplacesGarbage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "userid"), []byte("not-a-uuid"), 0644))

	id := uuid.NewString()
	assert.Equal(t, id, distinctIdIn(dir, id))
	assert.Equal(t, id, distinctIdIn(dir, uuid.NewString()))
}

func TestDisabledIsNoop(t *testing.T) {
	Init("", false)
	assert.Nil(t, c)
	Init("phc_test", true)
	assert.Nil(t, c)

	RegisterCommand()
	RegisterPublish("manifest", 15, errors.New("boom"))
	Close()
}
