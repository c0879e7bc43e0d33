package colors

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestDeterministicColorFunc(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	for _, id := range []string{"config", "key-vault", "storage"} {
		first := DeterministicColorFunc(id)("%s", id)
		second := DeterministicColorFunc(id)("%s", id)
		assert.Equal(t, first, second, "color for %s should be stable", id)
		assert.Contains(t, first, id)
	}
}

func TestStatus(t *testing.T) {
	assert.Contains(t, Status("create"), "create")
	assert.Equal(t, "noop", Status("noop"))
}
