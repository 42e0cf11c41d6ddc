package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/internal/game"
)

func TestBindingHeldKey(t *testing.T) {
	b := &Binding{Press: game.CmdForwardPress, Release: game.CmdForwardRelease}

	cmd, ok := b.update(true)
	require.True(t, ok)
	assert.Equal(t, game.CmdForwardPress, cmd)

	_, ok = b.update(true)
	assert.False(t, ok, "holding sends nothing")

	cmd, ok = b.update(false)
	require.True(t, ok)
	assert.Equal(t, game.CmdForwardRelease, cmd)
}

func TestBindingSticky(t *testing.T) {
	b := &Binding{Press: game.CmdToggleMap, Sticky: true}
	cmd, ok := b.update(true)
	require.True(t, ok)
	assert.Equal(t, game.CmdToggleMap, cmd)
	_, ok = b.update(false)
	assert.False(t, ok, "toggles ignore the release")
}

func TestDefaultBindingsUnique(t *testing.T) {
	seen := make(map[game.Command]bool)
	keys := make(map[int]bool)
	for _, b := range DefaultBindings() {
		assert.NotEmpty(t, b.Keys)
		assert.False(t, seen[b.Press], "duplicate binding for %s", b.Press)
		seen[b.Press] = true
		for _, k := range b.Keys {
			assert.False(t, keys[int(k)], "key %v bound twice", k)
			keys[int(k)] = true
		}
	}
	assert.True(t, seen[game.CmdQuit])
}
