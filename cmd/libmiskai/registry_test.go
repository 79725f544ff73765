package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/miskai-core/internal/bridge"
)

func TestRegistry_ReleaseOnce(t *testing.T) {
	b := bridge.New()
	b.Initialize()
	t.Cleanup(b.Shutdown)
	r := newRegistry(b)

	h := b.ProcessText("", "en")
	r.track(0x1000, h)
	require.Equal(t, 1, r.len())
	require.Equal(t, 1, b.Live())

	assert.True(t, r.release(0x1000))
	assert.False(t, r.release(0x1000), "second release is rejected")
	assert.False(t, r.release(0x2000), "unknown pointer is rejected")
	assert.Zero(t, r.len())
	assert.Zero(t, b.Live())
}

func TestRegistry_ExportedVersion(t *testing.T) {
	b := bridge.New(bridge.WithVersion("1.0.0"))
	r := newRegistry(b)

	h := b.Export(b.PlatformVersion())
	s, ok := b.Read(h)
	require.True(t, ok)
	assert.Contains(t, s, "miskai-core 1.0.0")

	r.track(0x10, h)
	assert.True(t, r.release(0x10))
	_, ok = b.Read(h)
	assert.False(t, ok)
}
