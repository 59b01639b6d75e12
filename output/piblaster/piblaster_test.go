package piblaster

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultDevice, nil, 0o644))
	return fs
}

func TestSetChannelWritesLines(t *testing.T) {
	fs := newFs(t)
	b, err := Open(fs, "")
	require.NoError(t, err)

	b.SetChannel(4, 1)
	b.SetChannel(17, 0.5)
	b.SetChannel(18, 0)
	b.SetChannel(18, 3)
	require.NoError(t, b.Release(4))
	require.NoError(t, b.Close())

	data, err := afero.ReadFile(fs, DefaultDevice)
	require.NoError(t, err)
	assert.Equal(t, "4=1\n17=0.5\n18=0\n18=1\nrelease 4\n", string(data))
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open(afero.NewMemMapFs(), "/dev/missing")
	assert.Error(t, err)
}

func TestWriteAfterClose(t *testing.T) {
	b, err := Open(newFs(t), DefaultDevice)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	assert.Error(t, b.Release(4))
	assert.NotPanics(t, func() { b.SetChannel(4, 1) })
}
