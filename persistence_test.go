package espgo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	rng := NewRNG(40)
	variant := FeedForwardVariant{}
	net, _ := buildAssembledNetwork(t, 3, 5, 2, 1, variant, rng)

	var buf strings.Builder
	require.NoError(t, DumpNetwork(&buf, net))

	loaded, err := LoadNetwork(strings.NewReader(buf.String()), variant)
	require.NoError(t, err)

	require.Equal(t, len(net.HiddenUnits), len(loaded.HiddenUnits))
	for k := range net.HiddenUnits {
		assert.True(t, net.HiddenUnits[k].Equal(loaded.HiddenUnits[k]))
	}
	assert.Equal(t, net.NumInputs, loaded.NumInputs)
	assert.Equal(t, net.NumOutputs, loaded.NumOutputs)
}

func TestLoadNetworkRejectsTypeMismatch(t *testing.T) {
	rng := NewRNG(41)
	net, _ := buildAssembledNetwork(t, 2, 4, 1, 1, FeedForwardVariant{}, rng)
	var buf strings.Builder
	require.NoError(t, DumpNetwork(&buf, net))

	_, err := LoadNetwork(strings.NewReader(buf.String()), RecurrentVariant{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
