package bazaar

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextBlockValues(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), h)
	assert.Panics(t, func() { WithHeight(ctx, 8) })

	ctx = WithHeader(ctx, abci.Header{Height: 7, ChainID: "bazaar-ctx"})
	header, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, "bazaar-ctx", header.ChainID)
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })

	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "no") })
	ctx = WithChainID(ctx, "bazaar-ctx")
	assert.Equal(t, "bazaar-ctx", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "bazaar-other") })
}

func TestContextLogger(t *testing.T) {
	bg := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(bg))

	var out bytes.Buffer
	ctx := WithLogger(bg, log.NewTMLogger(&out))
	ctx = WithLogInfo(ctx, "escrow", "E1")
	GetLogger(ctx).Info("resolved")
	assert.Contains(t, out.String(), "escrow=E1")
	assert.Contains(t, out.String(), "resolved")
}

func TestBlockTime(t *testing.T) {
	bg := context.Background()

	_, err := BlockTime(bg)
	assert.True(t, errors.ErrHuman.Is(err))
	_, err = CurrentTime(WithBlockTime(bg, time.Time{}))
	assert.True(t, errors.ErrHuman.Is(err))

	zone := time.FixedZone("east", 3*3600)
	at := time.Date(2020, 9, 13, 15, 26, 40, 500, zone)
	ctx := WithBlockTime(bg, at)
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	now, err := CurrentTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, UnixTime(1600000000), now)
}

func TestChainID(t *testing.T) {
	cases := map[string]bool{
		"":                                false,
		"short":                           false,
		"bazaar":                          true,
		"bazaar-main_01":                  true,
		"semi;colon":                      false,
		"a-chain-id-that-is-far-too-long": false,
	}
	for id, valid := range cases {
		assert.Equal(t, valid, IsValidChainID(id), id)
	}
}
