package bazaar

import (
	"bytes"
	"testing"

	"github.com/iov-one/bazaar/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDerivedAddress(t *testing.T) {
	owner := bytes.Repeat([]byte{0x42}, AddressLength)
	id := []byte("0123456789abcdef")

	addr, bump, err := FindDerivedAddress(ProgramID, []byte("product"), owner, id)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())
	assert.False(t, isOnCurve(addr))

	// derivation is deterministic
	again, againBump, err := FindDerivedAddress(ProgramID, []byte("product"), owner, id)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	created, err := CreateDerivedAddress(ProgramID, bump, []byte("product"), owner, id)
	require.NoError(t, err)
	assert.Equal(t, addr, created)
	assert.NoError(t, VerifyDerivedAddress(addr, ProgramID, bump, []byte("product"), owner, id))

	// any other seed gives another address
	other, _, err := FindDerivedAddress(ProgramID, []byte("escrow"), owner, id)
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))
	err = VerifyDerivedAddress(other, ProgramID, bump, []byte("product"), owner, id)
	assert.True(t, errors.ErrSeeds.Is(err))

	// so does another bump, if it is off curve at all
	err = VerifyDerivedAddress(addr, ProgramID, bump-1, []byte("product"), owner, id)
	assert.True(t, errors.ErrSeeds.Is(err))
}

func TestDerivedAddressSeedLimits(t *testing.T) {
	cases := map[string]struct {
		seeds   [][]byte
		wantErr *errors.Error
	}{
		"no seeds": {
			seeds: nil,
		},
		"max seed length": {
			seeds: [][]byte{bytes.Repeat([]byte{1}, MaxSeedLen)},
		},
		"seed too long": {
			seeds:   [][]byte{bytes.Repeat([]byte{1}, MaxSeedLen+1)},
			wantErr: errors.ErrSeeds,
		},
		"max number of seeds": {
			seeds: make([][]byte, MaxSeeds-1),
		},
		"too many seeds": {
			seeds:   make([][]byte, MaxSeeds),
			wantErr: errors.ErrSeeds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, _, err := FindDerivedAddress(ProgramID, tc.seeds...)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestDerivedAddressInvalidProgram(t *testing.T) {
	_, _, err := FindDerivedAddress(Address("short"), []byte("seed"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestSeedCondition(t *testing.T) {
	seeds := [][]byte{[]byte("escrow"), bytes.Repeat([]byte{7}, AddressLength)}
	addr, bump, err := FindDerivedAddress(ProgramID, seeds...)
	require.NoError(t, err)

	cond, err := NewSeedCondition(ProgramID, bump, seeds...)
	require.NoError(t, err)
	assert.Equal(t, addr, cond.Address())
	assert.Equal(t, bump, cond.Bump())

	// mutating the input must not change the condition
	seeds[0][0] = 'X'
	assert.Equal(t, addr, cond.Address())
	assert.Contains(t, cond.String(), "seeds/")

	key := KeyCondition(bytes.Repeat([]byte{9}, AddressLength))
	assert.Equal(t, Address(key), key.Address())
}
