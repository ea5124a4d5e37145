package bazaar

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/iov-one/bazaar/errors"
)

func TestAddressJSON(t *testing.T) {
	addr := Address(bytes.Repeat([]byte{0xA1}, AddressLength))

	raw, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got Address
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !addr.Equals(got) {
		t.Fatalf("want %s, got %s", addr, got)
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr Address
	}{
		"default base58 decoding": {
			json:     `"6NSfzFwHeuDCLzFwAo3yQ2KLLb9bThvkEVyeWChoAqBa"`,
			wantAddr: ProgramID,
		},
		"hex decoding": {
			json:     `"hex:` + "0101010101010101010101010101010101010101010101010101010101010101" + `"`,
			wantAddr: Address(bytes.Repeat([]byte{1}, AddressLength)),
		},
		"invalid hex": {
			json:    `"hex:zz"`,
			wantErr: errors.ErrInput,
		},
		"too short": {
			json:    `"3mJr7AoUXx2Wqd"`,
			wantErr: errors.ErrInput,
		},
		"empty": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !tc.wantAddr.Equals(a) {
				t.Fatalf("expected %v but got %v", tc.wantAddr, a)
			}
		})
	}
}

func TestAddressString(t *testing.T) {
	if got := Address(nil).String(); got != "(nil)" {
		t.Fatalf("unexpected nil address representation: %q", got)
	}
	if got := ProgramID.String(); got != "6NSfzFwHeuDCLzFwAo3yQ2KLLb9bThvkEVyeWChoAqBa" {
		t.Fatalf("unexpected representation: %q", got)
	}
}
