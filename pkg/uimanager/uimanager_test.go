package uimanager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCertificateHash(t *testing.T) {
	t.Parallel()

	h, err := NewCertificateHash("0x00000000000000000000000000000000000000000000000000000000000000ff")
	require.NoError(t, err)
	require.Equal(t, byte(0xff), h[31])
	require.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000ff", h.String())

	invalid := []string{
		"",
		"ff",
		"0x1234",
		"0x0000000000000000000000000000000000000000000000000000000000000000",
		"0x00000000000000000000000000000000000000000000000000000000000000ff00",
	}
	for _, s := range invalid {
		_, err := NewCertificateHash(s)
		require.Error(t, err, s)
	}
}

func TestParseCID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		cid  string
	}{
		{"CID: QmTestCID", "QmTestCID"},
		{"CID:QmTestCID, Timestamp: 1700000000", "QmTestCID"},
		{"Hash: 0xab, CID:   bafybeigdyr_x1, Timestamp: 1", "bafybeigdyr_x1"},
	}
	for _, tc := range tests {
		cid, err := ParseCID(tc.info)
		require.NoError(t, err)
		require.Equal(t, tc.cid, cid)

		c, err := Certificate{Exists: true, Info: tc.info}.CID()
		require.NoError(t, err)
		require.Equal(t, tc.cid, c)
	}

	for _, info := range []string{"", "QmTestCID", "CID: ", "cid: QmTestCID"} {
		_, err := ParseCID(info)
		require.Error(t, err, info)
	}
}
