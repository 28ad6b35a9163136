package cell

import (
	"testing"

	"github.com/readtable/readtable/errs"
	"github.com/stretchr/testify/require"
)

func sampleEnvelope() Envelope {
	return Envelope{Entries: []Entry{
		{Name: "seq", Payload: []byte("compressed-seq-bytes")},
		{Name: "qual", Payload: []byte("compressed-qual-bytes")},
		{Name: "pos", Payload: []byte{}},
	}}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	env := sampleEnvelope()
	data := env.Marshal()

	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	require.Equal(t, env.Entries, got.Entries)
}

func TestEnvelope_Get(t *testing.T) {
	env := sampleEnvelope()

	payload, ok := env.Get("qual")
	require.True(t, ok)
	require.Equal(t, []byte("compressed-qual-bytes"), payload)

	_, ok = env.Get("missing")
	require.False(t, ok)
}

func TestEnvelope_Deterministic(t *testing.T) {
	env := sampleEnvelope()
	require.Equal(t, env.Marshal(), env.Marshal())
}

func TestEnvelope_Empty(t *testing.T) {
	env := Envelope{}
	data := env.Marshal()

	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	require.Empty(t, got.Entries)
}

func TestUnmarshalEnvelope_BadMagic(t *testing.T) {
	data := sampleEnvelope().Marshal()
	data[0] ^= 0xff

	_, err := UnmarshalEnvelope(data)
	require.ErrorIs(t, err, errs.ErrBadEnvelope)
}

func TestUnmarshalEnvelope_ChecksumMismatch(t *testing.T) {
	data := sampleEnvelope().Marshal()
	data[len(data)-1] ^= 0xff

	_, err := UnmarshalEnvelope(data)
	require.ErrorIs(t, err, errs.ErrBadEnvelope)
}

func TestUnmarshalEnvelope_Truncated(t *testing.T) {
	data := sampleEnvelope().Marshal()

	_, err := UnmarshalEnvelope(data[:5])
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestUnmarshalEnvelope_UnsupportedVersion(t *testing.T) {
	data := sampleEnvelope().Marshal()
	data[4] = 0xee

	_, err := UnmarshalEnvelope(data)
	require.ErrorIs(t, err, errs.ErrBadEnvelope)
}
