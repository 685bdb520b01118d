package cwire

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// packet is a small compound record used to exercise the combinators:
// a 4-byte version, a length-prefixed payload and a 4-byte checksum.
type packet struct {
	version  []byte
	payload  []byte
	checksum []byte
}

func (p packet) Encoder() Encoder {
	return NewEncoder4(
		NewArrayEncoder(p.version),
		NewCompactSizeEncoder(uint64(len(p.payload))),
		NewBytesEncoder(p.payload),
		NewArrayEncoder(p.checksum),
	)
}

type packetDecoder struct {
	inner *Decoder3[[]byte, []byte, []byte]
}

func newPacketDecoder() *packetDecoder {
	return &packetDecoder{
		inner: NewDecoder3[[]byte, []byte, []byte](
			NewArrayDecoder(4),
			NewByteVecDecoder(),
			NewArrayDecoder(4),
		).Named("version", "payload", "checksum"),
	}
}

func (d *packetDecoder) PushBytes(p []byte) (int, bool, error) {
	return d.inner.PushBytes(p)
}

func (d *packetDecoder) End() (packet, error) {
	out, err := d.inner.End()
	if err != nil {
		return packet{}, err
	}
	return packet{version: out.First, payload: out.Second, checksum: out.Third}, nil
}

func (d *packetDecoder) ReadLimit() int {
	return d.inner.ReadLimit()
}

var _ Decoder[packet] = (*packetDecoder)(nil)
var _ Encodable = packet{}

func requireFieldError(t *testing.T, err error, index int) *FieldError {
	var fe *FieldError
	require.True(t, errors.As(err, &fe), "expected FieldError, got %v", err)
	require.Equal(t, index, fe.Index)
	return fe
}

func TestPacket_SmallPayload(t *testing.T) {
	vector := mustHex(t, "01000000"+"03"+"aabbcc"+"deadbeef")

	p, err := DecodeFromSlice[packet](newPacketDecoder(), vector)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 0, 0}, p.version)
	require.Equal(t, []byte{0xaa, 0xbb, 0xcc}, p.payload)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, p.checksum)
	require.Equal(t, vector, EncodeToVec(p.Encoder()))
}

func TestPacket_CompactSizeBoundary(t *testing.T) {
	p := packet{
		version:  []byte{2, 0, 0, 0},
		payload:  bytes.Repeat([]byte{0x42}, 0xfd),
		checksum: []byte{9, 8, 7, 6},
	}
	encoded := EncodeToVec(p.Encoder())
	require.Equal(t, []byte{2, 0, 0, 0, 0xfd, 0xfd, 0x00}, encoded[:7])

	decoded, err := DecodeFromSlice[packet](newPacketDecoder(), encoded)
	require.NoError(t, err)
	require.Equal(t, p, decoded)
}

func TestPacket_RejectsNonMinimalLength(t *testing.T) {
	vector := mustHex(t, "01000000"+"fdfc00"+"deadbeef")
	_, err := DecodeFromSlice[packet](newPacketDecoder(), vector)
	fe := requireFieldError(t, err, 1)
	require.Equal(t, "payload", fe.Name)
	require.True(t, errors.Is(err, ErrNonMinimalCompactSize))
}

func TestPacket_RejectsTruncatedPayload(t *testing.T) {
	vector := mustHex(t, "01000000"+"03"+"aa")
	_, err := DecodeFromSlice[packet](newPacketDecoder(), vector)
	requireFieldError(t, err, 1)
	require.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestPacket_RejectsTruncatedChecksum(t *testing.T) {
	p := packet{version: []byte{1, 2, 3, 4}, payload: []byte{5}, checksum: []byte{6, 7, 8, 9}}
	encoded := EncodeToVec(p.Encoder())
	for i := 0; i < len(encoded); i++ {
		_, err := DecodeFromSlice[packet](newPacketDecoder(), encoded[:i])
		require.True(t, errors.Is(err, ErrUnexpectedEOF), "prefix of %d bytes", i)
	}
}

func TestPacket_ChunkInvariance(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	p := packet{version: []byte{3, 0, 0, 0}, payload: payload, checksum: []byte{0xaa, 0xbb, 0xcc, 0xdd}}
	encoded := EncodeToVec(p.Encoder())

	expected, err := DecodeFromSlice[packet](newPacketDecoder(), encoded)
	require.NoError(t, err)
	for _, chunk := range []int{1, 2, 5, 8, 64, len(encoded)} {
		actual, err := pushChunked[packet](t, newPacketDecoder(), encoded, chunk)
		require.NoError(t, err)
		require.Equal(t, expected, actual, "chunk size %d", chunk)
	}
}

func TestPacket_TrailingBytes(t *testing.T) {
	vector := mustHex(t, "01000000"+"00"+"deadbeef"+"ff")
	_, err := DecodeFromSlice[packet](newPacketDecoder(), vector)
	require.True(t, errors.Is(err, ErrTrailingBytes))
	var tbe *TrailingBytesError
	require.True(t, errors.As(err, &tbe))
	require.Equal(t, 1, tbe.Remaining)
}

func TestDecoder2_ZeroByteField(t *testing.T) {
	dec := NewDecoder2[[]byte, []byte](NewArrayDecoder(0), NewArrayDecoder(2))

	n, needMore, err := dec.PushBytes(nil)
	require.NoError(t, err)
	require.True(t, needMore)
	require.Equal(t, 0, n)
	require.Equal(t, 2, dec.ReadLimit())

	n, needMore, err = dec.PushBytes([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)
	require.False(t, needMore)
	require.Equal(t, 2, n)

	// satisfied decoders take nothing
	n, needMore, err = dec.PushBytes([]byte{0x04})
	require.NoError(t, err)
	require.False(t, needMore)
	require.Equal(t, 0, n)
	require.Equal(t, 0, dec.ReadLimit())

	out, err := dec.End()
	require.NoError(t, err)
	require.Empty(t, out.First)
	require.Equal(t, []byte{0x01, 0x02}, out.Second)

	_, err = dec.End()
	require.Equal(t, ErrDecoderFinished, err)
}

func TestDecoder_EndBeforeInput(t *testing.T) {
	dec := NewDecoder2[uint64, uint64](NewCompactSizeDecoder(), NewCompactSizeDecoder())
	_, err := dec.End()
	requireFieldError(t, err, 0)
	require.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestDecoder_ErrorIsSticky(t *testing.T) {
	dec := NewDecoder2[uint64, uint64](NewCompactSizeDecoder(), NewCompactSizeDecoder())
	_, _, err := dec.PushBytes([]byte{0x01, 0xfd, 0x00, 0x00})
	requireFieldError(t, err, 1)

	n, needMore, err2 := dec.PushBytes([]byte{0x01})
	require.Equal(t, 0, n)
	require.False(t, needMore)
	require.Equal(t, err, err2)
	require.Equal(t, 0, dec.ReadLimit())
}

func TestDecoder_NestedFieldErrors(t *testing.T) {
	inner := NewDecoder2[uint64, uint64](NewCompactSizeDecoder(), NewCompactSizeDecoder()).Named("lo", "hi")
	dec := NewDecoder2[uint64, Tuple2[uint64, uint64]](NewCompactSizeDecoder(), inner).Named("tag", "range")

	_, err := DecodeFromSlice[Tuple2[uint64, Tuple2[uint64, uint64]]](dec, mustHex(t, "07"+"05"+"fe01000000"))
	outer := requireFieldError(t, err, 1)
	require.Equal(t, "range", outer.Name)
	innerErr := requireFieldError(t, outer.Err, 1)
	require.Equal(t, "hi", innerErr.Name)
	require.True(t, errors.Is(err, ErrNonMinimalCompactSize))
	require.Contains(t, err.Error(), "field 1 (range): field 1 (hi)")
}

func TestDecoder4(t *testing.T) {
	encoded := EncodeToVec(NewEncoder4(
		NewCompactSizeEncoder(1),
		NewPrefixedBytesEncoder([]byte("ab")),
		NewCompactSizeEncoder(0x10000),
		NewArrayEncoder([]byte{9, 9}),
	))
	for _, chunk := range []int{1, 2, 5, 8, 64} {
		dec := NewDecoder4[uint64, []byte, uint64, []byte](
			NewCompactSizeDecoder(),
			NewByteVecDecoder(),
			NewCompactSizeDecoder(),
			NewArrayDecoder(2),
		)
		out, err := pushChunked[Tuple4[uint64, []byte, uint64, []byte]](t, dec, encoded, chunk)
		require.NoError(t, err)
		require.EqualValues(t, 1, out.First)
		require.Equal(t, []byte("ab"), out.Second)
		require.EqualValues(t, 0x10000, out.Third)
		require.Equal(t, []byte{9, 9}, out.Fourth)
	}

	dec := NewDecoder4[uint64, []byte, uint64, []byte](
		NewCompactSizeDecoder(),
		NewByteVecDecoder(),
		NewCompactSizeDecoder(),
		NewArrayDecoder(2),
	)
	_, err := DecodeFromSlice[Tuple4[uint64, []byte, uint64, []byte]](dec, encoded[:len(encoded)-1])
	requireFieldError(t, err, 3)
}

func TestChain_Advance(t *testing.T) {
	enc := NewEncoder3(
		NewBytesEncoder(nil),
		NewPrefixedBytesEncoder([]byte{0x01}),
		NewCompactSizeEncoder(0xfd),
	)
	var chunks [][]byte
	for {
		chunks = append(chunks, append([]byte{}, enc.Chunk()...))
		if !enc.Advance() {
			break
		}
	}
	require.Equal(t, [][]byte{{}, {0x01}, {0x01}, {0xfd, 0xfd, 0x00}}, chunks)
	require.Nil(t, enc.Chunk())
	require.False(t, enc.Advance())
}
