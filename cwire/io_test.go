package cwire

import (
	"bufio"
	"bytes"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeFromRead_MatchesSlice(t *testing.T) {
	p := packet{version: []byte{9, 0, 0, 0}, payload: []byte{1, 2, 3, 4, 5, 6}, checksum: []byte{7, 8, 9, 10}}
	encoded := EncodeToVec(p.Encoder())

	fromSlice, err := DecodeFromSlice[packet](newPacketDecoder(), encoded)
	require.NoError(t, err)

	fromRead, err := DecodeFromRead[packet](newPacketDecoder(), bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, fromSlice, fromRead)

	oneByte, err := DecodeFromRead[packet](newPacketDecoder(), iotest.OneByteReader(bytes.NewReader(encoded)))
	require.NoError(t, err)
	require.Equal(t, fromSlice, oneByte)

	halfReader, err := DecodeFromRead[packet](newPacketDecoder(), iotest.HalfReader(bytes.NewReader(encoded)))
	require.NoError(t, err)
	require.Equal(t, fromSlice, halfReader)
}

func TestDecodeFromRead_StopsAtValueEnd(t *testing.T) {
	p := packet{version: []byte{1, 1, 1, 1}, payload: []byte("abc"), checksum: []byte{2, 2, 2, 2}}
	encoded := EncodeToVec(p.Encoder())
	trailer := []byte("next record")

	r := bytes.NewReader(append(append([]byte{}, encoded...), trailer...))
	decoded, err := DecodeFromRead[packet](newPacketDecoder(), r)
	require.NoError(t, err)
	require.Equal(t, p, decoded)
	require.Equal(t, len(trailer), r.Len())
}

func TestDecodeFromRead_Truncated(t *testing.T) {
	encoded := mustHex(t, "01000000"+"05"+"aabb")
	_, err := DecodeFromRead[packet](newPacketDecoder(), bytes.NewReader(encoded))
	requireFieldError(t, err, 1)
	require.True(t, errors.Is(err, ErrUnexpectedEOF))
}

func TestDecodeFromRead_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := DecodeFromRead[packet](newPacketDecoder(), iotest.ErrReader(boom))
	require.True(t, errors.Is(err, boom))
}

func TestDecodeFromRead_AllocationCap(t *testing.T) {
	// a huge declared length must fail without the reader being drained
	input := append(AppendCompactSize(nil, MaxVecSize+1), bytes.Repeat([]byte{0x01}, 16)...)
	r := bytes.NewReader(input)
	_, err := DecodeFromRead[[]byte](NewByteVecDecoder(), r)
	require.True(t, errors.Is(err, ErrOversizedAllocation))
	require.Equal(t, 16, r.Len())
}

func TestDecodeFromBuffered(t *testing.T) {
	p := packet{version: []byte{4, 3, 2, 1}, payload: bytes.Repeat([]byte{0x55}, 300), checksum: []byte{1, 2, 3, 4}}
	encoded := EncodeToVec(p.Encoder())
	trailer := []byte{0xee, 0xff}

	br := bufio.NewReaderSize(bytes.NewReader(append(append([]byte{}, encoded...), trailer...)), 16)
	decoded, err := DecodeFromBuffered[packet](newPacketDecoder(), br)
	require.NoError(t, err)
	require.Equal(t, p, decoded)

	rest := make([]byte, 4)
	n, _ := br.Read(rest)
	require.Equal(t, trailer, rest[:n])

	_, err = DecodeFromBuffered[packet](newPacketDecoder(), bufio.NewReader(bytes.NewReader(encoded[:10])))
	require.True(t, errors.Is(err, ErrUnexpectedEOF))
}

type failingWriter struct {
	after int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("sink closed")
	}
	w.after--
	return len(p), nil
}

func TestEncodeToWriter(t *testing.T) {
	p := packet{version: []byte{1, 0, 0, 0}, payload: []byte{0xaa}, checksum: []byte{0, 0, 0, 0}}

	var buf bytes.Buffer
	n, err := EncodeToWriter(&buf, p.Encoder())
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)
	require.Equal(t, EncodeToVec(p.Encoder()), buf.Bytes())

	n, err = EncodeToWriter(&failingWriter{after: 2}, p.Encoder())
	require.Error(t, err)
	require.Contains(t, err.Error(), "sink closed")
	require.EqualValues(t, 5, n)
}

func TestByteVecIO(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteByteVec(&buf, []byte("hello")))
	require.NoError(t, WriteByteVec(&buf, nil))
	require.Equal(t, []byte{0x05, 'h', 'e', 'l', 'l', 'o', 0x00}, buf.Bytes())

	first, err := ReadByteVec(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), first)
	second, err := ReadByteVec(&buf)
	require.NoError(t, err)
	require.Empty(t, second)
}
