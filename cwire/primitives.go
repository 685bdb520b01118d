package cwire

// BytesEncoder emits a byte string, optionally preceded by its compact size
// length. It does not copy the input.
type BytesEncoder struct {
	prefix [9]byte
	chunks [2][]byte
	n      int
	i      int
}

// NewBytesEncoder emits b as-is.
func NewBytesEncoder(b []byte) *BytesEncoder {
	e := &BytesEncoder{n: 1}
	e.chunks[0] = b
	return e
}

// NewPrefixedBytesEncoder emits the compact size length of b followed by b.
func NewPrefixedBytesEncoder(b []byte) *BytesEncoder {
	e := &BytesEncoder{n: 2}
	e.chunks[0] = AppendCompactSize(e.prefix[:0], uint64(len(b)))
	e.chunks[1] = b
	return e
}

func (e *BytesEncoder) Chunk() []byte {
	if e.i >= e.n {
		return nil
	}
	return e.chunks[e.i]
}

func (e *BytesEncoder) Advance() bool {
	if e.i >= e.n {
		return false
	}
	e.i++
	return e.i < e.n
}

// ArrayEncoder emits a private copy of a fixed-size byte array.
type ArrayEncoder struct {
	BytesEncoder
}

func NewArrayEncoder(b []byte) *ArrayEncoder {
	buf := make([]byte, len(b))
	copy(buf, b)
	e := &ArrayEncoder{}
	e.n = 1
	e.chunks[0] = buf
	return e
}

// ArrayDecoder reads exactly size bytes.
type ArrayDecoder struct {
	buf   []byte
	size  int
	ended bool
}

// NewArrayDecoder allocates size bytes up front. Callers decoding a length
// taken from the input must check it against MaxVecSize first.
func NewArrayDecoder(size int) *ArrayDecoder {
	return &ArrayDecoder{
		buf:  make([]byte, 0, size),
		size: size,
	}
}

func (d *ArrayDecoder) PushBytes(p []byte) (int, bool, error) {
	take := min(d.size-len(d.buf), len(p))
	d.buf = append(d.buf, p[:take]...)
	return take, len(d.buf) < d.size, nil
}

func (d *ArrayDecoder) End() ([]byte, error) {
	if d.ended {
		return nil, ErrDecoderFinished
	}
	d.ended = true
	if len(d.buf) < d.size {
		return nil, missing("array", d.size-len(d.buf))
	}
	return d.buf, nil
}

func (d *ArrayDecoder) ReadLimit() int {
	return d.size - len(d.buf)
}

// ByteVecDecoder reads a compact size length followed by that many bytes.
type ByteVecDecoder struct {
	length CompactSizeDecoder
	data   *ArrayDecoder
	err    error
	ended  bool
}

func NewByteVecDecoder() *ByteVecDecoder {
	return &ByteVecDecoder{}
}

func (d *ByteVecDecoder) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}

	var total int
	if d.data == nil {
		n, needMore, err := d.length.PushBytes(p)
		total += n
		if err != nil {
			d.err = err
			return total, false, err
		}
		if needMore {
			return total, true, nil
		}
		l, err := d.length.End()
		if err != nil {
			d.err = err
			return total, false, err
		}
		if l > MaxVecSize {
			d.err = oversized(l)
			return total, false, d.err
		}
		d.data = NewArrayDecoder(int(l))
	}

	n, needMore, err := d.data.PushBytes(p[total:])
	return total + n, needMore, err
}

func (d *ByteVecDecoder) End() ([]byte, error) {
	if d.ended {
		return nil, ErrDecoderFinished
	}
	d.ended = true
	if d.err != nil {
		return nil, d.err
	}
	if d.data == nil {
		_, err := d.length.End()
		return nil, err
	}
	return d.data.End()
}

func (d *ByteVecDecoder) ReadLimit() int {
	if d.err != nil {
		return 0
	}
	if d.data == nil {
		return d.length.ReadLimit()
	}
	return d.data.ReadLimit()
}

// TailDecoder takes whatever input remains, up to max bytes. It never fails
// for lack of input, so it is only meaningful as the last field of a value
// decoded from a bounded buffer. Input beyond max is left unconsumed.
type TailDecoder struct {
	buf   []byte
	max   int
	ended bool
}

func NewTailDecoder(max int) *TailDecoder {
	return &TailDecoder{max: max}
}

func (d *TailDecoder) PushBytes(p []byte) (int, bool, error) {
	take := min(d.max-len(d.buf), len(p))
	d.buf = append(d.buf, p[:take]...)
	return take, len(d.buf) < d.max, nil
}

func (d *TailDecoder) End() ([]byte, error) {
	if d.ended {
		return nil, ErrDecoderFinished
	}
	d.ended = true
	if d.buf == nil {
		return []byte{}, nil
	}
	return d.buf, nil
}

func (d *TailDecoder) ReadLimit() int {
	return d.max - len(d.buf)
}
