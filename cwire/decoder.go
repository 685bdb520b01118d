package cwire

// Decoder incrementally decodes a value of type T.
//
// PushBytes consumes every byte it can use from the front of p and returns
// how many it consumed and whether more input is needed. Once a decoder
// reports that it needs no more input it consumes nothing further. Errors
// returned by PushBytes are terminal.
//
// End returns the decoded value. Called before the decoder is satisfied, it
// returns an error wrapping ErrUnexpectedEOF. A decoder can be ended once;
// later calls return ErrDecoderFinished.
//
// ReadLimit returns the largest number of bytes the decoder can accept in the
// next call to PushBytes without reading past the end of the value.
type Decoder[T any] interface {
	PushBytes(p []byte) (int, bool, error)
	End() (T, error)
	ReadLimit() int
}

type Tuple2[A, B any] struct {
	First  A
	Second B
}

type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// sequence tracks which field of a compound decoder is active.
type sequence struct {
	stage  int
	fields int
	names  []string
	err    error
	ended  bool
}

func (s *sequence) fail(err error) error {
	fe := &FieldError{Index: s.stage, Err: err}
	if s.stage < len(s.names) {
		fe.Name = s.names[s.stage]
	}
	s.err = fe
	return fe
}

// begin guards End. It returns a non-nil error when End must not proceed.
func (s *sequence) begin() error {
	if s.ended {
		return ErrDecoderFinished
	}
	s.ended = true
	return s.err
}

// drive pushes p into d and, if d completes, stores its output in out.
func drive[T any](d Decoder[T], p []byte, out *T) (int, bool, error) {
	n, needMore, err := d.PushBytes(p)
	if err != nil {
		return n, false, err
	}
	if needMore {
		return n, false, nil
	}
	v, err := d.End()
	if err != nil {
		return n, false, err
	}
	*out = v
	return n, true, nil
}

// finish ends a sub-decoder that never reported completion.
func finish[T any](d Decoder[T], out *T) error {
	v, err := d.End()
	if err != nil {
		return err
	}
	*out = v
	return nil
}

// Decoder2 decodes two fields in order.
type Decoder2[A, B any] struct {
	sequence
	a   Decoder[A]
	b   Decoder[B]
	out Tuple2[A, B]
}

func NewDecoder2[A, B any](a Decoder[A], b Decoder[B]) *Decoder2[A, B] {
	return &Decoder2[A, B]{sequence: sequence{fields: 2}, a: a, b: b}
}

// Named attaches field names reported in FieldError.
func (d *Decoder2[A, B]) Named(names ...string) *Decoder2[A, B] {
	d.names = names
	return d
}

func (d *Decoder2[A, B]) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	var total int
	for d.stage < d.fields {
		var n int
		var done bool
		var err error
		switch d.stage {
		case 0:
			n, done, err = drive(d.a, p[total:], &d.out.First)
		case 1:
			n, done, err = drive(d.b, p[total:], &d.out.Second)
		}
		total += n
		if err != nil {
			return total, false, d.fail(err)
		}
		if !done {
			return total, true, nil
		}
		d.stage++
	}
	return total, false, nil
}

func (d *Decoder2[A, B]) End() (Tuple2[A, B], error) {
	var zero Tuple2[A, B]
	if err := d.begin(); err != nil {
		return zero, err
	}
	for ; d.stage < d.fields; d.stage++ {
		var err error
		switch d.stage {
		case 0:
			err = finish(d.a, &d.out.First)
		case 1:
			err = finish(d.b, &d.out.Second)
		}
		if err != nil {
			return zero, d.fail(err)
		}
	}
	return d.out, nil
}

func (d *Decoder2[A, B]) ReadLimit() int {
	if d.err != nil {
		return 0
	}
	switch d.stage {
	case 0:
		return d.a.ReadLimit()
	case 1:
		return d.b.ReadLimit()
	default:
		return 0
	}
}

// Decoder3 decodes three fields in order.
type Decoder3[A, B, C any] struct {
	sequence
	a   Decoder[A]
	b   Decoder[B]
	c   Decoder[C]
	out Tuple3[A, B, C]
}

func NewDecoder3[A, B, C any](a Decoder[A], b Decoder[B], c Decoder[C]) *Decoder3[A, B, C] {
	return &Decoder3[A, B, C]{sequence: sequence{fields: 3}, a: a, b: b, c: c}
}

// Named attaches field names reported in FieldError.
func (d *Decoder3[A, B, C]) Named(names ...string) *Decoder3[A, B, C] {
	d.names = names
	return d
}

func (d *Decoder3[A, B, C]) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	var total int
	for d.stage < d.fields {
		var n int
		var done bool
		var err error
		switch d.stage {
		case 0:
			n, done, err = drive(d.a, p[total:], &d.out.First)
		case 1:
			n, done, err = drive(d.b, p[total:], &d.out.Second)
		case 2:
			n, done, err = drive(d.c, p[total:], &d.out.Third)
		}
		total += n
		if err != nil {
			return total, false, d.fail(err)
		}
		if !done {
			return total, true, nil
		}
		d.stage++
	}
	return total, false, nil
}

func (d *Decoder3[A, B, C]) End() (Tuple3[A, B, C], error) {
	var zero Tuple3[A, B, C]
	if err := d.begin(); err != nil {
		return zero, err
	}
	for ; d.stage < d.fields; d.stage++ {
		var err error
		switch d.stage {
		case 0:
			err = finish(d.a, &d.out.First)
		case 1:
			err = finish(d.b, &d.out.Second)
		case 2:
			err = finish(d.c, &d.out.Third)
		}
		if err != nil {
			return zero, d.fail(err)
		}
	}
	return d.out, nil
}

func (d *Decoder3[A, B, C]) ReadLimit() int {
	if d.err != nil {
		return 0
	}
	switch d.stage {
	case 0:
		return d.a.ReadLimit()
	case 1:
		return d.b.ReadLimit()
	case 2:
		return d.c.ReadLimit()
	default:
		return 0
	}
}

// Decoder4 decodes four fields in order.
type Decoder4[A, B, C, D any] struct {
	sequence
	a   Decoder[A]
	b   Decoder[B]
	c   Decoder[C]
	d   Decoder[D]
	out Tuple4[A, B, C, D]
}

func NewDecoder4[A, B, C, D any](a Decoder[A], b Decoder[B], c Decoder[C], d Decoder[D]) *Decoder4[A, B, C, D] {
	return &Decoder4[A, B, C, D]{sequence: sequence{fields: 4}, a: a, b: b, c: c, d: d}
}

// Named attaches field names reported in FieldError.
func (d *Decoder4[A, B, C, D]) Named(names ...string) *Decoder4[A, B, C, D] {
	d.names = names
	return d
}

func (d *Decoder4[A, B, C, D]) PushBytes(p []byte) (int, bool, error) {
	if d.err != nil {
		return 0, false, d.err
	}
	var total int
	for d.stage < d.fields {
		var n int
		var done bool
		var err error
		switch d.stage {
		case 0:
			n, done, err = drive(d.a, p[total:], &d.out.First)
		case 1:
			n, done, err = drive(d.b, p[total:], &d.out.Second)
		case 2:
			n, done, err = drive(d.c, p[total:], &d.out.Third)
		case 3:
			n, done, err = drive(d.d, p[total:], &d.out.Fourth)
		}
		total += n
		if err != nil {
			return total, false, d.fail(err)
		}
		if !done {
			return total, true, nil
		}
		d.stage++
	}
	return total, false, nil
}

func (d *Decoder4[A, B, C, D]) End() (Tuple4[A, B, C, D], error) {
	var zero Tuple4[A, B, C, D]
	if err := d.begin(); err != nil {
		return zero, err
	}
	for ; d.stage < d.fields; d.stage++ {
		var err error
		switch d.stage {
		case 0:
			err = finish(d.a, &d.out.First)
		case 1:
			err = finish(d.b, &d.out.Second)
		case 2:
			err = finish(d.c, &d.out.Third)
		case 3:
			err = finish(d.d, &d.out.Fourth)
		}
		if err != nil {
			return zero, d.fail(err)
		}
	}
	return d.out, nil
}

func (d *Decoder4[A, B, C, D]) ReadLimit() int {
	if d.err != nil {
		return 0
	}
	switch d.stage {
	case 0:
		return d.a.ReadLimit()
	case 1:
		return d.b.ReadLimit()
	case 2:
		return d.c.ReadLimit()
	case 3:
		return d.d.ReadLimit()
	default:
		return 0
	}
}
