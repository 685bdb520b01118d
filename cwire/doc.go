/*
Package cwire implements the Bitcoin consensus encoding primitives used by the
raw PSBT record format.

Fundamental types:

	- compact size: Encoded as a single byte for values up to 0xfc. Larger
	  values are encoded as a marker byte followed by a little-endian
	  integer: 0xfd + uint16, 0xfe + uint32 or 0xff + uint64. Only the
	  shortest form is accepted when decoding.
	- [N]byte: Encoded as N raw bytes.
	- []byte: Encoded as a compact size length prefix followed by the raw
	  bytes.

Encoding and decoding are streaming. An Encoder hands out its serialization
one contiguous chunk at a time:

	enc := cwire.NewEncoder2(
		cwire.NewCompactSizeEncoder(uint64(len(payload))),
		cwire.NewBytesEncoder(payload),
	)
	b := cwire.EncodeToVec(enc)

A Decoder accepts input in arbitrarily sized pieces and reports whether it
needs more. Compound values are decoded by running sub-decoders in order:

	dec := cwire.NewDecoder2[uint64, []byte](
		cwire.NewCompactSizeDecoder(),
		cwire.NewByteVecDecoder(),
	)
	for _, chunk := range chunks {
		n, needMore, err := dec.PushBytes(chunk)
		...
	}
	out, err := dec.End()

Callers holding a complete buffer should use DecodeFromSlice, which also
rejects trailing bytes. Callers reading from a blocking source should use
DecodeFromRead, which never reads past the end of the decoded value.

Every variable-length allocation made while decoding is checked against
MaxVecSize before the allocation happens.
*/
package cwire
