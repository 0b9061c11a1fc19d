package witness

import "errors"

// ErrMalformedInput is returned when the host-to-core input stream violates
// a length, bound, or integer-range constraint while being read. It is the
// only error this package raises; circuit-level rejections belong to the
// circuit package.
var ErrMalformedInput = errors.New("witness: malformed input stream")
