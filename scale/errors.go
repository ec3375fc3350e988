package scale

import "errors"

var (
	ErrUnexpectedEOF       = errors.New("scale: unexpected end of input")
	ErrDepthLimitExceeded  = errors.New("scale: nesting depth limit exceeded")
	ErrInvalidBool         = errors.New("scale: invalid bool value")
	ErrInvalidVariant      = errors.New("scale: invalid variant index")
	ErrInvalidUTF8         = errors.New("scale: string is not valid utf-8")
	ErrCompactOverflow     = errors.New("scale: compact integer overflows uint64")
	ErrNonCanonicalCompact = errors.New("scale: non-canonical compact encoding")
	ErrSequenceTooLong     = errors.New("scale: sequence length exceeds input")
	ErrUnsupportedType     = errors.New("scale: unsupported type")
)
