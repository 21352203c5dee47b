package extradata

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported extra data type")
	ErrMalformedBlob   = errors.New("malformed extra data blob")
)
