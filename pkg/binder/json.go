package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize limits JSON request bodies to 64 KiB.
const DefaultMaxJSONSize = 64 << 10

// JSONOption configures the JSON binder.
type JSONOption func(*jsonOptions)

type jsonOptions struct {
	maxSize int64
}

// WithMaxSize overrides DefaultMaxJSONSize.
func WithMaxSize(n int64) JSONOption {
	return func(o *jsonOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// JSON decodes an application/json body into v. Unknown fields, trailing
// data and bodies over the size limit are rejected.
func JSON(opts ...JSONOption) Func {
	o := jsonOptions{maxSize: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request, v any) error {
		switch mt := mediaType(r); mt {
		case "":
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		case "application/json":
		default:
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, o.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > o.maxSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, o.maxSize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}
		return nil
	}
}
