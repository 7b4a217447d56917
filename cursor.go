package pager

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

var _encoder = base64.RawURLEncoding

// EncodeCursor encodes a cursor-column value into an opaque, URL-safe token.
// The value is first reduced to its canonical string form: RFC 3339 for
// timestamps, decimal for numbers, the literal text for strings.
func EncodeCursor(value any) string {
	return _encoder.EncodeToString([]byte(canonicalCursorString(value)))
}

// DecodeCursor decodes an opaque cursor token back into the canonical string
// form it was built from. A malformed token yields ErrInvalidCursor; treat
// it as a client error, not a server fault.
func DecodeCursor(token string) (string, error) {
	raw, err := _encoder.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: failed to decode base64 encoded cursor: %v", ErrInvalidCursor, err)
	}

	return string(raw), nil
}

func canonicalCursorString(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(time.RFC3339Nano)
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// parseCursorValue prepares a decoded cursor value for use in a comparison
// condition. Values that parse as timestamps are compared as time.Time so
// the database sees a typed argument instead of a string literal.
func parseCursorValue(raw string) any {
	dst := time.Time{}
	if err := dst.UnmarshalText([]byte(raw)); err == nil {
		return dst
	}

	return raw
}
