// Package encoding provides text decoding for fixed-size header fields in binary track files.
package encoding

import (
	"bytes"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Latin1ToUTF8 converts ISO-8859-1 encoded bytes to a UTF-8 string.
// Returns the bytes as-is if conversion fails.
func Latin1ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToLatin1 converts a UTF-8 string to ISO-8859-1 bytes.
// Characters outside Latin-1 are replaced by the encoder's substitute.
func UTF8ToLatin1(s string) []byte {
	enc := xencoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	result, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// FixedString decodes a NUL-terminated, NUL-padded header field.
func FixedString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return Latin1ToUTF8(data)
}

// PutFixedString encodes s into a fixed-size NUL-padded field.
// Strings longer than size are truncated.
func PutFixedString(s string, size int) []byte {
	out := make([]byte, size)
	copy(out, UTF8ToLatin1(s))
	return out
}
