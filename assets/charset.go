package assets

import (
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "ISO-8859-1"

// LookupCharset resolves an IANA charset name such as "UTF-8" or "windows-1252".
// Matching is case-insensitive.
func LookupCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultCharset
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is registered but not supported", name)
	}
	return enc, nil
}

// decodeAll reads r to the end, converting from enc to UTF-8.
func decodeAll(r io.Reader, enc encoding.Encoding) ([]byte, error) {
	return io.ReadAll(transform.NewReader(r, enc.NewDecoder()))
}

// newEncodingWriter converts UTF-8 written to it into enc. Close flushes the
// final bytes but does not close w.
func newEncodingWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	return transform.NewWriter(w, enc.NewEncoder())
}

// escapeUnsupported rewrites every rune enc cannot represent as an escape sequence
// of t: \uXXXX for JavaScript (a surrogate pair above the BMP) and "\XXXX " for CSS.
// Bytes that are not valid UTF-8 are left for the encoder.
func escapeUnsupported(src []byte, enc encoding.Encoding, t FileType) []byte {
	encoder := enc.NewEncoder()
	known := make(map[rune]bool)

	var out []byte // nil until the first escape
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		keep := r < utf8.RuneSelf || (r == utf8.RuneError && size == 1)
		if !keep {
			ok, seen := known[r]
			if !seen {
				_, err := encoder.Bytes(src[i : i+size])
				ok = err == nil
				known[r] = ok
			}
			keep = ok
		}
		if keep {
			if out != nil {
				out = append(out, src[i:i+size]...)
			}
			i += size
			continue
		}
		if out == nil {
			out = append(make([]byte, 0, len(src)+16), src[:i]...)
		}
		out = appendEscape(out, r, t)
		i += size
	}
	if out == nil {
		return src
	}
	return out
}

func appendEscape(out []byte, r rune, t FileType) []byte {
	if t == CSS {
		return fmt.Appendf(out, "\\%x ", r)
	}
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		return fmt.Appendf(out, "\\u%04x\\u%04x", hi, lo)
	}
	return fmt.Appendf(out, "\\u%04x", r)
}
