package flagvalue

import (
	"flag"
	"io"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Encoding is a flag that names a character encoding
// by its WHATWG label (e.g. "utf-8", "latin1", "shift_jis").
//
// The zero value is UTF-8.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

var _ flag.Getter = (*Encoding)(nil)

// Get returns the [encoding.Encoding] for this flag,
// or nil for UTF-8.
func (e *Encoding) Get() any { return e.enc }

// String returns the canonical name of the encoding.
func (e *Encoding) String() string {
	if e.name == "" {
		return "utf-8"
	}
	return e.name
}

// Set parses an encoding label.
func (e *Encoding) Set(label string) error {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return errtrace.Wrap(err)
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		return errtrace.Wrap(err)
	}

	e.name = name
	e.enc = enc
	if name == "utf-8" {
		e.enc = nil
	}
	return nil
}

// Decode wraps r to decode text from this encoding into UTF-8.
func (e *Encoding) Decode(r io.Reader) io.Reader {
	if e == nil || e.enc == nil {
		return r
	}
	return transform.NewReader(r, e.enc.NewDecoder())
}

// Encode converts UTF-8 text back into this encoding.
// Characters the encoding can't represent
// are written as HTML numeric character references.
func (e *Encoding) Encode(b []byte) ([]byte, error) {
	if e == nil || e.enc == nil {
		return b, nil
	}
	enc := encoding.HTMLEscapeUnsupported(e.enc.NewEncoder())
	out, _, err := transform.Bytes(enc, b)
	return out, errtrace.Wrap(err)
}
