// Package charset detects and converts character encodings so file content
// can be rewritten in the charset it arrived in.
package charset

import (
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// Fallback is the charset assumed when detection cannot produce a usable
// answer.
const Fallback = "UTF-8"

// aliases maps detector labels that neither the WHATWG nor the IANA index
// recognises onto resolvable names.
var aliases = map[string]string{
	"GB-18030": "gb18030",
}

// Codec pairs a resolved character encoding with the label it was resolved
// from, so the same charset serves both decode and re-encode.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// UTF8 returns the fallback Codec used when no charset can be resolved.
func UTF8() *Codec {
	return &Codec{name: Fallback}
}

// Detect sniffs the most likely charset of data and returns its label with
// the detector's confidence. It fails when data matches no known charset.
func Detect(data []byte) (name string, confidence int, err error) {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", 0, fmt.Errorf("charset detection: %w", err)
	}
	return result.Charset, result.Confidence, nil
}

// Resolve maps a charset label to a Codec. Labels are matched the way
// browsers match them, with the IANA registry as a fallback. UTF-8 labels
// get a passthrough Codec that validates instead of transforming.
func Resolve(name string) (*Codec, error) {
	label := name
	if alias, ok := aliases[label]; ok {
		label = alias
	}

	if isUTF8(label) {
		return &Codec{name: name}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil || enc == encoding.Replacement {
		enc, err = ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil || enc == encoding.Replacement {
			return nil, fmt.Errorf("unsupported charset %q", name)
		}
	}
	return &Codec{name: name, enc: enc}, nil
}

// Name returns the charset label the Codec was resolved from.
func (c *Codec) Name() string {
	return c.name
}

// Decode converts raw bytes in the Codec's charset to a string. For UTF-8
// the bytes are validated rather than transformed, so malformed input fails
// instead of being silently replaced.
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("decode %s: invalid byte sequence", c.name)
		}
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode converts a string back to raw bytes in the Codec's charset. Runes
// outside the charset's repertoire are errors; on a same-charset round trip
// they only appear when the decode itself was lossy.
func (c *Codec) Encode(s string) ([]byte, error) {
	if c.enc == nil {
		return []byte(s), nil
	}
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.name, err)
	}
	return out, nil
}

func isUTF8(label string) bool {
	switch label {
	case "UTF-8", "utf-8", "utf8", "UTF8":
		return true
	}
	return false
}
