// Package yamlutil wraps YAML encoding and Markdown front matter handling so
// the rest of the module does not depend on the YAML libraries directly.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// Delimiter opens and closes a YAML front matter block.
const Delimiter = "---"

var (
	ErrNilData          = errors.New("yamlutil: nil or empty data")
	ErrNilDestination   = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge    = errors.New("yamlutil: input exceeds maximum size")
	ErrNoFrontMatter    = errors.New("yamlutil: document has no front matter")
	ErrFrontMatterParse = errors.New("yamlutil: invalid front matter")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes YAML into v.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v. Struct fields keep their declaration order, which is
// what makes generated front matter stable.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

// MarshalFrontMatter encodes v as a front matter block, delimiters included
// and terminated by a newline.
func MarshalFrontMatter(v any) ([]byte, error) {
	body, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(body) + 2*len(Delimiter) + 2)
	buf.WriteString(Delimiter + "\n")
	buf.Write(body)
	if !bytes.HasSuffix(body, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(Delimiter + "\n")
	return buf.Bytes(), nil
}

// ParseFrontMatter decodes the leading front matter of doc into v and
// returns the remaining body. Documents without front matter fail with
// ErrNoFrontMatter.
func ParseFrontMatter(doc []byte, v any) ([]byte, error) {
	if err := validateInput(doc, v); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(doc, []byte(Delimiter)) {
		return nil, ErrNoFrontMatter
	}
	body, err := frontmatter.MustParse(bytes.NewReader(doc), v)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return nil, ErrNoFrontMatter
		}
		return nil, fmt.Errorf("%w: %v", ErrFrontMatterParse, err)
	}
	return body, nil
}
