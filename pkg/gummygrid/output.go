package gummygrid

import (
	"net/url"
	"os"

	"github.com/boradatti/gummygrid/pkg/errors"
)

// DataURIPrefix is the scheme prefix for inline SVG data URIs.
const DataURIPrefix = "data:image/svg+xml,"

// SVG holds one rendered avatar document. The markup is complete and
// standalone; callers only choose an output encoding.
type SVG struct {
	markup []byte
}

// String returns the raw SVG markup.
func (s *SVG) String() string {
	return string(s.markup)
}

// Bytes returns the raw SVG markup. The slice is shared with the SVG value
// and must not be modified.
func (s *SVG) Bytes() []byte {
	return s.markup
}

// URLEncoded returns the percent-encoded markup, suitable for embedding in
// an img src attribute or a CSS url(). With withPrefix the data URI scheme
// prefix is prepended.
func (s *SVG) URLEncoded(withPrefix bool) string {
	encoded := url.PathEscape(string(s.markup))
	if withPrefix {
		return DataURIPrefix + encoded
	}
	return encoded
}

// WriteFile writes the raw markup to path with 0644 permissions.
func (s *SVG) WriteFile(path string) error {
	if err := os.WriteFile(path, s.markup, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write SVG to %s", path)
	}
	return nil
}
