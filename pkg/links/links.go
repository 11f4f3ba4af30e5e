// Package links extracts hyperlink targets from index listing pages.
//
// Both the catalog root and each package's release listing are plain
// HTML documents whose anchors carry the links the scanner follows.
// [Extract] returns those targets verbatim; shaping and filtering are
// left to the caller.
package links

import (
	"bytes"
	"io"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/matzehuels/pthscan/pkg/errors"
)

// Extract decodes data as UTF-8 and returns the href value of every
// anchor element in document order. Duplicates and empty values
// (href="") are kept. Anchors without an href, or whose href is written
// bare as in <a href>, are skipped; when an anchor repeats the
// attribute, the first occurrence decides.
//
// Bytes that are not valid UTF-8 fail with [errors.ErrCodeDecoding].
func Extract(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, errors.New(errors.ErrCodeDecoding, "listing is not valid UTF-8 text")
	}

	var out []string
	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.Wrap(errors.ErrCodeDecoding, err, "tokenize listing")
			}
			return out, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			// TagName rewrites the token buffer, so copy the raw tag first.
			raw := string(z.Raw())
			name, hasAttr := z.TagName()
			if len(name) != 1 || name[0] != 'a' || !hasAttr {
				continue
			}
			if href, ok := hrefOf(z); ok && (href != "" || hrefHasValue(raw)) {
				out = append(out, href)
			}
		}
	}
}

func hrefOf(z *html.Tokenizer) (string, bool) {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "href" {
			return string(val), true
		}
		if !more {
			return "", false
		}
	}
}

var (
	quotedValue = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	hrefAttr    = regexp.MustCompile(`(?i)[\s/]href(?:(\s*=)|[\s/>]|$)`)
)

// hrefHasValue reports whether the first href attribute of a raw start
// tag is followed by "=". The tokenizer reports both <a href> and
// <a href=""> as an empty value.
func hrefHasValue(raw string) bool {
	m := hrefAttr.FindStringSubmatchIndex(quotedValue.ReplaceAllString(raw, `""`))
	return m != nil && m[2] >= 0
}
