// Package goquery provides the CSS-selector based listing card scanner.
// It walks a rendered result page, drops non-listing cards and applies
// an attribute map to each surviving card to produce raw field mappings.
package goquery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bombsimon/hemnet"
)

// DefaultBaseURL is the origin relative listing links are resolved
// against.
const DefaultBaseURL = "https://www.hemnet.se"

// Ensure Scanner implements hemnet.Scanner at compile time.
var _ hemnet.Scanner = (*Scanner)(nil)

// Scanner extracts raw listing fields from result-page HTML using the
// configured attribute maps.
type Scanner struct {
	baseURL    string
	base       *url.URL
	attributes map[hemnet.ListingType]hemnet.AttributeMap
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithBaseURL sets the origin used to resolve relative listing links.
// Defaults to DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(s *Scanner) {
		s.baseURL = baseURL
	}
}

// WithAttributes replaces the default attribute maps, for markup
// experiments or fixtures.
func WithAttributes(attributes map[hemnet.ListingType]hemnet.AttributeMap) Option {
	return func(s *Scanner) {
		s.attributes = attributes
	}
}

// NewScanner creates a Scanner with the default attribute maps.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		baseURL:    DefaultBaseURL,
		attributes: DefaultAttributes(),
	}
	for _, opt := range opts {
		opt(s)
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, hemnet.Errorf(hemnet.EINVALID, "invalid base URL %q: %v", s.baseURL, err)
	}
	s.base = base

	return s, nil
}

// Scan returns one raw field mapping per surviving listing card, in card
// encounter order. A listing type without an attribute map fails with
// EINVALID, which is distinct from a page with zero matching cards (a
// valid, empty result).
func (s *Scanner) Scan(html string, typ hemnet.ListingType, strict bool) ([]hemnet.RawFields, error) {
	attrs, ok := s.attributes[typ]
	if !ok {
		return nil, hemnet.Errorf(hemnet.EINVALID, "no attribute map for listing type %q", typ)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, hemnet.Errorf(hemnet.EINVALID, "failed to parse HTML: %v", err)
	}

	// Fields are visited in a stable order so strict mode always reports
	// the same missing field for a given document.
	fields := make([]hemnet.Field, 0, len(attrs.Fields))
	for field := range attrs.Fields {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	var (
		result  []hemnet.RawFields
		scanErr error
	)

	doc.Find(attrs.CardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if skipCard(card, attrs) {
			return true
		}

		raw := hemnet.RawFields{}
		for _, field := range fields {
			if err := s.extractField(card, field, attrs.Fields[field], strict, raw); err != nil {
				scanErr = err
				return false
			}
		}

		result = append(result, raw)
		return true
	})

	if scanErr != nil {
		return nil, scanErr
	}

	return result, nil
}

// skipCard filters out cards that aren't listings: advertisements and
// highlighted duplicates carry marker classes, carousels and other
// promotional blocks have no address element.
func skipCard(card *goquery.Selection, attrs hemnet.AttributeMap) bool {
	for _, selector := range attrs.SkipSelectors {
		if card.Is(selector) || card.Find(selector).Length() > 0 {
			return true
		}
	}

	if address, ok := attrs.Fields[hemnet.FieldAddress]; ok {
		if card.Find(address.Selector).Length() == 0 {
			return true
		}
	}

	return false
}

func (s *Scanner) extractField(card *goquery.Selection, field hemnet.Field, spec hemnet.FieldSpec, strict bool, raw hemnet.RawFields) error {
	sel := card.Find(spec.Selector).Eq(spec.Index)

	if spec.Attr == hemnet.AttrPresence {
		if sel.Length() > 0 {
			raw[field] = "true"
		} else if spec.Fallback != nil {
			raw[field] = *spec.Fallback
		}
		return nil
	}

	value, found := readValue(sel, spec)
	if !found {
		switch {
		case spec.Fallback != nil:
			raw[field] = *spec.Fallback
		case spec.Optional:
			// Missing-is-ok, leave the field absent.
		case strict:
			return hemnet.Errorf(hemnet.EMISSINGFIELD, "no match for field %q (selector %q)", field, spec.Selector)
		}
		return nil
	}

	switch field {
	case hemnet.FieldURL:
		resolved, err := s.resolveURL(value)
		if err != nil {
			if strict {
				return hemnet.Errorf(hemnet.EPARSE, "invalid link %q for field %q (selector %q)", value, field, spec.Selector)
			}
			return nil
		}
		raw[field] = resolved
	case hemnet.FieldSize:
		// One markup generation folds living area and room count into a
		// single size element; store them under their own field names.
		area, rooms := splitSize(hemnet.Normalize(value))
		raw[hemnet.FieldLivingArea] = area
		if rooms != "" {
			raw[hemnet.FieldRooms] = rooms
		}
	default:
		raw[field] = hemnet.Normalize(value)
	}

	return nil
}

// readValue reads the configured part of the matched node: plain text by
// default (with nested noise cleared first), or an attribute value. An
// empty attribute counts as missing.
func readValue(sel *goquery.Selection, spec hemnet.FieldSpec) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}

	if spec.Attr == hemnet.AttrText {
		clone := sel.Clone()
		for _, remove := range spec.Remove {
			clone.Find(remove).Remove()
		}
		return clone.Text(), true
	}

	value, ok := sel.Attr(string(spec.Attr))
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// resolveURL resolves a listing link against the base origin. Sold
// listings already carry absolute links, for-sale listings don't.
func (s *Scanner) resolveURL(href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", hemnet.Errorf(hemnet.EPARSE, "invalid listing URL %q", href)
	}
	return s.base.ResolveReference(ref).String(), nil
}

// splitSize splits a normalized combined size value ("54,5 m² 2") into
// its living-area and rooms halves. The trailing "rum" token is already
// stripped by normalization.
func splitSize(value string) (area, rooms string) {
	const separator = " m² "

	if i := strings.Index(value, separator); i >= 0 {
		return value[:i], value[i+len(separator):]
	}

	return value, ""
}
