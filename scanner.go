package hemnet

// Field identifies a logical listing attribute to extract from a card.
type Field string

// The logical fields a listing card can carry. Not every field exists
// for every listing type.
const (
	FieldAddress           Field = "address"
	FieldPrice             Field = "price"
	FieldPriceChange       Field = "price-change"
	FieldFee               Field = "fee"
	FieldLivingArea        Field = "living-area"
	FieldRooms             Field = "rooms"
	FieldFloor             Field = "floor"
	FieldSize              Field = "size"
	FieldPricePerM2        Field = "price-per-m2"
	FieldURL               Field = "url"
	FieldImage             Field = "image"
	FieldSoldDate          Field = "sold-date"
	FieldSoldBeforePreview Field = "sold-before-preview"
)

// Attr selects which part of a matched node a field reads.
type Attr string

// Supported node reads. AttrText is the default.
const (
	AttrText     Attr = ""         // plain text content
	AttrHref     Attr = "href"     // link target, for URL fields
	AttrDataSrc  Attr = "data-src" // lazy-loaded image source
	AttrPresence Attr = "presence" // "true" when the selector matches at all
)

// FieldSpec describes where one logical field lives inside a listing
// card: a CSS selector scoped to the card node, a 0-based index among
// multiple sibling matches, an optional list of nested selectors whose
// text is cleared before the field's own text is read, and an optional
// fallback recorded when the selector matches nothing.
//
// A field that is neither Optional nor has a Fallback is required: in
// strict mode a missing match aborts the scan, in lenient mode the field
// is left absent.
type FieldSpec struct {
	Selector string
	Index    int
	Remove   []string
	Attr     Attr

	// Optional marks missing-is-ok fields that are skipped without a
	// value even in strict mode.
	Optional bool

	// Fallback, when set, is recorded instead of treating a missing
	// match as an error or gap.
	Fallback *string
}

// AttributeMap is the full extraction description for one listing type:
// how to find the candidate cards, which cards to skip, and where each
// field lives. It is pure data and the single artifact that has to
// change when Hemnet's markup changes.
type AttributeMap struct {
	// CardSelector locates candidate listing card nodes in a page.
	CardSelector string

	// SkipSelectors marks non-listing cards (advertisements, highlighted
	// duplicates). A card matching any of these is dropped.
	SkipSelectors []string

	// Fields maps each logical field to its location inside a card.
	// Fields without an entry are simply not produced for this type.
	Fields map[Field]FieldSpec
}

// RawFields maps field names to extracted, already normalized text for a
// single listing card.
type RawFields map[Field]string

// Scanner enumerates the listing cards in a rendered result page and
// applies a field extraction map to each of them.
type Scanner interface {
	// Scan returns one raw field mapping per surviving listing card, in
	// card encounter order. With strict set, a required field whose
	// selector matches nothing aborts the whole scan with EMISSINGFIELD;
	// without it the field is skipped for that card.
	Scan(html string, typ ListingType, strict bool) ([]RawFields, error)
}
