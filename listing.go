package hemnet

import (
	"strconv"
	"strings"
	"time"
)

// ListingType is one of the two listing types found on Hemnet. Each type
// has its own markup and field availability, so consumers are expected
// to switch exhaustively over the two variants and reject anything else.
type ListingType string

// The two listing types.
const (
	ListingTypeForSale ListingType = "for-sale"
	ListingTypeSold    ListingType = "sold"
)

// ParseListingType parses a listing type from its string form.
// Returns EINVALID for anything but the two known types.
func ParseListingType(s string) (ListingType, error) {
	switch t := ListingType(s); t {
	case ListingTypeForSale, ListingTypeSold:
		return t, nil
	default:
		return "", Errorf(EINVALID, "unknown listing type %q", s)
	}
}

// Validate returns an error if the listing type is not one of the two
// known variants.
func (t ListingType) Validate() error {
	_, err := ParseListingType(string(t))
	return err
}

// Listing is a single property listing, for sale or sold. Optional
// fields are pointers so that "absent" can be told apart from zero.
// A Listing is immutable once constructed; NewListing is the only place
// where raw card text is normalized into typed values.
type Listing struct {
	URL string

	// Street holds the full original address when the address has no
	// street number.
	Street             string
	StreetNumber       *int
	StreetNumberLetter string

	// Price is in whole kronor. Nil when the card carries no price.
	Price *int

	LivingArea   float64
	LivingBiArea float64
	Rooms        float64

	// Floor is nil when unknown; sold listings typically lack it.
	Floor *float64

	Fee                 *int
	PricePerSquareMeter *int

	// PriceChange is a signed percentage, only present on sold listings
	// that display a change element.
	PriceChange *int

	SoldAt *time.Time

	// SoldBeforePreview is set when the listing was withdrawn before its
	// scheduled open house day.
	SoldBeforePreview bool
}

// NewListing builds a typed Listing from the raw field mapping produced
// by a Scanner. Fields absent from raw stay absent on the Listing; they
// are never zero-filled.
//
// A present but malformed sold date returns the constructed Listing
// together with an EPARSE error, so lenient callers can keep the listing
// and strict callers can abort.
func NewListing(url string, raw RawFields) (*Listing, error) {
	if url == "" {
		return nil, Errorf(EINVALID, "listing URL required")
	}

	address, ok := raw[FieldAddress]
	if !ok || address == "" {
		return nil, Errorf(EINVALID, "listing address required")
	}

	l := &Listing{URL: url}

	addr := ParseAddress(address)
	l.Street = addr.Street
	l.StreetNumber = addr.Number
	l.StreetNumberLetter = addr.Letter

	if v, ok := raw[FieldLivingArea]; ok {
		l.LivingArea, l.LivingBiArea = ParseLivingArea(v)
	}

	if v, ok := raw[FieldRooms]; ok {
		l.Rooms = looseFloat(strings.ReplaceAll(v, ",", "."))
	}

	// An explicit floor field wins over a floor hint embedded in the
	// address remainder.
	if v, ok := raw[FieldFloor]; ok {
		if f, found := ParseFloor(v); found {
			l.Floor = &f
		}
	} else if addr.FloorHint != nil {
		l.Floor = addr.FloorHint
	}

	l.Price = optionalNumber(raw, FieldPrice)
	l.Fee = optionalNumber(raw, FieldFee)
	l.PricePerSquareMeter = optionalNumber(raw, FieldPricePerM2)
	l.PriceChange = optionalNumber(raw, FieldPriceChange)

	l.SoldBeforePreview = raw[FieldSoldBeforePreview] == "true"

	if v, ok := raw[FieldSoldDate]; ok {
		soldAt, err := ParseSwedishDate(v, DateLong)
		if err != nil {
			soldAt, err = ParseSwedishDate(v, DateShort)
		}
		if err != nil {
			return l, err
		}
		l.SoldAt = &soldAt
	}

	return l, nil
}

// optionalNumber reads a numeric field, returning nil when the field is
// absent or carries no digits (f.ex "Prisuppgift saknas").
func optionalNumber(raw RawFields, field Field) *int {
	v, ok := raw[field]
	if !ok || !containsDigit(v) {
		return nil
	}

	n := KeepNumbers(v)
	return &n
}

// Validate is a sanity check on a constructed listing, not an
// extraction-time invariant. A structurally valid listing has a URL, an
// address and at least one square meter of total area.
func (l *Listing) Validate() error {
	if l.URL == "" {
		return Errorf(EINVALID, "listing URL required")
	}
	if l.Street == "" {
		return Errorf(EINVALID, "listing address required")
	}
	if l.TotalArea() < 1.0 {
		return Errorf(EINVALID, "listing %q has a total area below 1 m²", l.Address())
	}
	return nil
}

// Address joins street, street number and street number letter back into
// a consistent display form.
func (l *Listing) Address() string {
	address := l.Street

	if l.StreetNumber != nil {
		address += " " + strconv.Itoa(*l.StreetNumber)
	}
	if l.StreetNumberLetter != "" {
		address += l.StreetNumberLetter
	}

	return address
}

// TotalArea is the primary living area plus any supplemental (bi) area.
func (l *Listing) TotalArea() float64 {
	return l.LivingArea + l.LivingBiArea
}

// FormattedPrice returns the price with delimited thousands and a
// currency suffix, or an empty string when the listing has no price.
func (l *Listing) FormattedPrice() string {
	if l.Price == nil {
		return ""
	}
	return FormatNumber(*l.Price) + " kr"
}

// FormattedFee returns the monthly fee with delimited thousands and a
// currency suffix, or an empty string when absent.
func (l *Listing) FormattedFee() string {
	if l.Fee == nil {
		return ""
	}
	return FormatNumber(*l.Fee) + " kr/mån"
}

// FormattedPricePerSquareMeter returns the price per square meter with
// delimited thousands and a suffix, or an empty string when absent.
func (l *Listing) FormattedPricePerSquareMeter() string {
	if l.PricePerSquareMeter == nil {
		return ""
	}
	return FormatNumber(*l.PricePerSquareMeter) + " kr/m²"
}

// FormattedLivingArea returns the living area with a unit suffix,
// including the bi area when there is one ("54,5 m² + 10 m²").
func (l *Listing) FormattedLivingArea() string {
	area := formatArea(l.LivingArea)
	if l.LivingBiArea > 0 {
		area += " + " + formatArea(l.LivingBiArea)
	}
	return area
}

// FormattedPriceChange returns the price change as a percentage. A sold
// listing without a detectable change element displays as neutral
// "+/-0%".
func (l *Listing) FormattedPriceChange() string {
	if l.PriceChange == nil {
		return "+/-0%"
	}
	return strconv.Itoa(*l.PriceChange) + "%"
}

func formatArea(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", ",") + " m²"
}

// FilterExactNumbers keeps only listings whose street number is a member
// of numbers, in the original order and with at most one append per
// listing. Listings without a street number are always excluded. An
// empty allow-list means "no filtering" and returns the input unchanged;
// callers that want the old "match nothing" behavior must check for an
// empty list themselves before calling.
func FilterExactNumbers(listings []*Listing, numbers []int) []*Listing {
	if len(numbers) == 0 {
		return listings
	}

	allowed := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		allowed[n] = struct{}{}
	}

	filtered := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if l.StreetNumber == nil {
			continue
		}
		if _, ok := allowed[*l.StreetNumber]; ok {
			filtered = append(filtered, l)
		}
	}

	return filtered
}
