package goquery

import "github.com/bombsimon/hemnet"

// The attribute maps below describe where each logical field lives in
// the result-page markup, per listing type. They are pure data: when
// Hemnet changes its markup this file is the only thing that should need
// an edit. Selectors are scoped to a single listing card.

var (
	fallbackFalse   = "false"
	fallbackNeutral = ""
)

// DefaultAttributes returns the extraction maps for the markup currently
// served by Hemnet's result pages.
func DefaultAttributes() map[hemnet.ListingType]hemnet.AttributeMap {
	return map[hemnet.ListingType]hemnet.AttributeMap{
		hemnet.ListingTypeForSale: {
			CardSelector: "li.listing-card",
			SkipSelectors: []string{
				// Advertisement cards link off-site.
				"[data-external-link]",
				// Highlighted cards duplicate a regular card further
				// down the page.
				".listing-card--highlighted",
			},
			Fields: map[hemnet.Field]hemnet.FieldSpec{
				hemnet.FieldAddress: {
					Selector: ".listing-card__address",
					// The address block nests the locality caption,
					// clear it before reading the street line.
					Remove: []string{".listing-card__location"},
				},
				hemnet.FieldPrice: {
					Selector: ".listing-card__attribute--price",
				},
				hemnet.FieldFee: {
					Selector: ".listing-card__attribute--fee",
					Optional: true,
				},
				hemnet.FieldLivingArea: {
					Selector: ".listing-card__attribute--living-area",
				},
				hemnet.FieldRooms: {
					Selector: ".listing-card__attribute--rooms",
				},
				hemnet.FieldFloor: {
					Selector: ".listing-card__attribute--floor",
					Optional: true,
				},
				hemnet.FieldPricePerM2: {
					Selector: ".listing-card__attribute--price-per-m2",
					Optional: true,
				},
				hemnet.FieldURL: {
					Selector: "a.listing-card__link",
					Attr:     hemnet.AttrHref,
				},
				hemnet.FieldImage: {
					Selector: ".listing-card__image",
					Attr:     hemnet.AttrDataSrc,
					Optional: true,
				},
				hemnet.FieldSoldBeforePreview: {
					Selector: ".listing-card__tag--deactivated-before-open-house",
					Attr:     hemnet.AttrPresence,
					Fallback: &fallbackFalse,
				},
			},
		},
		hemnet.ListingTypeSold: {
			CardSelector: ".sold-property-listing",
			SkipSelectors: []string{
				"[data-external-link]",
			},
			Fields: map[hemnet.Field]hemnet.FieldSpec{
				hemnet.FieldAddress: {
					Selector: ".sold-property-listing__location",
					Remove:   []string{".sold-property-listing__locality"},
				},
				// Price and price per square meter share the same
				// subheading class and are told apart by position.
				hemnet.FieldPrice: {
					Selector: ".sold-property-listing__price .sold-property-listing__subheading",
					Index:    0,
				},
				hemnet.FieldPricePerM2: {
					Selector: ".sold-property-listing__price .sold-property-listing__subheading",
					Index:    1,
					Optional: true,
				},
				hemnet.FieldPriceChange: {
					Selector: ".sold-property-listing__price-change",
					Fallback: &fallbackNeutral,
				},
				hemnet.FieldFee: {
					Selector: ".sold-property-listing__fee",
					Optional: true,
				},
				// One combined size element carrying both living area
				// and room count, split by the scanner.
				hemnet.FieldSize: {
					Selector: ".sold-property-listing__size .sold-property-listing__subheading",
					Index:    0,
				},
				hemnet.FieldURL: {
					Selector: "a.item-link-container",
					Attr:     hemnet.AttrHref,
				},
				hemnet.FieldSoldDate: {
					Selector: ".sold-property-listing__sold-date",
				},
			},
		},
	}
}
