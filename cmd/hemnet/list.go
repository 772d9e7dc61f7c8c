package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bombsimon/hemnet"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	typ, err := hemnet.ParseListingType(c.Type)
	if err != nil {
		return err
	}

	listings, err := deps.Scraper.Listings(deps.Ctx, typ, c.search(deps.Config))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hemnet.ErrorMessage(err))
		return err
	}

	numbers := c.Numbers
	if len(numbers) == 0 {
		numbers = deps.Config.Search.Numbers
	}
	listings = hemnet.FilterExactNumbers(listings, numbers)

	if c.Max > 0 && len(listings) > c.Max {
		listings = listings[:c.Max]
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings found.")
		return nil
	}

	for _, l := range listings {
		printListing(deps.Stdout, typ, l)
	}
	fmt.Fprintf(deps.Stdout, "\n%d listings\n", len(listings))

	return nil
}

// printListing writes one listing as an address line, a detail line and
// the listing URL.
func printListing(w io.Writer, typ hemnet.ListingType, l *hemnet.Listing) {
	fmt.Fprintln(w, l.Address())

	var details []string
	if p := l.FormattedPrice(); p != "" {
		details = append(details, "Pris: "+p)
	}
	if a := l.FormattedLivingArea(); a != "" {
		details = append(details, "Boarea: "+a)
	}
	if l.Rooms > 0 {
		details = append(details, "Rum: "+formatDecimal(l.Rooms))
	}
	if l.Floor != nil {
		details = append(details, "Vån: "+formatDecimal(*l.Floor))
	}
	if f := l.FormattedFee(); f != "" {
		details = append(details, "Avgift: "+f)
	}
	if p := l.FormattedPricePerSquareMeter(); p != "" {
		details = append(details, "Pris/m²: "+p)
	}
	if typ == hemnet.ListingTypeSold {
		details = append(details, "Prisutveckling: "+l.FormattedPriceChange())
		if l.SoldAt != nil {
			details = append(details, "Såld: "+l.SoldAt.Format("2006-01-02"))
		}
	}
	if l.SoldBeforePreview {
		details = append(details, "Såld före visning")
	}

	if len(details) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(details, "  "))
	}
	if l.URL != "" {
		fmt.Fprintf(w, "  %s\n", l.URL)
	}
}

// formatDecimal renders a number with a Swedish decimal comma and no
// trailing zeros.
func formatDecimal(f float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(f, 'f', -1, 64), ".", ",")
}
