// Package hemnet extracts structured real-estate listings from rendered
// Hemnet result pages. It locates listing cards with CSS selectors,
// normalizes the Swedish-locale text fragments found inside them (prices,
// areas, dates, floor strings) and produces typed Listing records that can
// be filtered down to exact street numbers.
//
// This package contains domain types, interfaces and the pure
// normalization logic following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g. goquery/, http/, sqlite/), orchestration in scrape/.
package hemnet
