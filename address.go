package hemnet

import (
	"regexp"
	"strconv"
)

// There is no standard for how addresses are written so this matches
// what is usually the street number in the string. Anything after the
// number and letter is kept as a remainder and mined for a floor hint.
var (
	addressRe   = regexp.MustCompile(`^(\D+) (\d+)?([A-Z])?(.*)$`)
	floorHintRe = regexp.MustCompile(`(?i)(?:vån )?(\d+)(?:\s?tr)?`)
)

// Address is the decomposed form of a listing's free-text address line.
type Address struct {
	// Street is the street name, or the full original address when no
	// street number could be found.
	Street string

	// Number is the street number, if any.
	Number *int

	// Letter is the single uppercase letter following the street number
	// ("Storgatan 12B"). Empty when the address has no letter.
	Letter string

	// FloorHint is a floor number found in the trailing part of the
	// address ("Kungsgatan 5, Vån 3"), if any.
	FloorHint *float64
}

// ParseAddress decomposes a free-text address into street name, street
// number, street number letter and an optional floor hint. Some
// addresses don't have any number, it's just a street or a named plot.
// If so the whole input is returned as the street.
func ParseAddress(raw string) Address {
	m := addressRe.FindStringSubmatch(raw)
	if m == nil || m[2] == "" {
		return Address{Street: raw}
	}

	addr := Address{
		Street: m[1],
		Letter: m[3],
	}

	number, err := strconv.Atoi(m[2])
	if err != nil {
		return Address{Street: raw}
	}
	addr.Number = &number

	if remainder := m[4]; remainder != "" {
		if fm := floorHintRe.FindStringSubmatch(remainder); fm != nil {
			if f, err := strconv.ParseFloat(fm[1], 64); err == nil {
				addr.FloorHint = &f
			}
		}
	}

	return addr
}
