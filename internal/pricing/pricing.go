// Package pricing reads surcharges out of customization option strings.
//
// Menu content encodes option surcharges inside the option text itself,
// as "<label> (+£<amount>)". This package is the single reader of that
// grammar; everything that needs a surcharge goes through ParseOption.
package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

var optionPrice = regexp.MustCompile(`^(.+?)\s*\(\+£([0-9]+(?:\.[0-9]+)?)\)$`)

// ParseOption splits an option string into its display label and
// surcharge. Strings without a well-formed "(+£<amount>)" suffix are not
// an error: the whole string is the label and the surcharge is zero.
func ParseOption(option string) (string, float64) {
	m := optionPrice.FindStringSubmatch(option)
	if m == nil {
		return option, 0
	}
	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return option, 0
	}
	return strings.TrimSpace(m[1]), price
}

// OptionsTotal sums the surcharges across a set of chosen option strings.
func OptionsTotal(options []string) float64 {
	var total float64
	for _, opt := range options {
		_, price := ParseOption(opt)
		total += price
	}
	return total
}
