package services

import (
	"regexp"
	"strconv"
	"strings"
)

// corruptWarrantyRegexp flags warranty values such as "-300" that come from
// a broken source field. Those rows are dropped, not zeroed.
var corruptWarrantyRegexp = regexp.MustCompile(`-\d{3}`)

// spaceReplacer removes the space characters marketplaces use as thousands
// separators: plain space, NBSP and narrow NBSP.
var spaceReplacer = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "")

// WarrantyStatus reports how ParseWarranty resolved a value.
type WarrantyStatus int

const (
	WarrantyOK WarrantyStatus = iota
	// WarrantyInvalid means the text did not reduce to an integer.
	WarrantyInvalid
	// WarrantyCorrupt means the row must be removed from the dataset.
	WarrantyCorrupt
)

// ParseMileage converts "100 000 km" to 100000.
func ParseMileage(raw string) (int64, bool) {
	s := spaceReplacer.Replace(raw)
	s = strings.Replace(s, "km", "", 1)
	return parseInt64(s)
}

// ParsePrice converts "15 000 €" to 15000.
func ParsePrice(raw string) (int64, bool) {
	s := strings.Replace(raw, "€", "", 1)
	s = spaceReplacer.Replace(s)
	return parseInt64(s)
}

// ParseYear converts "2019" to 2019.
func ParseYear(raw string) (int32, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParseWarranty converts the warranty label to a number of months.
//
//	"Garantie 12 mois" -> 12
//	"Livraison", "NA"  -> 0
//	"-300 mois"        -> WarrantyCorrupt
//	"-6 mois"          -> 6 (the sign is stripped, not applied)
func ParseWarranty(raw string) (int64, WarrantyStatus) {
	s := strings.Replace(raw, "Livraison", "0", 1)
	s = strings.Replace(s, "NA", "0", 1)
	s = strings.Replace(s, "Garantie", "", 1)
	s = strings.Replace(s, "mois", "", 1)
	s = spaceReplacer.Replace(s)

	if corruptWarrantyRegexp.MatchString(s) {
		return 0, WarrantyCorrupt
	}

	s = strings.Replace(s, "-", "", 1)
	n, ok := parseInt64(s)
	if !ok {
		return 0, WarrantyInvalid
	}
	return n, WarrantyOK
}

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
