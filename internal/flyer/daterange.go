package flyer

import (
	"strings"
	"time"

	"sjsage522/flyerworker/pkg/errors"
)

const (
	// fromMarker is the locale word introducing a single-bound validity
	// range ("valid from <date>")
	fromMarker = "von"

	// rangeDelimiter separates the two dates of a double-bound range
	rangeDelimiter = " - "

	isoLayout = "2006-01-02"
)

// dateLayouts accepts zero-padded and unpadded day.month.year tokens;
// the site is not consistent about padding
var dateLayouts = []string{"02.01.2006", "2.1.2006"}

// parseDate strictly parses one DD.MM.YYYY token, padded or not
func parseDate(token string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var d time.Time
		if d, err = time.Parse(layout, token); err == nil {
			return d, nil
		}
	}
	return time.Time{}, err
}

// ParseValidityRange parses a flyer's validity text into ISO dates.
//
// Two shapes occur on the site: "von <weekday> DD.MM.YYYY" (flyer valid
// from a date, no end) and "DD.MM.YYYY - DD.MM.YYYY". The marker word
// classifies the shape; anything without the marker is treated as a
// double-bound range. A single-bound range yields an empty validTo.
func ParseValidityRange(text string) (validFrom, validTo string, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", errors.NewParse("", "empty validity range", nil)
	}

	if strings.Contains(text, fromMarker) {
		// Single-bound: the first date token after the marker wins. The
		// site sometimes inserts a weekday between marker and date.
		for _, field := range strings.Fields(text) {
			if d, perr := parseDate(field); perr == nil {
				return d.Format(isoLayout), "", nil
			}
		}
		return "", "", errors.NewParse("", "no valid date token in '"+text+"'", nil)
	}

	parts := strings.Split(text, rangeDelimiter)
	if len(parts) != 2 {
		return "", "", errors.NewParse("", "missing range delimiter in '"+text+"'", nil)
	}

	validFrom, err = parseDateToken(parts[0])
	if err != nil {
		return "", "", err
	}
	validTo, err = parseDateToken(parts[1])
	if err != nil {
		return "", "", err
	}

	return validFrom, validTo, nil
}

// parseDateToken parses one date token into ISO form
func parseDateToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	d, err := parseDate(token)
	if err != nil {
		return "", errors.NewParse("", "malformed date token '"+token+"'", err)
	}
	return d.Format(isoLayout), nil
}
