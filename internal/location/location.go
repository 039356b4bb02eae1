// Package location splits the slash-delimited property path of a notice
// ("Podkarpackie/Łańcucki/Łańcut/Albigowa/123/4") into its parts.
package location

import (
	"regexp"
	"strings"

	"github.com/notCienki/geoportal-app/config"
	"github.com/notCienki/geoportal-app/internal/normalize"
)

var (
	// one or more plot numbers at the end: "123/4", "12 i 13/2 (kompleks)"
	rePlot    = regexp.MustCompile(`(?:^|/)\s*(\d+(?:/\d+)*(?:\s*(?:i|,)\s*\d+(?:/\d+)*)*)\s*(\(kompleks\))?\s*$`)
	reComment = regexp.MustCompile(`\s*\(.*$`)
)

// Location is a parsed property path
type Location struct {
	Raw          string `json:"original_location"`
	Region       string `json:"region"`
	County       string `json:"county"`
	Municipality string `json:"municipality"`
	Precinct     string `json:"precinct"`
	Plot         string `json:"plot"`
	Complex      bool   `json:"complex"`
}

// Parse splits a property path. Missing parts are left empty.
func Parse(s string) Location {
	loc := Location{Raw: strings.TrimSpace(s)}
	rest := loc.Raw

	if idx := rePlot.FindStringSubmatchIndex(rest); idx != nil {
		loc.Plot = strings.Join(strings.Fields(rest[idx[2]:idx[3]]), " ")
		loc.Complex = idx[4] >= 0
		rest = rest[:idx[0]]
	}

	parts := splitPath(rest)
	for i, p := range parts {
		switch i {
		case 0:
			loc.Region = p
		case 1:
			loc.County = p
		case 2:
			loc.Municipality = p
		case 3:
			loc.Precinct = reComment.ReplaceAllString(p, "")
		}
	}
	return loc
}

// CountyOf returns the county segment of a property path, or "" when the
// path is too short to have one
func CountyOf(path string) string {
	parts := splitPath(path)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// CountyKey folds a county name for comparison, so that
// "Ropczycko-Sędziszowski" and "powiat ropczycko sędziszowski" are equal
func CountyKey(s string) string {
	s = strings.ReplaceAll(normalize.Fold(s), "-", " ")
	s = strings.TrimPrefix(s, "powiat ")
	return strings.Join(strings.Fields(s), " ")
}

// GeoportalURL returns the map portal for the path's county and whether
// plot search can be automated there
func (l Location) GeoportalURL() (string, bool) {
	key := CountyKey(l.County)
	for _, c := range config.SupportedCounties {
		if CountyKey(c.Name) == key {
			return c.GeoportalURL, c.AutomaticSearch
		}
	}
	return config.DefaultGeoportalURL, false
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
