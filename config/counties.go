package config

import "strings"

// DefaultGeoportalURL is the national map portal, used for counties without
// their own geoportal
const DefaultGeoportalURL = "https://mapy.geoportal.gov.pl"

// County represents a county whose notices the application handles
type County struct {
	Name            string `json:"name"`
	GeoportalURL    string `json:"geoportal_url"`
	AutomaticSearch bool   `json:"automatic_search"`
}

// SupportedCounties is a list of counties with a local geoportal
var SupportedCounties = []County{
	{
		Name:            "łańcucki",
		GeoportalURL:    "https://lancut.geoportal2.pl/map/www/mapa.php?CFGF=wms&mylayers=+granice+OSM+",
		AutomaticSearch: true,
	},
	{
		Name:            "ropczycko sędziszowski",
		GeoportalURL:    "https://spropczyce.geoportal2.pl/map/www/mapa.php?CFGF=wms&mylayers=+granice1,granice2+OSM+",
		AutomaticSearch: true,
	},
	{
		Name:            "rzeszowski",
		GeoportalURL:    "https://powiatrzeszowski.geoportal2.pl/map/www/mapa.php?CFGF=wms&mylayers=+granice+OSM+",
		AutomaticSearch: true,
	},
	// Add more counties here as needed
}

// GetCountyNames returns a list of supported county names
func GetCountyNames() []string {
	names := make([]string, len(SupportedCounties))
	for i, county := range SupportedCounties {
		names[i] = county.Name
	}
	return names
}

// GetCountyByName returns a county configuration by name, ignoring case
func GetCountyByName(name string) *County {
	name = strings.ReplaceAll(strings.TrimSpace(name), "-", " ")
	for _, county := range SupportedCounties {
		if strings.EqualFold(county.Name, name) {
			return &county
		}
	}
	return nil
}
