// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package recommend

import (
	"sort"
	"strings"
)

// latamCountries are the ISO 3166-1 alpha-2 codes accepted by the country
// filter. Puerto Rico is left out: it is a US territory and its authors are
// listed under US institutions upstream.
var latamCountries = map[string]string{
	"AR": "Argentina",
	"BO": "Bolivia",
	"BR": "Brazil",
	"CL": "Chile",
	"CO": "Colombia",
	"CR": "Costa Rica",
	"CU": "Cuba",
	"DO": "Dominican Republic",
	"EC": "Ecuador",
	"SV": "El Salvador",
	"GT": "Guatemala",
	"HN": "Honduras",
	"MX": "Mexico",
	"NI": "Nicaragua",
	"PA": "Panama",
	"PY": "Paraguay",
	"PE": "Peru",
	"UY": "Uruguay",
	"VE": "Venezuela",
}

// NormalizeCountry upper-cases and trims a country code.
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsLatamCountry reports whether code (any case) is a recognized country.
func IsLatamCountry(code string) bool {
	_, ok := latamCountries[NormalizeCountry(code)]
	return ok
}

// LatamCountries returns the recognized codes in alphabetical order.
func LatamCountries() []string {
	codes := make([]string, 0, len(latamCountries))
	for code := range latamCountries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CountryName returns the English name for a recognized code, or "".
func CountryName(code string) string {
	return latamCountries[NormalizeCountry(code)]
}
