// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"sort"
	"strings"
)

// UnitCategory groups measurement units for display
type UnitCategory struct {
	Name  string
	Units []string
}

// unitCategories is the fixed measurement vocabulary recognised after a
// number when measurement matching is enabled. Matching is case-insensitive.
var unitCategories = []UnitCategory{
	{Name: "Mass / Volume", Units: []string{
		"mg", "g", "kg", "mcg", "µg", "ug", "ng", "lb", "lbs", "oz",
		"ml", "mL", "l", "L", "dl", "cl", "µl", "ul", "gal", "qt", "pt", "cc", "tsp", "tbsp",
	}},
	{Name: "Electrical", Units: []string{
		"V", "mV", "kV", "µV", "uV", "A", "mA", "µA", "uA",
		"W", "mW", "kW", "MW", "GW", "Wh", "kWh", "MWh", "Ah", "mAh",
		"Ω", "ohm", "ohms", "kΩ", "MΩ",
		"F", "mF", "µF", "uF", "nF", "pF", "H", "mH", "µH", "uH", "VA", "kVA",
	}},
	{Name: "RF / Signal", Units: []string{
		"dB", "dBm", "dBi", "dBc", "dBW", "dBuV", "dBµV", "dBd", "dBFS",
	}},
	{Name: "Frequency", Units: []string{
		"Hz", "kHz", "MHz", "GHz", "THz", "rpm", "bpm",
	}},
	{Name: "Time", Units: []string{
		"ns", "µs", "us", "ms", "s", "sec", "secs", "min", "mins", "h", "hr", "hrs", "hours",
		"day", "days", "wk", "wks", "weeks", "mo", "yr", "yrs", "years",
	}},
	{Name: "Length", Units: []string{
		"nm", "µm", "um", "mm", "cm", "dm", "m", "km", "ft", "yd", "mi", "nmi", "inch", "inches",
	}},
	{Name: "Temperature", Units: []string{
		"°C", "°F", "°K", "℃", "℉", "K",
	}},
	{Name: "Other Scientific", Units: []string{
		"mol", "mmol", "µmol", "umol", "M", "mM", "µM", "uM",
		"Pa", "kPa", "MPa", "hPa", "bar", "mbar", "psi", "atm", "Torr", "mmHg",
		"J", "kJ", "MJ", "cal", "kcal", "N", "kN", "Nm", "lux", "lm", "cd",
		"%", "‰", "ppm", "ppb", "ppt", "Gy", "Sv", "mSv", "Bq", "IU",
		"eV", "keV", "MeV", "GeV", "b", "kb", "Mb", "Gb", "B", "KB", "MB", "GB", "TB",
	}},
}

// matchUnits holds the vocabulary deduplicated case-insensitively and sorted
// longest first, so the longest unit is always tried before its prefixes.
var matchUnits = buildMatchUnits()

func buildMatchUnits() []string {
	seen := make(map[string]bool)
	var units []string
	for _, category := range unitCategories {
		for _, unit := range category.Units {
			key := strings.ToLower(unit)
			if seen[key] {
				continue
			}
			seen[key] = true
			units = append(units, unit)
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		return len(units[i]) > len(units[j])
	})
	return units
}

// UnitVocabulary returns a copy of the measurement vocabulary by category
func UnitVocabulary() []UnitCategory {
	out := make([]UnitCategory, len(unitCategories))
	for i, category := range unitCategories {
		out[i] = UnitCategory{
			Name:  category.Name,
			Units: append([]string(nil), category.Units...),
		}
	}
	return out
}
