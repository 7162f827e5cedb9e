// Package standings holds the scoring logic: deciding whether a race already
// has a usable classification and summing per-round points into a ranked
// championship table.
package standings

import (
	"sort"

	"racebot-wiki/models"
)

// IsComplete reports whether a race classification can be counted. A race
// counts iff at least one driver scored strictly more than zero: pages of
// races that have not run yet come back empty or all-zero. A race whose
// actual leader scored exactly zero would be misclassified here, known
// limitation of the heuristic.
func IsComplete(classification models.Classification) bool {
	for _, points := range classification {
		if points > 0 {
			return true
		}
	}
	return false
}

// Aggregate sums driver points over rounds 1..throughRound inclusive and
// returns the table ranked by total descending. classifications[i] is the
// classification of round i+1. Drivers absent from a round are simply not
// incremented. Equal totals keep first-appearance order.
func Aggregate(classifications []models.Classification, throughRound int) []models.StandingsEntry {
	if throughRound < 1 {
		return nil
	}
	if throughRound > len(classifications) {
		throughRound = len(classifications)
	}

	totals := make(map[string]float64)
	order := make([]string, 0)

	for round := 1; round <= throughRound; round++ {
		classification := classifications[round-1]

		names := make([]string, 0, len(classification))
		for driver := range classification {
			names = append(names, driver)
		}
		sort.Strings(names)

		for _, driver := range names {
			if _, ok := totals[driver]; !ok {
				order = append(order, driver)
			}
			totals[driver] += classification[driver]
		}
	}

	table := make([]models.StandingsEntry, 0, len(order))
	for _, driver := range order {
		table = append(table, models.StandingsEntry{Driver: driver, Points: totals[driver]})
	}

	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Points > table[j].Points
	})

	return table
}
