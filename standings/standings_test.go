package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racebot-wiki/models"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name           string
		classification models.Classification
		want           bool
	}{
		{"empty", models.Classification{}, false},
		{"nil", nil, false},
		{"all zero", models.Classification{"A": 0, "B": 0}, false},
		{"scored", models.Classification{"A": 25, "B": 18}, true},
		{"single positive among zeros", models.Classification{"A": 0, "B": 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsComplete(tt.classification))
		})
	}
}

func TestAggregateSumsRange(t *testing.T) {
	rounds := []models.Classification{
		{"Verstappen": 25, "Norris": 18},
		{"Verstappen": 18, "Norris": 25, "Piastri": 15},
		{"Piastri": 25},
	}

	table := Aggregate(rounds, 2)
	require.Len(t, table, 3)

	assert.Equal(t, models.StandingsEntry{Driver: "Norris", Points: 43}, table[0])
	assert.Equal(t, models.StandingsEntry{Driver: "Verstappen", Points: 43}, table[1])
	assert.Equal(t, models.StandingsEntry{Driver: "Piastri", Points: 15}, table[2])
}

func TestAggregateIgnoresRoundsBeyondLimit(t *testing.T) {
	rounds := []models.Classification{
		{"A": 25},
		{"A": 25, "B": 18},
	}

	table := Aggregate(rounds, 1)
	require.Len(t, table, 1)
	assert.Equal(t, models.StandingsEntry{Driver: "A", Points: 25}, table[0])
}

func TestAggregateEmptyRoundContributesNothing(t *testing.T) {
	rounds := []models.Classification{
		{"A": 25, "B": 18},
		{"A": 18, "B": 25},
		{},
	}

	afterTwo := Aggregate(rounds, 2)
	afterThree := Aggregate(rounds, 3)
	assert.Equal(t, afterTwo, afterThree)
}

func TestAggregateMonotonicity(t *testing.T) {
	rounds := []models.Classification{
		{"A": 25, "B": 18},
		{"B": 25},
		{"A": 15, "B": 12, "C": 10},
		{},
		{"C": 25},
	}

	prev := make(map[string]float64)
	for n := 1; n <= len(rounds); n++ {
		table := Aggregate(rounds, n)
		for _, entry := range table {
			assert.GreaterOrEqual(t, entry.Points, prev[entry.Driver],
				"driver %s at round %d", entry.Driver, n)
			prev[entry.Driver] = entry.Points
		}
	}
}

// Equal totals keep first-appearance order: drivers are discovered walking
// rounds 1..N, alphabetically within one round.
func TestAggregateTieBreakFirstAppearance(t *testing.T) {
	rounds := []models.Classification{
		{"Zhou": 10},
		{"Alonso": 10},
	}

	table := Aggregate(rounds, 2)
	require.Len(t, table, 2)
	assert.Equal(t, "Zhou", table[0].Driver)
	assert.Equal(t, "Alonso", table[1].Driver)
}

func TestAggregateThroughRoundBelowOne(t *testing.T) {
	rounds := []models.Classification{{"A": 25}}

	assert.Empty(t, Aggregate(rounds, 0))
	assert.Empty(t, Aggregate(rounds, -3))
}

func TestAggregateLimitBeyondAvailableRounds(t *testing.T) {
	rounds := []models.Classification{{"A": 25}}

	table := Aggregate(rounds, 10)
	require.Len(t, table, 1)
	assert.Equal(t, models.StandingsEntry{Driver: "A", Points: 25}, table[0])
}
