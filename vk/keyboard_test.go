package vk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racebot-wiki/models"
)

func seasonChoices(count int) []models.Choice {
	choices := make([]models.Choice, 0, count)
	for i := 0; i < count; i++ {
		year := 2025 - i
		choices = append(choices, models.Choice{
			Label: fmt.Sprintf("%d", year),
			Token: fmt.Sprintf("season:%d", year),
		})
	}
	return choices
}

func TestMakeSeasonsKeyboardFirstPage(t *testing.T) {
	kb, err := makeSeasonsKeyboard(seasonChoices(76), 1)
	require.NoError(t, err)

	// 28 seasons in rows of 4 plus the navigation row
	require.Len(t, kb.Buttons, 8)
	assert.Len(t, kb.Buttons[0], 4)

	navRow := kb.Buttons[len(kb.Buttons)-1]
	require.Len(t, navRow, 1)
	assert.Equal(t, "Далее", navRow[0].Action.Label)
	assert.Contains(t, navRow[0].Action.Payload, "seasonsPage_2")

	assert.Equal(t, `{"command" : "season:2025"}`, kb.Buttons[0][0].Action.Payload)
}

func TestMakeSeasonsKeyboardMiddlePage(t *testing.T) {
	kb, err := makeSeasonsKeyboard(seasonChoices(76), 2)
	require.NoError(t, err)

	navRow := kb.Buttons[len(kb.Buttons)-1]
	require.Len(t, navRow, 2)
	assert.Contains(t, navRow[0].Action.Payload, "seasonsPage_1")
	assert.Contains(t, navRow[1].Action.Payload, "seasonsPage_3")

	// page 2 starts right after the 28 seasons of page 1
	assert.Equal(t, `{"command" : "season:1997"}`, kb.Buttons[0][0].Action.Payload)
}

func TestMakeSeasonsKeyboardMissingPage(t *testing.T) {
	_, err := makeSeasonsKeyboard(seasonChoices(10), 5)
	assert.Error(t, err)
}

func TestMakeRacesKeyboard(t *testing.T) {
	choices := []models.Choice{
		{Label: "1. Australian Grand Prix", Token: "race:2025:1"},
		{Label: "2. Chinese Grand Prix", Token: "race:2025:2"},
		{Label: "3. Japanese Grand Prix", Token: "race:2025:3"},
		{Label: "4. Bahrain Grand Prix", Token: "race:2025:4"},
	}

	kb := makeRacesKeyboard(choices)
	require.Len(t, kb.Buttons, 2)
	assert.Len(t, kb.Buttons[0], 3)
	assert.Len(t, kb.Buttons[1], 1)
	assert.Equal(t, `{"command" : "race:2025:4"}`, kb.Buttons[1][0].Action.Payload)
}

func TestParseSeasonsPage(t *testing.T) {
	num, ok := parseSeasonsPage("seasonsPage_3")
	assert.True(t, ok)
	assert.Equal(t, 3, num)

	_, ok = parseSeasonsPage("season:2025")
	assert.False(t, ok)

	_, ok = parseSeasonsPage("seasonsPage_")
	assert.False(t, ok)
}

func TestGetCommand(t *testing.T) {
	assert.Equal(t, commandSeasons, getCommand("покажи сезоны ф1"))
	assert.Equal(t, commandHello, getCommand("начать"))
	assert.Equal(t, commandHelp, getCommand("что умеешь?"))
	assert.Equal(t, commandUnknown, getCommand("погода завтра"))
}
