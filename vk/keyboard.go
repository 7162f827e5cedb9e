package vk

import (
	"fmt"
	"regexp"

	"racebot-wiki/models"
)

type Kb struct {
	Inline  bool       `json:"inline,omitempty"`
	Buttons [][]Button `json:"buttons"`
}

type Button struct {
	Action ActionBtn `json:"action"`
	Color  string    `json:"color,omitempty"`
}

type ActionBtn struct {
	TypeAction string `json:"type"`
	Link       string `json:"link,omitempty"`
	Label      string `json:"label,omitempty"`
	Payload    string `json:"payload,omitempty"`
}

type Payload struct {
	Command string `json:"command"`
}

const (
	seasonsPerRow  = 4
	seasonsPerPage = 28
	racesPerRow    = 3
)

var seasonsPageRe = regexp.MustCompile(`^seasonsPage_\d{1,2}$`)

// makeSeasonsKeyboard shows one page of season buttons plus navigation
// buttons between pages; the token of each season rides in the payload.
func makeSeasonsKeyboard(choices []models.Choice, numPage int) (Kb, error) {
	from := seasonsPerPage * (numPage - 1)
	if numPage < 1 || from >= len(choices) {
		return Kb{}, fmt.Errorf("с заданными параметрами невозможно отобразить клавиатуру. Для %d сезонов не существует %d-ой страницы при %d кнопках", len(choices), numPage, seasonsPerPage)
	}

	to := from + seasonsPerPage
	if to > len(choices) {
		to = len(choices)
	}

	buttons := chopButtons(choices[from:to], seasonsPerRow)

	navRow := make([]Button, 0, 2)
	if numPage > 1 {
		navRow = append(navRow, Button{
			Action: ActionBtn{TypeAction: "callback", Label: "Назад", Payload: fmt.Sprintf(`{"command" : "seasonsPage_%d"}`, numPage-1)},
			Color:  "primary",
		})
	}
	if to < len(choices) {
		navRow = append(navRow, Button{
			Action: ActionBtn{TypeAction: "callback", Label: "Далее", Payload: fmt.Sprintf(`{"command" : "seasonsPage_%d"}`, numPage+1)},
			Color:  "primary",
		})
	}
	if len(navRow) > 0 {
		buttons = append(buttons, navRow)
	}

	return Kb{Inline: true, Buttons: buttons}, nil
}

func makeRacesKeyboard(choices []models.Choice) Kb {
	return Kb{Inline: true, Buttons: chopButtons(choices, racesPerRow)}
}

func chopButtons(choices []models.Choice, perRow int) [][]Button {
	buttons := [][]Button{}
	btnsRow := make([]Button, 0, perRow)

	for _, choice := range choices {
		btnsRow = append(btnsRow, Button{
			Action: ActionBtn{
				TypeAction: "callback",
				Label:      choice.Label,
				Payload:    fmt.Sprintf(`{"command" : "%s"}`, choice.Token),
			},
		})

		if len(btnsRow) == perRow {
			buttons = append(buttons, btnsRow)
			btnsRow = nil
		}
	}
	if len(btnsRow) > 0 {
		buttons = append(buttons, btnsRow)
	}

	return buttons
}
