package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/time/rate"

	"racebot-wiki/models"
	"racebot-wiki/standings"
	"racebot-wiki/token"
)

// requestInterval is the minimum pause between successive race-page requests
// within one interaction, Wikipedia is scraped politely.
const requestInterval = time.Second

type raceStorage interface {
	ListSeasons() []int
	ListRaces(ctx context.Context, year int) ([]models.Race, error)
	GetClassification(ctx context.Context, link string) models.Classification
}

type ServiceStandings struct {
	storage raceStorage
	limiter *rate.Limiter
}

func NewServiceStandings(storage raceStorage) *ServiceStandings {
	return &ServiceStandings{
		storage: storage,
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

func (s *ServiceStandings) GetHelloMessage() string {
	return `Привет! Я бот, который показывает личный зачёт F1 на любой момент любого сезона :)
Напиши мне "сезоны" или отправь /standings, выбери сезон и этап — а я посчитаю очки по опубликованным результатам гонок.

Приятного пользования :)`
}

func (s *ServiceStandings) GetHelpMessage() string {
	return `Команды которые я понимаю:
	• сезоны - список сезонов Формулы-1 с 1950 года
	• после выбора сезона покажу этапы, результаты которых уже опубликованы
	• после выбора этапа посчитаю личный зачёт с начала сезона по этот этап

!Внимание! Информация берётся со страниц Википедии и может обновляться не сразу.`
}

// GetSeasonsMenu starts the navigation: one button per season, newest first.
func (s *ServiceStandings) GetSeasonsMenu() (string, []models.Choice) {
	seasons := s.storage.ListSeasons()
	if len(seasons) == 0 {
		return "Не удалось получить список сезонов. Попробуй ещё раз позже.", nil
	}

	choices := make([]models.Choice, 0, len(seasons))
	for _, year := range seasons {
		choices = append(choices, models.Choice{
			Label: strconv.Itoa(year),
			Token: token.EncodeSeason(year),
		})
	}

	return "Сезоны Формулы-1. Выбери сезон:", choices
}

// GetSeasonRacesMenu walks the season schedule and keeps only races whose
// classification is already published. Race pages are requested strictly one
// after another through the limiter.
func (s *ServiceStandings) GetSeasonRacesMenu(ctx context.Context, year int) (string, []models.Choice) {
	races, err := s.storage.ListRaces(ctx, year)
	if err != nil || len(races) == 0 {
		slog.Info("No schedule for season", slog.Int("year", year), slog.Any("error", err))
		return fmt.Sprintf("Не нашёл расписание сезона %d. Попробуй выбрать другой сезон.", year), nil
	}

	choices := make([]models.Choice, 0, len(races))
	for _, race := range races {
		if err := s.limiter.Wait(ctx); err != nil {
			slog.Warn("Limiter wait interrupted", slog.Any("error", err))
			break
		}

		classification := s.storage.GetClassification(ctx, race.Link)
		if !standings.IsComplete(classification) {
			continue
		}

		label := fmt.Sprintf("%d. %s", race.Round, race.RaceName)
		if race.Date != "" {
			label = fmt.Sprintf("%d. %s (%s)", race.Round, race.RaceName, race.Date)
		}

		choices = append(choices, models.Choice{
			Label: label,
			Token: token.EncodeRace(year, race.Round),
		})
	}

	if len(choices) == 0 {
		return fmt.Sprintf("В сезоне %d пока нет гонок с опубликованными результатами. Возможно они появятся в будущем :)", year), nil
	}

	return fmt.Sprintf("Сезон %d. Выбери этап, по который посчитать личный зачёт:", year), choices
}

// GetStandingsMessage aggregates per-race classifications for rounds
// 1..round and renders the ranked table.
func (s *ServiceStandings) GetStandingsMessage(ctx context.Context, year, round int) string {
	races, err := s.storage.ListRaces(ctx, year)
	if err != nil || len(races) == 0 {
		slog.Info("No schedule for season", slog.Int("year", year), slog.Any("error", err))
		return fmt.Sprintf("Не нашёл расписание сезона %d. Начни сначала с выбора сезона.", year)
	}

	classifications := make([]models.Classification, 0, round)
	for _, race := range races {
		if race.Round > round {
			break
		}

		if err := s.limiter.Wait(ctx); err != nil {
			slog.Warn("Limiter wait interrupted", slog.Any("error", err))
			break
		}

		classifications = append(classifications, s.storage.GetClassification(ctx, race.Link))
	}

	table := standings.Aggregate(classifications, round)
	if len(table) == 0 {
		return "Информации о результатах этих этапов нет. Возможно она появится в будущем :)"
	}

	return fmt.Sprintf("Личный зачёт F1 после этапа %d, сезон %d:\n%s", round, year, standingsToString(table))
}

// ----------------------------------
//
//	вспомогательные функции
//
// ----------------------------------

func standingsToString(table []models.StandingsEntry) string {
	message := new(strings.Builder)

	w := tabwriter.NewWriter(message, 2, 5, 1, ' ', tabwriter.AlignRight)
	for place, entry := range table {
		fmt.Fprintf(w, "%d |\t%s -\t %s\n", place+1, entry.Driver, pointsToString(entry.Points))
	}

	w.Flush()
	return message.String()
}

func pointsToString(points float64) string {
	return strconv.FormatFloat(points, 'f', -1, 64)
}
