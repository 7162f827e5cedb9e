// Package wiki pulls season schedules and race classifications from the
// English Wikipedia championship pages.
package wiki

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/PuerkitoBio/goquery"

	"racebot-wiki/models"
	"racebot-wiki/temperrors"
)

const firstSeason = 1950

type WikiAPI struct {
	url       string
	userAgent string
	client    *http.Client
}

func NewWikiAPI() *WikiAPI {
	return &WikiAPI{
		url:       "https://en.wikipedia.org",
		userAgent: "Mozilla/5.0 (compatible; RaceBot/1.0; +https://github.com/MoroseWolf/racebot-wiki)",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListSeasons returns every championship year, newest first, so recent
// seasons come up as the first keyboard buttons.
func (w *WikiAPI) ListSeasons() []int {
	current := time.Now().Year()

	seasons := make([]int, 0, current-firstSeason+1)
	for year := current; year >= firstSeason; year-- {
		seasons = append(seasons, year)
	}
	return seasons
}

// ListRaces scrapes the season schedule from the championship page: the
// wikitable whose header row mentions both "Round" and "Grand Prix". Rows
// without a round number or a race link are skipped.
func (w *WikiAPI) ListRaces(ctx context.Context, year int) ([]models.Race, error) {
	doc, err := w.getDocument(ctx, fmt.Sprintf("/wiki/%d_Formula_One_World_Championship", year))
	if err != nil {
		return nil, fmt.Errorf("in listRaces %w", err)
	}

	table := findTableWithHeaders(doc, "Round", "Grand Prix")
	if table == nil {
		return nil, temperrors.ErrEmptyList
	}

	races := parseScheduleTable(table, year)
	if len(races) == 0 {
		return nil, temperrors.ErrEmptyList
	}

	sort.Slice(races, func(i, j int) bool { return races[i].Round < races[j].Round })
	return races, nil
}

// GetClassification scrapes the point classification from a race page: the
// wikitable with "Driver" and "Points" columns. Any failure (transport,
// missing table) degrades to an empty map, the caller treats that as
// "no data yet".
func (w *WikiAPI) GetClassification(ctx context.Context, link string) models.Classification {
	doc, err := w.getDocument(ctx, link)
	if err != nil {
		slog.Warn("Race page unavailable", slog.String("link", link), slog.Any("error", err))
		return models.Classification{}
	}

	table := findTableWithHeaders(doc, "Driver", "Points")
	if table == nil {
		slog.Warn("No Driver/Points table on race page", slog.String("link", link))
		return models.Classification{}
	}

	return parseClassificationTable(table)
}

func (w *WikiAPI) getDocument(ctx context.Context, path string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url+path, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", w.userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error in getRequest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading responce: %w", err)
	}
	return doc, nil
}
