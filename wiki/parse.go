package wiki

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"racebot-wiki/models"
)

var dayMonthRe = regexp.MustCompile(`(\d{1,2}\s+[A-Za-z]+)`)
var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// findTableWithHeaders returns the first wikitable whose header row contains
// both wanted column titles, or nil.
func findTableWithHeaders(doc *goquery.Document, first, second string) *goquery.Selection {
	var found *goquery.Selection

	doc.Find("table.wikitable").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		headers := headerTexts(tbl)

		if containsHeader(headers, first) && containsHeader(headers, second) {
			found = tbl
			return false
		}
		return true
	})

	return found
}

func headerTexts(tbl *goquery.Selection) []string {
	headers := make([]string, 0)
	tbl.Find("tr").First().Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	return headers
}

func containsHeader(headers []string, want string) bool {
	for _, h := range headers {
		if strings.Contains(h, want) {
			return true
		}
	}
	return false
}

func headerIndex(headers []string, want string) int {
	for idx, h := range headers {
		if strings.Contains(h, want) {
			return idx
		}
	}
	return -1
}

// parseScheduleTable turns the season schedule wikitable into races. Columns:
// 0 - round, 1 - grand prix name with a link, 2 - date.
func parseScheduleTable(tbl *goquery.Selection, year int) []models.Race {
	races := make([]models.Race, 0)

	tbl.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 3 {
			return
		}

		round, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil {
			return
		}

		linkTag := cells.Eq(1).Find("a").First()
		href, ok := linkTag.Attr("href")
		if !ok {
			return
		}
		raceName := strings.TrimSpace(linkTag.Text())

		dateNorm, dateObj := parseDateCell(strings.TrimSpace(cells.Eq(2).Text()), year)

		races = append(races, models.Race{
			Round:    round,
			RaceName: raceName,
			Date:     dateNorm,
			DateObj:  dateObj,
			Link:     normalizeRaceLink(year, raceName, href),
		})
	})

	return races
}

// parseClassificationTable reads driver names and points out of the race
// classification wikitable. A points cell that does not parse counts as 0.
func parseClassificationTable(tbl *goquery.Selection) models.Classification {
	headers := headerTexts(tbl)
	idxDriver := headerIndex(headers, "Driver")
	idxPoints := headerIndex(headers, "Points")
	if idxDriver < 0 || idxPoints < 0 {
		return models.Classification{}
	}

	results := models.Classification{}

	tbl.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() <= idxDriver || cells.Length() <= idxPoints {
			return
		}

		driver := strings.TrimSpace(cells.Eq(idxDriver).Text())
		if driver == "" {
			return
		}

		points, err := strconv.ParseFloat(strings.TrimSpace(cells.Eq(idxPoints).Text()), 64)
		if err != nil {
			points = 0
		}
		results[driver] = points
	})

	return results
}

// normalizeRaceLink rebuilds the race link as "/wiki/{year}_{Race_Name}" when
// the schedule links the permanent article (e.g. "/wiki/Bahrain_Grand_Prix")
// instead of the season-specific one.
func normalizeRaceLink(year int, raceName, href string) string {
	if strings.HasPrefix(href, "/wiki/") && !strings.Contains(href, fmt.Sprintf("/wiki/%d_", year)) {
		cleaned := strings.ReplaceAll(raceName, " ", "_")
		cleaned = strings.ReplaceAll(cleaned, "’", "")
		return fmt.Sprintf("/wiki/%d_%s", year, cleaned)
	}
	return href
}

// parseDateCell normalizes a schedule date cell to "2006-01-02". Handles the
// plain ISO form, a full "16 March 2025", and range forms like "2–4 March"
// where the last day-month pair is the race day. Unrecognized text comes back
// unchanged with a zero time.
func parseDateCell(text string, year int) (string, time.Time) {
	if isoDateRe.MatchString(text) {
		if dt, err := time.Parse("2006-01-02", text); err == nil {
			return text, dt
		}
	}

	if matches := dayMonthRe.FindAllString(text, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		if dt, err := time.Parse("2 January 2006", fmt.Sprintf("%s %d", last, year)); err == nil {
			return dt.Format("2006-01-02"), dt
		}
	}

	if dt, err := time.Parse("2 January 2006", text); err == nil {
		return dt.Format("2006-01-02"), dt
	}

	return text, time.Time{}
}
