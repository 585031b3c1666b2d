// Package menu computes which of the four rotating weekly menus applies to a
// calendar date.
package menu

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	cycleWeeks    = 4
	referenceWeek = 3
)

// Monday 2025-10-06 is week 3 of the rotation.
var reference = time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

//go:embed weeks.yaml
var weeksYAML []byte

type Day struct {
	Primi    []string `yaml:"primi"    json:"primi"`
	Secondi  []string `yaml:"secondi"  json:"secondi"`
	Contorni []string `yaml:"contorni" json:"contorni"`
}

type week struct {
	Number int            `yaml:"number"`
	Days   map[string]Day `yaml:"days"`
}

// Result is the menu served on a date.
type Result struct {
	Date      string   `json:"date"`
	Week      int      `json:"week"`
	Day       string   `json:"day"`
	IsWeekend bool     `json:"isWeekend"`
	Primi     []string `json:"primi"`
	Secondi   []string `json:"secondi"`
	Contorni  []string `json:"contorni"`
}

type Calendar struct {
	weeks map[int]week
}

// Load parses the embedded rotation.
func Load() (*Calendar, error) {
	return Parse(weeksYAML)
}

// Parse builds a calendar from YAML and checks every week has all weekdays.
func Parse(data []byte) (*Calendar, error) {
	var doc struct {
		Weeks []week `yaml:"weeks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	c := &Calendar{weeks: make(map[int]week, len(doc.Weeks))}
	for _, w := range doc.Weeks {
		if w.Number < 1 || w.Number > cycleWeeks {
			return nil, fmt.Errorf("menu week %d out of range", w.Number)
		}
		for _, d := range weekdays {
			if _, ok := w.Days[d]; !ok {
				return nil, fmt.Errorf("menu week %d: missing %s", w.Number, d)
			}
		}
		c.weeks[w.Number] = w
	}
	if len(c.weeks) != cycleWeeks {
		return nil, fmt.Errorf("menu: want %d weeks, got %d", cycleWeeks, len(c.weeks))
	}
	return c, nil
}

// WeekOf returns the rotation week (1..4) of the date's calendar day.
func WeekOf(date time.Time) int {
	days := civilDays(date)
	weeks := floorDiv(days, 7)
	return mod(weeks+referenceWeek-1, cycleWeeks) + 1
}

// For returns the menu for the date's calendar day. Weekends have no menu.
func (c *Calendar) For(date time.Time) Result {
	res := Result{
		Date:     date.Format("2006-01-02"),
		Week:     WeekOf(date),
		Primi:    []string{},
		Secondi:  []string{},
		Contorni: []string{},
	}
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		res.IsWeekend = true
		return res
	}
	res.Day = weekdays[int(wd)-1]
	day := c.weeks[res.Week].Days[res.Day]
	res.Primi = append(res.Primi, day.Primi...)
	res.Secondi = append(res.Secondi, day.Secondi...)
	res.Contorni = append(res.Contorni, day.Contorni...)
	return res
}

// ParseDate reads YYYY-MM-DD in loc; empty means today.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().In(loc), nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

func civilDays(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(reference).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
