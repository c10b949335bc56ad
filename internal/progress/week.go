package progress

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/models"
)

// UntaggedBucket is the synthetic tag under which untagged focuses are
// grouped in weekly summaries. It is listed alongside real tags but never
// ranked as the top tag.
const UntaggedBucket = "Untagged"

// WeekDay is one slot of the Monday-first week view. Days the user never
// set up (including future days of the current week) carry zero counts
// and are neutral, not missed.
type WeekDay struct {
	Day       string
	Date      time.Time
	Completed int
	Total     int
}

// MaintainsStreak applies the same qualifying rule as DayEntry, guarding
// the no-entry case.
func (d WeekDay) MaintainsStreak(threshold int) bool {
	if d.Total == 0 {
		return false
	}
	required := threshold
	if d.Total < required {
		required = d.Total
	}
	return d.Completed >= required
}

// MakeWeek returns the 7 days of the calendar week containing todayKey,
// Monday first.
func MakeWeek(todayKey string, entries []models.DayEntry) ([]WeekDay, error) {
	if _, ok := daykey.Parse(todayKey); !ok {
		return nil, fmt.Errorf("invalid day key: %q", todayKey)
	}

	idx := indexByDay(entries)
	key := daykey.WeekStart(todayKey)

	days := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		date, _ := daykey.Parse(key)
		day := WeekDay{Day: key, Date: date}
		if entry, ok := idx[key]; ok {
			day.Completed = entry.CompletedCount()
			day.Total = entry.TotalItems()
		}
		days = append(days, day)
		key = daykey.Next(key)
	}
	return days, nil
}

// WeekSuccessRate returns the percentage of set-up days (Total > 0) that
// qualify, rounded to the nearest integer. Days without an entry are
// excluded from the denominator; a week with no set-up days rates 0.
func WeekSuccessRate(days []WeekDay, threshold int) int {
	tracked := 0
	qualified := 0
	for _, day := range days {
		if day.Total == 0 {
			continue
		}
		tracked++
		if day.MaintainsStreak(threshold) {
			qualified++
		}
	}
	if tracked == 0 {
		return 0
	}
	return int(math.Round(float64(qualified) / float64(tracked) * 100))
}

// TagSummary aggregates focus completion for one tag across a week.
type TagSummary struct {
	Tag       string
	Completed int
	Total     int
}

// Rate returns the completion fraction for the tag.
func (s TagSummary) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// WeeklySummary is the derived, non-persistent week view: per-day slots,
// the week success rate, and the per-tag breakdown.
type WeeklySummary struct {
	Days        []WeekDay
	SuccessRate int
	Tags        []TagSummary
	// TopTag is the most successfully pursued real tag of the week,
	// ranked by completion rate with ties broken by larger total.
	// Empty when no tagged focus exists in the window.
	TopTag string
}

// BuildWeeklySummary computes the full week view for the week containing
// todayKey.
func BuildWeeklySummary(todayKey string, entries []models.DayEntry, threshold int) (WeeklySummary, error) {
	days, err := MakeWeek(todayKey, entries)
	if err != nil {
		return WeeklySummary{}, err
	}

	idx := indexByDay(entries)
	buckets := make(map[string]*TagSummary)
	for _, day := range days {
		entry, ok := idx[day.Day]
		if !ok {
			continue
		}
		for _, item := range entry.ActiveItems() {
			tag := item.Tag
			if tag == "" {
				tag = UntaggedBucket
			}
			bucket, ok := buckets[tag]
			if !ok {
				bucket = &TagSummary{Tag: tag}
				buckets[tag] = bucket
			}
			bucket.Total++
			if item.Completed {
				bucket.Completed++
			}
		}
	}

	tags := make([]TagSummary, 0, len(buckets))
	for _, bucket := range buckets {
		tags = append(tags, *bucket)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Total != tags[j].Total {
			return tags[i].Total > tags[j].Total
		}
		return tags[i].Tag < tags[j].Tag
	})

	return WeeklySummary{
		Days:        days,
		SuccessRate: WeekSuccessRate(days, threshold),
		Tags:        tags,
		TopTag:      topTag(tags),
	}, nil
}

// topTag ranks real tags by completion rate, breaking ties by larger
// total, then by name for determinism.
func topTag(tags []TagSummary) string {
	best := TagSummary{}
	for _, tag := range tags {
		if tag.Tag == UntaggedBucket || tag.Total == 0 {
			continue
		}
		if best.Tag == "" ||
			tag.Rate() > best.Rate() ||
			(tag.Rate() == best.Rate() && tag.Total > best.Total) ||
			(tag.Rate() == best.Rate() && tag.Total == best.Total && tag.Tag < best.Tag) {
			best = tag
		}
	}
	return best.Tag
}
