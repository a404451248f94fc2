package activity

import (
	"fmt"
	"time"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Window returns the [start, end) reporting window of a range, relative to
// now. All ranges end at the end of now's day; day starts today, week 6 days
// back, month at the 1st and year on Jan 1. Bucketing uses now's location, so
// callers must pass entries recorded in (or converted to) the same location.
func Window(r Range, now time.Time) (start, end time.Time) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	end = today.AddDate(0, 0, 1)

	switch r {
	case RangeWeek:
		start = today.AddDate(0, 0, -6)
	case RangeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	case RangeYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default: // day
		start = today
	}
	return start, end
}

// PageViewSeries buckets page-view entries into the dense chart axis of the
// given range: hours of today ("0:00".."23:00"), the last 7 days, every day
// of the current month, or the 12 months of the current year. Zero buckets
// are kept so the axis never collapses.
func PageViewSeries(entries []Entry, r Range, now time.Time) TimeSeries {
	start, end := Window(r, now)
	loc := now.Location()

	var labels []string
	bucket := func(t time.Time) int { return -1 }

	switch r {
	case RangeDay:
		labels = make([]string, 24)
		for h := 0; h < 24; h++ {
			labels[h] = fmt.Sprintf("%d:00", h)
		}
		bucket = func(t time.Time) int { return t.In(loc).Hour() }
	case RangeWeek, RangeMonth:
		// The month axis covers the whole month, not just the days elapsed.
		// Days are stepped calendrically so DST transitions cannot shift or
		// drop a bucket.
		axisEnd := end
		if r == RangeMonth {
			axisEnd = start.AddDate(0, 1, 0)
		}
		idx := make(map[string]int)
		for d := start; d.Before(axisEnd); d = d.AddDate(0, 0, 1) {
			date := d.Format("2006-01-02")
			idx[date] = len(labels)
			labels = append(labels, date)
		}
		bucket = func(t time.Time) int {
			if i, ok := idx[t.In(loc).Format("2006-01-02")]; ok {
				return i
			}
			return -1
		}
	case RangeYear:
		labels = monthLabels
		bucket = func(t time.Time) int { return int(t.In(loc).Month()) - 1 }
	}

	counts := make([]int, len(labels))
	for _, e := range entries {
		if e.ActivityType != TypePageView {
			continue
		}
		if e.CreatedAt.Before(start) || !e.CreatedAt.Before(end) {
			continue
		}
		if i := bucket(e.CreatedAt); i >= 0 && i < len(counts) {
			counts[i]++
		}
	}
	return TimeSeries{Labels: labels, Counts: counts}
}

// PageViewsByPage groups the range's page views by the visited page. Entries
// without a page detail are grouped under "unknown". Pages are listed in
// first-seen order.
func PageViewsByPage(entries []Entry, r Range, now time.Time) PageViews {
	start, end := Window(r, now)

	pv := PageViews{Pages: make([]string, 0), Counts: make([]int, 0)}
	idx := make(map[string]int)
	for _, e := range entries {
		if e.ActivityType != TypePageView {
			continue
		}
		if e.CreatedAt.Before(start) || !e.CreatedAt.Before(end) {
			continue
		}
		page := "unknown"
		if p, ok := e.Details["page"].(string); ok && p != "" {
			page = p
		}
		i, ok := idx[page]
		if !ok {
			i = len(pv.Pages)
			idx[page] = i
			pv.Pages = append(pv.Pages, page)
			pv.Counts = append(pv.Counts, 0)
		}
		pv.Counts[i]++
	}
	return pv
}
