package models

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FilterOption selects either a time window or an ordering for the review
// feed. Time windows keep the collection's own order; ordering options sort
// the filtered set.
type FilterOption string

const (
	FilterAll         FilterOption = "all"
	FilterLast24Hours FilterOption = "last-24-hours"
	FilterThisWeek    FilterOption = "this-week"
	FilterThisMonth   FilterOption = "this-month"
	FilterThisYear    FilterOption = "this-year"
	FilterMostLiked   FilterOption = "most-liked"
	FilterLeastLiked  FilterOption = "least-liked"
	FilterRecent      FilterOption = "recent"
)

// DefaultPageSize is the feed page size used by the review list.
const DefaultPageSize = 6

// LeaderboardSize caps the ranked list returned by ComputeLeaderboard.
const LeaderboardSize = 10

// ParseFilterOption maps a query-string value onto a FilterOption, falling
// back to FilterAll for unknown or empty values.
func ParseFilterOption(s string) FilterOption {
	switch FilterOption(s) {
	case FilterLast24Hours, FilterThisWeek, FilterThisMonth, FilterThisYear,
		FilterMostLiked, FilterLeastLiked, FilterRecent:
		return FilterOption(s)
	default:
		return FilterAll
	}
}

// windowStart returns the inclusive lower bound of a time-window option
// anchored at now, or ok=false for non-window options. The week boundary is
// the most recent Monday at midnight; month and year boundaries are the first
// of the current calendar month and year.
func windowStart(opt FilterOption, now time.Time) (time.Time, bool) {
	switch opt {
	case FilterLast24Hours:
		return now.Add(-24 * time.Hour), true
	case FilterThisWeek:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		offset := (int(now.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), true
	case FilterThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case FilterThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// ViewReviews produces the ordered page of reviews the feed displays.
// Pages are 1-based; a page past the end comes back empty.
func ViewReviews(reviews []*Review, searchTerm string, opt FilterOption, page, pageSize int, now time.Time) []*Review {
	return Paginate(FilterSortReviews(reviews, searchTerm, opt, now), page, pageSize)
}

// FilterSortReviews applies search, time-window filtering and ordering, in
// that order. Search matches the name field case-insensitively; an empty
// term matches everything. A time-window option keeps only reviews created
// at or after the window's start. Sorting is stable, so ties keep the input
// collection's order.
func FilterSortReviews(reviews []*Review, searchTerm string, opt FilterOption, now time.Time) []*Review {
	filtered := make([]*Review, 0, len(reviews))
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	start, windowed := windowStart(opt, now)

	for _, r := range reviews {
		if term != "" && !strings.Contains(strings.ToLower(r.Name), term) {
			continue
		}
		if windowed && r.CreatedAt.Before(start) {
			continue
		}
		filtered = append(filtered, r)
	}

	switch opt {
	case FilterMostLiked:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Likes > filtered[j].Likes
		})
	case FilterLeastLiked:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Likes < filtered[j].Likes
		})
	case FilterRecent:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	case FilterAll:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Name < filtered[j].Name
		})
	}

	return filtered
}

// Paginate slices one 1-based page out of the ordered set.
func Paginate(reviews []*Review, page, pageSize int) []*Review {
	if page < 1 || pageSize < 1 {
		return []*Review{}
	}
	lo := (page - 1) * pageSize
	if lo >= len(reviews) {
		return []*Review{}
	}
	hi := lo + pageSize
	if hi > len(reviews) {
		hi = len(reviews)
	}
	return reviews[lo:hi]
}

// LeaderboardEntry ranks one author by authored review count. Derived on
// demand from the full review collection, never persisted.
type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	ReviewCount int       `json:"review_count"`
}

// ComputeLeaderboard tallies reviews per author and returns the top entries
// sorted by count descending. The display name is the first one observed for
// an author in collection order; equal counts keep that grouping order.
func ComputeLeaderboard(reviews []*Review) []LeaderboardEntry {
	index := make(map[uuid.UUID]int, len(reviews))
	entries := make([]LeaderboardEntry, 0, len(reviews))

	for _, r := range reviews {
		if i, ok := index[r.UserID]; ok {
			entries[i].ReviewCount++
			continue
		}
		name := r.ReviewerName
		if name == "" {
			name = "Anonymous"
		}
		index[r.UserID] = len(entries)
		entries = append(entries, LeaderboardEntry{
			UserID:      r.UserID,
			Username:    name,
			ReviewCount: 1,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ReviewCount > entries[j].ReviewCount
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}

// PickRandomReview draws one review uniformly at random, or nil when the
// collection is empty.
func PickRandomReview(reviews []*Review) *Review {
	if len(reviews) == 0 {
		return nil
	}
	return reviews[rand.IntN(len(reviews))]
}
