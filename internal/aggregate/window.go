package aggregate

import (
	"fmt"
	"math/big"
	"sort"
	"time"
)

// Window selects the timeline range.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

// ErrWindowInvalid reports an unknown window filter.
var ErrWindowInvalid = fmt.Errorf("unknown timeline window")

// ParseWindow validates a window string. Empty defaults to week, the
// dashboard's default view.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "":
		return WindowWeek, nil
	case WindowToday, WindowWeek, WindowMonth, WindowYear:
		return Window(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrWindowInvalid, s)
	}
}

// Point is one timeline entry. For the today window each donation is its own
// minute-labelled point; for the other windows donations sharing a calendar
// date are summed into a single date-labelled point.
type Point struct {
	Label  string
	At     time.Time
	Amount *big.Int
}

// Timeline gathers donations across every campaign (deleted included),
// filters them by the window and buckets them into chart points sorted
// ascending by time.
func (e *Engine) Timeline(window Window) ([]Point, error) {
	switch window {
	case WindowToday, WindowWeek, WindowMonth, WindowYear:
	default:
		return nil, fmt.Errorf("%w: %q", ErrWindowInvalid, window)
	}

	now := e.clock.Now()
	var points []Point
	byDate := make(map[string]int)

	for _, c := range e.campaigns.AllCampaigns() {
		for _, d := range e.donations.Donators(c.ID) {
			ts := d.Timestamp.In(now.Location())
			if !inWindow(window, now, ts) {
				continue
			}
			if window == WindowToday {
				points = append(points, Point{
					Label:  ts.Format("15:04"),
					At:     ts,
					Amount: new(big.Int).Set(d.Amount),
				})
				continue
			}
			day := ts.Format("02/01/2006")
			if i, ok := byDate[day]; ok {
				points[i].Amount.Add(points[i].Amount, d.Amount)
				continue
			}
			byDate[day] = len(points)
			points = append(points, Point{
				Label:  day,
				At:     time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
				Amount: new(big.Int).Set(d.Amount),
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].At.Before(points[j].At) })
	return points, nil
}

func inWindow(w Window, now, ts time.Time) bool {
	switch w {
	case WindowToday:
		ny, nm, nd := now.Date()
		ty, tm, td := ts.Date()
		return ny == ty && nm == tm && nd == td
	case WindowWeek:
		return now.Sub(ts) <= 7*24*time.Hour
	case WindowMonth:
		return now.Sub(ts) <= 30*24*time.Hour
	case WindowYear:
		return now.Sub(ts) <= 365*24*time.Hour
	default:
		return false
	}
}
