// Package shortcut measures how many steps a walker saves by leaving its path
// and moving in a straight line, ignoring obstacles, for a bounded number of
// steps.
package shortcut

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/wricardo/gridpath/maze/grid"
)

// Shortcut is one pair of path indices with a positive saving.
type Shortcut struct {
	From     int           `json:"from"`
	To       int           `json:"to"`
	Start    grid.Position `json:"start"`
	End      grid.Position `json:"end"`
	Distance int           `json:"distance"`
	Saving   int           `json:"saving"`
}

// Report aggregates the shortcuts of one path.
type Report struct {
	Budget    int         `json:"budget"`
	Threshold int         `json:"threshold"`
	Steps     int         `json:"steps"`
	Histogram map[int]int `json:"histogram"`
	AtLeast   int         `json:"at_least"`
	Pairs     int         `json:"pairs"`
}

// Savings returns the distinct saving amounts in ascending order.
func (r *Report) Savings() []int {
	keys := maps.Keys(r.Histogram)
	slices.Sort(keys)
	return keys
}

// Count returns how many shortcuts save exactly saving steps.
func (r *Report) Count(saving int) int {
	return r.Histogram[saving]
}

// Pairs returns every (i, j), i < j, whose Manhattan distance is within
// budget and shorter than the j-i steps the path takes between them.
//
// The path must be contiguous: consecutive entries one unit step apart.
func Pairs(path grid.Path, budget int) ([]Shortcut, error) {
	var out []Shortcut
	err := each(path, budget, func(s Shortcut) {
		out = append(out, s)
	})
	return out, err
}

// Analyze builds the saving histogram of path for budget and counts the
// savings at or above threshold.
func Analyze(path grid.Path, budget, threshold int) (*Report, error) {
	report := &Report{
		Budget:    budget,
		Threshold: threshold,
		Steps:     path.Steps(),
		Histogram: make(map[int]int),
	}
	err := each(path, budget, func(s Shortcut) {
		report.Histogram[s.Saving]++
		report.Pairs++
		if s.Saving >= threshold {
			report.AtLeast++
		}
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func each(path grid.Path, budget int, visit func(Shortcut)) error {
	if budget < 0 {
		return grid.Configf("budget", "must be non-negative, got %d", budget)
	}
	if err := checkContiguous(path); err != nil {
		return err
	}

	for i := 0; i < len(path); i++ {
		for j := i + 1; j < len(path); {
			d := path[i].Manhattan(path[j])
			if d > budget {
				// Each step moves one cell, so the distance cannot drop back
				// within budget for another d-budget entries.
				j += d - budget
				continue
			}
			if saving := (j - i) - d; saving > 0 {
				visit(Shortcut{
					From:     i,
					To:       j,
					Start:    path[i],
					End:      path[j],
					Distance: d,
					Saving:   saving,
				})
			}
			j++
		}
	}
	return nil
}

func checkContiguous(path grid.Path) error {
	for i := 1; i < len(path); i++ {
		if path[i-1].Manhattan(path[i]) != 1 {
			return grid.Configf("path", "entries %d and %d (%s, %s) are not one step apart", i-1, i, path[i-1], path[i])
		}
	}
	return nil
}
