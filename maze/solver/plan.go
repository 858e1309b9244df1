package solver

import (
	"github.com/wricardo/gridpath/maze/grid"
	"github.com/wricardo/gridpath/maze/pathset"
	"github.com/wricardo/gridpath/maze/search"
)

// runner hides the state type of the underlying space.
type runner interface {
	minCost(opts []search.Option) (int, bool, error)
	stats(opts []search.Option) (search.Stats, error)
	symmetric(opts []search.Option) (bool, error)
	path(opts []search.Option) (grid.Path, error)
	cells(opts []search.Option) (*pathset.Report[grid.Position], error)
}

type plan[S comparable] struct {
	space   search.Reversible[S]
	starts  []S
	goal    func(S) bool
	targets []S
	isStart func(S) bool
	project func(S) grid.Position

	result *search.Result[S]
}

func (p *plan[S]) forward(opts []search.Option) (*search.Result[S], error) {
	if p.result != nil {
		return p.result, nil
	}
	result, err := search.Run[S](p.space, p.starts, p.goal, opts...)
	if err != nil {
		return nil, err
	}
	p.result = result
	return result, nil
}

func (p *plan[S]) minCost(opts []search.Option) (int, bool, error) {
	result, err := p.forward(opts)
	if err != nil {
		return 0, false, err
	}
	cost, ok := result.Cost()
	return cost, ok, nil
}

func (p *plan[S]) stats(opts []search.Option) (search.Stats, error) {
	result, err := p.forward(opts)
	if err != nil {
		return search.Stats{}, err
	}
	return result.Stats, nil
}

func (p *plan[S]) symmetric(opts []search.Option) (bool, error) {
	result, err := p.forward(opts)
	if err != nil {
		return false, err
	}
	backward, err := search.Run(p.space.Reverse(), p.targets, p.isStart, opts...)
	if err != nil {
		return false, err
	}
	fc, fok := result.Cost()
	bc, bok := backward.Cost()
	return fok == bok && fc == bc, nil
}

func (p *plan[S]) path(opts []search.Option) (grid.Path, error) {
	result, err := p.forward(opts)
	if err != nil {
		return nil, err
	}
	states, err := result.BestPath()
	if err != nil {
		return nil, err
	}
	if states == nil {
		return nil, nil
	}
	path := make(grid.Path, 0, len(states))
	for _, s := range states {
		cell := p.project(s)
		if n := len(path); n > 0 && path[n-1] == cell {
			continue
		}
		path = append(path, cell)
	}
	return path, nil
}

func (p *plan[S]) cells(opts []search.Option) (*pathset.Report[grid.Position], error) {
	result, err := p.forward(opts)
	if err != nil {
		return nil, err
	}
	return pathset.Cells(result, p.space.Reverse(), p.project, opts...)
}
