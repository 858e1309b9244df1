// Package grid models a rectangular board of open and blocked cells.
//
// Positions use x for the column and y for the row, with (0,0) at the top
// left. Directions turn clockwise through North, East, South and West. A Grid
// is immutable once built: WithBlocked returns a new grid.
//
// Layouts are parsed from text rows with a Legend, '#' wall, '.' open, 'S'
// start and 'E' end by default. Invalid input yields a *ConfigError that
// matches ErrConfiguration under errors.Is.
package grid
