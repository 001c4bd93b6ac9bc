package liquid

import (
	"errors"
	"fmt"
	"slices"
)

const (
	ScenarioEmpty    = "empty"
	ScenarioDemo     = "demo"
	ScenarioBasin    = "basin"
	ScenarioFountain = "fountain"
)

// Scenarios lists the layouts ApplyScenario understands.
func Scenarios() []string {
	return []string{ScenarioEmpty, ScenarioDemo, ScenarioBasin, ScenarioFountain}
}

func isScenario(name string) bool {
	return slices.Contains(Scenarios(), name)
}

// ApplyScenario queues the named layout on s. Like every mutator it only takes
// effect on the next Run. Parts of a layout that do not fit the grid are
// reported but the rest is still queued.
func ApplyScenario(s *Simulation, name string) error {
	switch name {
	case ScenarioEmpty:
		return nil
	case ScenarioDemo:
		return demoLayout(s)
	case ScenarioBasin:
		return basinLayout(s)
	case ScenarioFountain:
		if err := basinLayout(s); err != nil {
			return err
		}
		return fountainLayout(s)
	default:
		return fmt.Errorf("scenario %q: %w", name, ErrInvalidArgument)
	}
}

// demoLayout drops two blobs of liquid near a small wall cup.
func demoLayout(s *Simulation) error {
	return errors.Join(
		s.AddLiquid(2, 7, 6.0),
		s.AddLiquid(1, 2, 4.0),
		s.SetCellType(5, 7, Solid),
		s.SetCellType(5, 6, Solid),
		s.SetCellType(5, 8, Solid),
		s.SetCellType(4, 5, Solid),
		s.SetCellType(4, 9, Solid),
	)
}

// basinLayout walls off the bottom half of the grid and pours 4.0 units into
// its middle.
func basinLayout(s *Simulation) error {
	w, h := s.w, s.h
	if w < 3 || h < 3 {
		return fmt.Errorf("basin needs a 3x3 grid, have %dx%d: %w", h, w, ErrIndexOutOfBounds)
	}
	var errs []error
	for y := 0; y < w; y++ {
		errs = append(errs, s.SetCellType(h-1, y, Solid))
	}
	for x := h / 2; x < h-1; x++ {
		errs = append(errs, s.SetCellType(x, 0, Solid), s.SetCellType(x, w-1, Solid))
	}
	errs = append(errs, s.AddLiquid(h/2, w/2, 4.0))
	return errors.Join(errs...)
}

// fountainLayout adds a source near the top and a drain in the basin floor.
func fountainLayout(s *Simulation) error {
	w, h := s.w, s.h
	if w < 4 || h < 3 {
		return fmt.Errorf("fountain needs a 4x3 grid, have %dx%d: %w", h, w, ErrIndexOutOfBounds)
	}
	return errors.Join(
		s.SetCellType(0, w/2, Source),
		s.SetCellType(h-1, 1, Drain),
	)
}
