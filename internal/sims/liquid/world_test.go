package liquid

import (
	"slices"
	"testing"

	"liquid-ca/internal/core"
)

func newTestWorld(t *testing.T, scenario string, w, h int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Params.Scenario = scenario
	world := NewWithConfig(cfg)
	world.Reset(0)
	return world
}

func checkDisplayInSync(t *testing.T, world *World, frame int) {
	t.Helper()
	cells := world.Cells()
	for i := range world.sim.cells {
		c := &world.sim.cells[i]
		if want := encodeDisplayValue(c); cells[i] != want {
			t.Fatalf("frame %d: cell (%d,%d) displays %#x, want %#x", frame, c.x, c.y, cells[i], want)
		}
		settled := c.typ == Blank && c.liquid >= LiquidMin && c.settled
		if (world.SettledMask()[i] == 1) != settled {
			t.Fatalf("frame %d: settled mask for (%d,%d) out of date", frame, c.x, c.y)
		}
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Sims()["liquid"]
	if !ok {
		t.Fatal("liquid sim not registered")
	}
	sim := factory(map[string]string{"w": "12", "h": "7", "scenario": ScenarioEmpty})
	if got := sim.Size(); got != (core.Size{W: 12, H: 7}) {
		t.Fatalf("size = %+v", got)
	}
	if sim.Name() != "liquid" {
		t.Fatalf("name = %q", sim.Name())
	}
	if len(sim.Cells()) != 12*7 {
		t.Fatalf("display has %d cells", len(sim.Cells()))
	}
}

func TestResetQueuesScenario(t *testing.T) {
	world := newTestWorld(t, ScenarioDemo, 10, 10)
	if world.Simulation().TotalLiquid() != 0 {
		t.Fatal("scenario liquid must wait for the first step")
	}
	world.Step()

	if got := world.Simulation().TotalLiquid(); got < 10-1e-9 || got > 10+1e-9 {
		t.Fatalf("total liquid = %v, want 10", got)
	}
	if world.Frame() != 1 {
		t.Fatalf("frame = %d", world.Frame())
	}
	wall := world.display.Index(7, 5)
	if world.Cells()[wall] != uint8(Solid)<<displayTypeShift {
		t.Fatalf("wall displays %#x", world.Cells()[wall])
	}
	if world.LastRedraw() == 0 {
		t.Fatal("first step must report redrawn cells")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	world := newTestWorld(t, ScenarioFountain, 12, 10)
	for i := 0; i < 5; i++ {
		world.Step()
	}
	first := append([]uint8(nil), world.Cells()...)

	for i := 0; i < 20; i++ {
		world.Step()
	}
	if err := world.AddLiquid(0, 0, 3); err != nil {
		t.Fatal(err)
	}
	world.Reset(123)
	if world.Frame() != 0 {
		t.Fatalf("frame = %d after reset", world.Frame())
	}
	for i := 0; i < 5; i++ {
		world.Step()
	}
	if !slices.Equal(first, world.Cells()) {
		t.Fatal("Reset did not reproduce the scenario")
	}
}

func TestStepKeepsDisplayInSync(t *testing.T) {
	world := newTestWorld(t, ScenarioFountain, 12, 10)
	if err := world.AddLiquid(1, 3, 2.5); err != nil {
		t.Fatal(err)
	}
	for frame := 1; frame <= 60; frame++ {
		world.Step()
		checkDisplayInSync(t, world, frame)
	}
}

func TestStepRebuildsWithSubIterations(t *testing.T) {
	world := newTestWorld(t, ScenarioDemo, 10, 10)
	if !world.SetIntParameter(keyIterations, 4) {
		t.Fatal("iterations not accepted")
	}
	for frame := 1; frame <= 10; frame++ {
		world.Step()
		checkDisplayInSync(t, world, frame)
	}
}

func TestCellTypeAtSeesPendingChanges(t *testing.T) {
	world := newTestWorld(t, ScenarioEmpty, 4, 4)
	if err := world.SetCellType(2, 1, Drain); err != nil {
		t.Fatal(err)
	}
	got, ok := world.CellTypeAt(2, 1)
	if !ok || got != Drain {
		t.Fatalf("CellTypeAt = %v, %v", got, ok)
	}
	if c, _ := world.Simulation().Cell(2, 1); c.Type() != Blank {
		t.Fatal("type landed before the step")
	}
	if _, ok := world.CellTypeAt(4, 0); ok {
		t.Fatal("out of range cell reported")
	}
}

func TestPressureMask(t *testing.T) {
	world := newTestWorld(t, ScenarioEmpty, 1, 1)
	if err := world.AddLiquid(0, 0, 1.5); err != nil {
		t.Fatal(err)
	}
	world.Step()
	if got := world.PressureMask()[0]; got != 0.5 {
		t.Fatalf("pressure = %v, want 0.5", got)
	}
}
