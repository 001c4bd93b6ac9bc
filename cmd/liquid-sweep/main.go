package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"liquid-ca/internal/record"
	"liquid-ca/internal/render"
	"liquid-ca/internal/sims/liquid"
)

type floatList []float64

func (l *floatList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (l *floatList) Set(value string) error {
	var out []float64
	for _, part := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

type paramSet struct {
	flowSpeed      float64
	compressionMax float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("flowSpeed=%.2f compressionMax=%.2f", p.flowSpeed, p.compressionMax)
}

type scenarioResult struct {
	params       paramSet
	settledAt    int
	frames       int
	activeCells  int
	initialTotal float64
	finalTotal   float64
	peakLiquid   float64
	grid         string
}

func (r scenarioResult) settled() bool { return r.settledAt > 0 }

func main() {
	steps := flag.Int("steps", 4000, "frames to simulate per candidate")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 16, "grid width")
	height := flag.Int("h", 12, "grid height")
	scenario := flag.String("scenario", liquid.ScenarioBasin, "layout to sweep ("+strings.Join(liquid.Scenarios(), ", ")+")")
	iterations := flag.Int("iterations", liquid.DefaultIterationsPerFrame, "sub-iterations per frame")
	top := flag.Int("top", 5, "results to print")
	dump := flag.Bool("dump", false, "print the final grid of the best candidate")
	var out outputs
	flag.StringVar(&out.video, "video", "", "write a Motion-JPEG AVI replay of the best candidate")
	flag.StringVar(&out.chart, "chart", "", "write a PNG chart of mass and activity for the best candidate")
	flag.StringVar(&out.sheet, "sheet", "", "write a PNG contact sheet of the best candidate")
	flag.IntVar(&out.every, "sheet-every", 20, "frames between contact sheet tiles")
	flag.IntVar(&out.scale, "scale", 6, "pixels per cell in video and sheet frames")
	flag.IntVar(&out.fps, "fps", 30, "video frame rate")
	speeds := floatList{0.25, 0.5, 0.75, 1}
	compressions := floatList{0, 0.1, 0.25, 0.5}
	flag.Var(&speeds, "speeds", "comma-separated flow speeds")
	flag.Var(&compressions, "compressions", "comma-separated compression maxima")
	flag.Parse()

	base := liquid.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.Params.Scenario = *scenario
	base.Params.IterationsPerFrame = *iterations
	if err := liquid.ApplyScenario(liquid.NewSimulation(*width, *height), *scenario); err != nil {
		log.Fatalf("scenario %s on %dx%d: %v", *scenario, *height, *width, err)
	}

	for _, v := range append(append(floatList{}, speeds...), compressions...) {
		if v < 0 {
			log.Fatalf("negative tunable %v in -speeds/-compressions", v)
		}
	}

	var sets []paramSet
	for _, speed := range speeds {
		for _, compression := range compressions {
			sets = append(sets, paramSet{flowSpeed: speed, compressionMax: compression})
		}
	}
	if *workers <= 0 {
		*workers = 1
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps, scenario %s)\n", len(sets), *workers, *steps, *scenario)

	start := time.Now()
	all := sweep(base, sets, *steps, *workers)
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		printResult(i+1, all[i])
	}
	if *dump && len(all) > 0 {
		fmt.Printf("\nFinal grid for %s:\n%s", all[0].params, all[0].grid)
	}
	if out.any() && len(all) > 0 {
		if err := replay(base, all[0].params, *steps, out); err != nil {
			log.Fatalf("replay %s: %v", all[0].params, err)
		}
	}
}

// sweep evaluates every set on its own world and returns the results ranked by
// how quickly the grid settled.
func sweep(base liquid.Config, sets []paramSet, steps, workers int) []scenarioResult {
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}
	rank(all)
	return all
}

func rank(all []scenarioResult) {
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.settled() != b.settled() {
			return a.settled()
		}
		if a.settled() && a.settledAt != b.settledAt {
			return a.settledAt < b.settledAt
		}
		if a.activeCells != b.activeCells {
			return a.activeCells < b.activeCells
		}
		if a.params.flowSpeed != b.params.flowSpeed {
			return a.params.flowSpeed < b.params.flowSpeed
		}
		return a.params.compressionMax < b.params.compressionMax
	})
}

func runScenario(base liquid.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.FlowSpeed = params.flowSpeed
	cfg.Params.CompressionMax = params.compressionMax

	world := liquid.NewWithConfig(cfg)
	world.Reset(0)
	sim := world.Simulation()

	res := scenarioResult{params: params, settledAt: -1}
	for step := 0; step < steps; step++ {
		world.Step()
		res.frames = step + 1
		if step == 0 {
			res.initialTotal = sim.TotalLiquid()
		}
		if peak := sim.PeakLiquid(); peak > res.peakLiquid {
			res.peakLiquid = peak
		}
		if sim.ActiveCells() == 0 {
			res.settledAt = step + 1
			break
		}
	}
	res.activeCells = sim.ActiveCells()
	res.finalTotal = sim.TotalLiquid()
	res.grid = sim.String()
	return res
}

func printResult(rank int, res scenarioResult) {
	state := fmt.Sprintf("settled@%d", res.settledAt)
	if !res.settled() {
		state = fmt.Sprintf("active=%d after %d", res.activeCells, res.frames)
	}
	fmt.Printf("%2d) %s mass=%.4f->%.4f peak=%.3f params=%s\n",
		rank, state, res.initialTotal, res.finalTotal, res.peakLiquid, res.params)
}

type outputs struct {
	video, chart, sheet string
	every, scale, fps   int
}

func (o outputs) any() bool { return o.video != "" || o.chart != "" || o.sheet != "" }

// replay reruns one candidate frame by frame and writes the requested
// artifacts. Runs are deterministic, so it matches the sweep result.
func replay(base liquid.Config, params paramSet, steps int, out outputs) (err error) {
	cfg := base
	cfg.Params.FlowSpeed = params.flowSpeed
	cfg.Params.CompressionMax = params.compressionMax
	world := liquid.NewWithConfig(cfg)
	world.Reset(0)
	size := world.Size()

	var video *record.Video
	if out.video != "" {
		video, err = record.NewVideo(out.video, size.W*out.scale, size.H*out.scale, out.fps)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, video.Close()) }()
	}
	sheet := record.NewSheet(out.every, 4)
	var history record.History

	for frame := 0; frame <= steps; frame++ {
		if frame > 0 {
			world.Step()
		}
		history.Add(frame, world.Simulation().TotalLiquid(), world.Simulation().ActiveCells())
		if video != nil || out.sheet != "" {
			img := render.Image(world.Cells(), size.W, size.H, world.Palette(), out.scale)
			if video != nil {
				if err := video.AddFrame(img); err != nil {
					return err
				}
			}
			sheet.Offer(frame, img)
		}
		if frame > 0 && world.Simulation().ActiveCells() == 0 {
			break
		}
	}

	if out.chart != "" {
		if err := writeFile(out.chart, func(f *os.File) error {
			return history.WriteChart(f, fmt.Sprintf("%s %s", cfg.Params.Scenario, params))
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote chart of %d frames to %s\n", history.Len(), out.chart)
	}
	if out.sheet != "" {
		if err := writeFile(out.sheet, func(f *os.File) error {
			return png.Encode(f, sheet.Image())
		}); err != nil {
			return err
		}
		fmt.Printf("Wrote %d tiles to %s\n", sheet.Len(), out.sheet)
	}
	if video != nil {
		fmt.Printf("Wrote %d frames to %s\n", video.Frames(), out.video)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
