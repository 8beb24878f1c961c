package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lixenwraith/raycaster/world"
)

var (
	widthFlag    = flag.Int("width", 21, "maze width in cells, rounded down to odd")
	heightFlag   = flag.Int("height", 21, "maze height in cells, rounded down to odd")
	braidFlag    = flag.Float64("braid", 0.2, "braiding factor [0.0 - 1.0], 1 removes every dead end")
	surfacesFlag = flag.Int("surfaces", 3, "distinct wall surfaces [1 - 9]")
	seedFlag     = flag.Int64("seed", 0, "random seed, 0 is time-based")
	outFlag      = flag.String("o", "", "write the map here instead of stdout")
)

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := world.MazeConfig{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Braiding: clamp01(*braidFlag),
		Surfaces: min(max(*surfacesFlag, 1), 9),
		CellSize: 1,
		Seed:     seed,
	}

	startT := time.Now()
	g, spawn, err := world.GenerateMaze(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generated %dx%d in %v (seed %d)\n", g.Width(), g.Height(), time.Since(startT), seed)

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	bw := bufio.NewWriter(out)
	fmt.Fprintf(bw, "// maze %dx%d braid %.2f seed %d\n", g.Width(), g.Height(), cfg.Braiding, seed)
	for _, row := range mapRows(g, spawn) {
		fmt.Fprintln(bw, row)
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}

// mapRows renders the grid in the map file format with the spawn marked '@'
func mapRows(g *world.Grid, spawn world.Spawn) []string {
	rows := g.Rows()
	if spawn.Set && spawn.Y >= 0 && spawn.Y < len(rows) && spawn.X >= 0 && spawn.X < len(rows[spawn.Y]) {
		line := []byte(rows[spawn.Y])
		line[spawn.X] = '@'
		rows[spawn.Y] = string(line)
	}
	return rows
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
