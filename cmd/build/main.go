// Command build runs the offline pipeline: parse OSM input, build the
// walking graph, run severance post-processing and crossing attachment,
// and write a single-file binary snapshot a server can load without
// re-parsing OSM.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/lowtide-maps/severance/pkg/classify"
	"github.com/lowtide-maps/severance/pkg/config"
	"github.com/lowtide-maps/severance/pkg/mapmodel"
)

type options struct {
	Input     string `short:"i" long:"input" required:"true" description:"Path to an OSM XML or PBF file"`
	Elevation string `short:"e" long:"elevation" description:"Path to a GeoTIFF elevation raster (reserved, not yet applied)"`
	Output    string `short:"o" long:"output" required:"true" description:"Output snapshot path"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	if opts.Elevation != "" {
		log.Printf("build: --elevation given but gradient sampling from a raster is not yet implemented; GradientPercent will be zero")
	}

	start := time.Now()

	log.Printf("build: reading %s", opts.Input)
	buf, err := os.ReadFile(opts.Input)
	if err != nil {
		log.Fatalf("build: reading input: %v", err)
	}

	settings, err := config.Load(config.USA)
	if err != nil {
		log.Fatalf("build: loading USA preset: %v", err)
	}

	log.Println("build: parsing and building graph (profile USA)")
	model, err := mapmodel.Create(context.Background(), buf, classify.USA, settings)
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	log.Printf("build: %d roads, %d intersections, %d crossings, %d buildings snapped",
		len(model.Graph.Roads), len(model.Graph.Intersections), len(model.Crossings), len(model.Buildings))

	log.Printf("build: writing snapshot to %s", opts.Output)
	if err := model.Save(opts.Output); err != nil {
		log.Fatalf("build: writing snapshot: %v", err)
	}

	info, err := os.Stat(opts.Output)
	if err != nil {
		log.Fatalf("build: stat output: %v", err)
	}
	log.Printf("build: done in %s, output %.1f MB", time.Since(start).Round(time.Second), float64(info.Size())/(1024*1024))
}
