// Command serve loads a snapshot written by cmd/build and serves it over
// the §6 HTTP API: route, isochrone, render, connected-components, detour
// scores, crossing distances.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/lowtide-maps/severance/pkg/api"
	"github.com/lowtide-maps/severance/pkg/mapmodel"
)

type options struct {
	Snapshot   string `short:"s" long:"snapshot" required:"true" description:"Path to a snapshot written by the build command"`
	Port       int    `short:"p" long:"port" default:"8080" description:"HTTP port"`
	CORSOrigin string `long:"cors-origin" description:"CORS allowed origin (empty = same-origin)"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	start := time.Now()

	log.Printf("serve: loading snapshot from %s", opts.Snapshot)
	model, err := mapmodel.Load(opts.Snapshot)
	if err != nil {
		log.Fatalf("serve: loading snapshot: %v", err)
	}
	log.Printf("serve: loaded %d roads, %d intersections, %d crossings",
		len(model.Graph.Roads), len(model.Graph.Intersections), len(model.Crossings))

	// The contracted hierarchies built during Load retain peak RSS from
	// construction (Go's heap doubles each GC cycle); reclaim it before
	// serving.
	runtime.GC()
	debug.FreeOSMemory()

	log.Printf("serve: ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", opts.Port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = opts.CORSOrigin

	stats := api.StatsResponse{
		NumIntersections: len(model.Graph.Intersections),
		NumRoads:         len(model.Graph.Roads),
		NumCrossings:     len(model.Crossings),
	}

	handlers := api.NewHandlers(model, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("serve: server stopped: %v", err)
		os.Exit(1)
	}
}
