package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tilegate/ecs"
	"github.com/plus3/tilegate/spatial"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	worldSize := flag.Float64("world", 4096, "The edge of the square world in pixels.")
	cellSize := flag.Float64("cell", 32, "The edge of a spatial hash cell in pixels.")
	churn := flag.Float64("churn", 0.01, "The share of entities destroyed and respawned every update.")
	seed := flag.Int64("seed", 1, "The random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	// 1. Setup Registry, Storage, spatial hash and Scheduler
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)
	hash := spatial.New[ecs.EntityId]()
	scheduler := ecs.NewScheduler(storage, ecs.WithSpatialIndex(hash))

	w := &world{
		size:     *worldSize,
		cellSize: *cellSize,
		maxSpeed: *cellSize * 4,
		rng:      rand.New(rand.NewSource(*seed)),
	}
	overlaps := &overlapSystem{world: w}
	scheduler.Register(&moveSystem{world: w})
	scheduler.Register(&reindexSystem{world: w})
	scheduler.Register(overlaps)
	scheduler.Register(&churnSystem{world: w, rate: *churn, hash: hash})

	// 2. Populate Storage with initial entities
	log.Printf("Populating storage with %d entities...\n", *entityCount)
	for range *entityCount {
		w.spawn(storage, hash)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		WorldSize:      *worldSize,
		CellSize:       *cellSize,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Overlaps = overlaps.overlaps
	report.Spatial = hash.Stats()
	report.Storage = storage.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
