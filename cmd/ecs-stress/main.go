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

	"github.com/plus3/downbeat/ecs"
)

// componentPool is the universe of component names entities and systems
// draw from. Systems require small subsets, so predicate selectivity
// varies across the run.
var componentPool = []string{
	"position", "velocity", "acceleration", "rotation", "scale",
	"sprite", "animation", "collider", "rigidbody", "health",
	"mana", "inventory", "ai", "pathfinding", "target",
	"lifetime", "particle", "audio", "network", "input",
}

type stressSystem struct {
	ecs.SystemBase
	touched int64
}

func (s *stressSystem) Update(e *ecs.Entity, elapsed float64) {
	s.touched++
	// Touch one component so the dispatch isn't optimized into nothing.
	if data, ok := e.Get(s.Requires()[0]); ok {
		if v, ok := data.(*float64); ok {
			*v += elapsed
		}
	}
}

func newStressSystem(rng *rand.Rand) *stressSystem {
	numRequired := rng.Intn(3) + 1
	requires := make([]string, 0, numRequired)
	seen := make(map[string]bool)
	for len(requires) < numRequired {
		name := componentPool[rng.Intn(len(componentPool))]
		if !seen[name] {
			seen[name] = true
			requires = append(requires, name)
		}
	}

	frequency := uint64(1)
	switch rng.Intn(4) {
	case 1:
		frequency = 2
	case 2:
		frequency = 5
	case 3:
		frequency = 10
	}

	return &stressSystem{SystemBase: ecs.NewSystemBase(frequency, requires...)}
}

func spawnRandomEntity(registry *ecs.Registry, rng *rand.Rand, numComponents int) {
	e := registry.NewEntity()
	for e.ComponentCount() < numComponents {
		name := componentPool[rng.Intn(len(componentPool))]
		value := rng.Float64()
		e.Set(name, &value)
	}
	if err := registry.AddEntity(e); err != nil {
		log.Fatalf("Failed to add entity: %v", err)
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	systemCount := flag.Int("systems", 50, "The number of generated systems to register.")
	systemsFirst := flag.Bool("systems-first", false, "Use the systems-first traversal instead of entities-first.")
	churn := flag.Int("churn", 0, "Entities to remove and respawn per tick.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	seed := flag.Int64("seed", 1, "Seed for the population generator.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewSource(*seed))

	// 1. Set up the registry and generated systems
	var opts []ecs.Option
	if *systemsFirst {
		opts = append(opts, ecs.SystemsFirst())
	}
	registry := ecs.NewRegistry(opts...)

	for i := 0; i < *systemCount; i++ {
		if err := registry.AddSystem(newStressSystem(rng)); err != nil {
			log.Fatalf("Failed to add system: %v", err)
		}
	}

	// 2. Populate the registry with initial entities
	log.Printf("Populating registry with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		spawnRandomEntity(registry, rng, rng.Intn(5)+1)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Systems:        *systemCount,
		SystemsFirst:   *systemsFirst,
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
	var totalTicks int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			registry.Update()
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalTicks++

			for i := 0; i < *churn; i++ {
				entities := registry.Entities()
				if len(entities) == 0 {
					break
				}
				registry.RemoveEntity(entities[rng.Intn(len(entities))])
				spawnRandomEntity(registry, rng, rng.Intn(5)+1)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.UpdateTime.Finalize()
	report.RegistryStats = registry.CollectStats()
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
