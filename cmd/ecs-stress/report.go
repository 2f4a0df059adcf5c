package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/downbeat/ecs"
)

type Report struct {
	// Configuration
	Duration     time.Duration
	Entities     int
	Systems      int
	SystemsFirst bool
	Churn        int

	// Results
	TotalTicks     int64
	TotalTime      time.Duration
	UpdateTime     Stats
	RegistryStats  *ecs.RegistryStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Generated Systems:** {{.Systems}}
- **Traversal:** {{if .SystemsFirst}}systems-first{{else}}entities-first{{end}}
- **Churn per Tick:** {{.Churn}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **System Updates Dispatched:** {{.RegistryStats.TotalUpdates}}
- **Update Time (Tick):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Busiest Systems
{{range .BusiestSystems 5}}- {{.Name}}: {{.UpdateCount}} updates over {{.EntityCount}} entities (freq {{.Frequency}}, avg {{.AvgDuration}})
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// BusiestSystems returns up to n systems sorted by dispatch count,
// busiest first.
func (r *Report) BusiestSystems(n int) []ecs.SystemStats {
	if r.RegistryStats == nil {
		return nil
	}

	systems := make([]ecs.SystemStats, len(r.RegistryStats.Systems))
	copy(systems, r.RegistryStats.Systems)

	for i := 1; i < len(systems); i++ {
		for j := i; j > 0 && systems[j].UpdateCount > systems[j-1].UpdateCount; j-- {
			systems[j], systems[j-1] = systems[j-1], systems[j]
		}
	}

	if n > len(systems) {
		n = len(systems)
	}
	return systems[:n]
}
