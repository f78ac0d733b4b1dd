package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/sokoban/ecs"
)

type Report struct {
	// Configuration
	StartLevel int
	Keys       int
	Repeat     int
	MemStats   bool

	// Results
	Level    int
	Moves    int
	Pushes   int
	Won      bool
	Frames   int
	Sprites  int
	Entities int
	HUD      string

	TotalTime     time.Duration
	UpdateTime    Stats
	DrawTime      Stats
	UpdateSystems []ecs.SystemStats
	DrawSystems   []ecs.SystemStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Sokoban Replay Report

## Run
- **Start Level:** {{.StartLevel}}
- **Keys Replayed:** {{.Keys}} ({{.Repeat}} pass{{if ne .Repeat 1}}es{{end}})
- **Frames:** {{.Frames}}

## Outcome
- **Level:** {{.Level}}
- **Moves:** {{.Moves}}
- **Pushes:** {{.Pushes}}
- **Solved:** {{if .Won}}yes{{else}}no{{end}}
- **Entities:** {{.Entities}}
- **Sprites Drawn:** {{.Sprites}}
{{- if .HUD}}
- **Last HUD:** {{.HUD}}
{{- end}}

## Timing
- **Total:** {{.TotalTime}}
- **Update:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
- **Draw:** avg {{.DrawTime.Avg}}, min {{.DrawTime.Min}}, max {{.DrawTime.Max}}
{{range .UpdateSystems}}  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}{{range .DrawSystems}}  - {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
{{- if .MemStats}}
## Memory (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns .MemStatsEnd.PauseTotalNs}}
{{- end}}
`

var reportFuncs = template.FuncMap{
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

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return reportTmpl.Execute(w, r)
}
