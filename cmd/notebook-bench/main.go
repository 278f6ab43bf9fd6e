// notebook-bench measures the cell content model's hot paths: buffer
// materialization, line edits through the piece table, identity hash
// recomputation and memoized reads, output splicing, and cloning.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/phroun/notebook"
	"github.com/phroun/notebook/textbuf"
)

const (
	sourceLines = 50_000
	editOps     = 2_000
	hashedReads = 1_000_000
	spliceOps   = 10_000
	cloneOps    = 200
)

type BenchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
}

func (r BenchResult) String() string {
	if r.Ops > 0 {
		opsPerSec := float64(r.Ops) / r.Duration.Seconds()
		return fmt.Sprintf("%-40s %12v  (%d ops, %.2f ops/sec)", r.Name, r.Duration.Round(time.Microsecond), r.Ops, opsPerSec)
	}
	return fmt.Sprintf("%-40s %12v", r.Name, r.Duration.Round(time.Microsecond))
}

func main() {
	fmt.Println("Notebook Cell Model Benchmark")
	fmt.Println("=============================")
	fmt.Printf("Source lines: %d\n", sourceLines)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Println()

	var sb strings.Builder
	for i := 0; i < sourceLines; i++ {
		fmt.Fprintf(&sb, "line %06d: some cell content to edit\n", i)
	}
	source := sb.String()

	cell, err := notebook.NewCell(notebook.CellOptions{
		URI:      "bench:/cell/1",
		Handle:   1,
		Source:   source,
		Language: "plaintext",
	})
	if err != nil {
		fmt.Printf("Failed to create cell: %v\n", err)
		os.Exit(1)
	}

	var results []BenchResult
	report := func(r BenchResult) {
		results = append(results, r)
		fmt.Println(r)
	}

	start := time.Now()
	buf := cell.TextBuffer()
	report(BenchResult{Name: "Buffer materialization", Duration: time.Since(start)})

	start = time.Now()
	for i := 0; i < editOps; i++ {
		line := (i*37)%sourceLines + 1
		width, err := buf.LineLength(line)
		if err != nil {
			fmt.Printf("LineLength failed: %v\n", err)
			os.Exit(1)
		}
		r := textbuf.Range{
			Start: textbuf.Position{Line: line, Column: 1},
			End:   textbuf.Position{Line: line, Column: width + 1},
		}
		if err := buf.Replace(r, fmt.Sprintf("edited %06d", i)); err != nil {
			fmt.Printf("Replace failed: %v\n", err)
			os.Exit(1)
		}
	}
	report(BenchResult{Name: "Single-line replacements", Duration: time.Since(start), Ops: editOps})

	start = time.Now()
	cell.HashValue()
	report(BenchResult{Name: "Hash recomputation (cold)", Duration: time.Since(start), Ops: 1})

	start = time.Now()
	for i := 0; i < hashedReads; i++ {
		cell.HashValue()
	}
	report(BenchResult{Name: "Hash reads (memoized)", Duration: time.Since(start), Ops: hashedReads})

	start = time.Now()
	for i := 0; i < spliceOps; i++ {
		out := notebook.NewOutput(notebook.OutputItem{Mime: "text/plain", Data: []byte("ok")})
		err := cell.SpliceOutputs([]notebook.OutputSplice{{
			Start:       0,
			DeleteCount: min(1, len(cell.Outputs())),
			Outputs:     []*notebook.Output{out},
		}})
		if err != nil {
			fmt.Printf("SpliceOutputs failed: %v\n", err)
			os.Exit(1)
		}
	}
	report(BenchResult{Name: "Output splices", Duration: time.Since(start), Ops: spliceOps})

	start = time.Now()
	for i := 0; i < cloneOps; i++ {
		notebook.CloneCell(cell)
	}
	report(BenchResult{Name: "Clones", Duration: time.Since(start), Ops: cloneOps})

	fmt.Println()
	fmt.Println("Summary")
	fmt.Println("-------")
	for _, r := range results {
		fmt.Println(r)
	}

	cell.Dispose()
}
