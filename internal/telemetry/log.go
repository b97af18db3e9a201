// Package telemetry logs one CSV row per generation, in the spirit of the
// teacher's per-session performance logger: a timestamped CSV file under a
// log directory, guarded by a mutex so concurrent callers never interleave
// writes.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// GenerationRecord is one generation's summary row.
type GenerationRecord struct {
	Generation    int
	BestFitness   float64
	MeanFitness   float64
	Evaluations   int64
	Stagnation    int
	StaleCount    int
	CPUPercent    float64
	MemPercent    float64
	Timestamp     string
}

// GenerationLogger appends GenerationRecord rows to a timestamped CSV file.
type GenerationLogger struct {
	logDir   string
	filePath string
	mu       sync.Mutex
	warn     *log.Logger
}

// NewGenerationLogger creates logDir if needed and opens a fresh,
// timestamped CSV file with a header row.
func NewGenerationLogger(logDir string) (*GenerationLogger, error) {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("telemetry: create log directory: %w", err)
	}

	fileName := fmt.Sprintf("generations_%s.csv", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(logDir, fileName)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("telemetry: create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	header := []string{
		"generation", "best_fitness", "mean_fitness", "evaluations",
		"stagnation", "stale_count", "cpu_percent", "mem_percent", "timestamp",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("telemetry: write csv header: %w", err)
	}

	return &GenerationLogger{
		logDir:   logDir,
		filePath: filePath,
		warn:     log.New(os.Stderr, "espgo: ", log.LstdFlags),
	}, nil
}

// Log appends one generation's record to the CSV file, stamping the
// current time if the caller left Timestamp unset.
func (gl *GenerationLogger) Log(rec GenerationRecord) error {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().Format(time.RFC3339)
	}

	file, err := os.OpenFile(gl.filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("telemetry: open csv for append: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	row := []string{
		fmt.Sprintf("%d", rec.Generation),
		fmt.Sprintf("%.6f", rec.BestFitness),
		fmt.Sprintf("%.6f", rec.MeanFitness),
		fmt.Sprintf("%d", rec.Evaluations),
		fmt.Sprintf("%d", rec.Stagnation),
		fmt.Sprintf("%d", rec.StaleCount),
		fmt.Sprintf("%.2f", rec.CPUPercent),
		fmt.Sprintf("%.2f", rec.MemPercent),
		rec.Timestamp,
	}
	return writer.Write(row)
}

// Warnf logs a non-fatal warning (task failure, dump I/O failure) to
// stderr, matching spec.md §7's "reported to error stream; non-fatal".
func (gl *GenerationLogger) Warnf(format string, args ...interface{}) {
	gl.warn.Printf(format, args...)
}

// SampleHostStats reads a one-shot CPU and memory utilization snapshot,
// the live counterpart of the teacher's declared-but-unused gopsutil
// dependency. A sampling failure is non-fatal; zero values are returned
// and the logger records the warning.
func SampleHostStats(gl *GenerationLogger) (cpuPercent, memPercent float64) {
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		cpuPercent = pcts[0]
	} else if err != nil {
		gl.Warnf("host cpu sample failed: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent = vm.UsedPercent
	} else {
		gl.Warnf("host mem sample failed: %v", err)
	}
	return cpuPercent, memPercent
}
