package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"linepaint/internal/canvas"
)

// MetricsLogger writes one CSV row and one JSON line per committed epoch.
type MetricsLogger struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	console     io.Writer
	initialized bool
}

// NewMetricsLogger creates a logger and the directories its files live in.
// console may be nil to suppress the per-epoch summary line.
func NewMetricsLogger(csvPath, jsonPath string, console io.Writer) (*MetricsLogger, error) {
	l := &MetricsLogger{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		console:  console,
	}

	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}
	return l, nil
}

// Init creates the log files and writes the CSV header.
func (l *MetricsLogger) Init() error {
	var err error

	l.csvFile, err = os.Create(l.csvPath)
	if err != nil {
		return err
	}
	l.csvWriter = csv.NewWriter(l.csvFile)

	header := []string{"epoch", "elites", "improvement", "similarity", "ratio", "duration_ms"}
	if err := l.csvWriter.Write(header); err != nil {
		return err
	}

	l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	l.initialized = true
	return nil
}

// Close flushes and closes all log files
func (l *MetricsLogger) Close() {
	if l.csvWriter != nil {
		l.csvWriter.Flush()
	}
	if l.csvFile != nil {
		l.csvFile.Close()
	}
	if l.jsonFile != nil {
		l.jsonFile.Close()
	}
}

// LogEpoch records one epoch.
func (l *MetricsLogger) LogEpoch(s canvas.EpochStats) error {
	if !l.initialized {
		return nil
	}

	row := []string{
		strconv.Itoa(s.Epoch),
		strconv.Itoa(s.Elites),
		fmt.Sprintf("%.4f", s.Improvement),
		fmt.Sprintf("%.4f", s.Similarity),
		fmt.Sprintf("%.6f", s.Ratio),
		strconv.FormatInt(s.Duration.Milliseconds(), 10),
	}
	if err := l.csvWriter.Write(row); err != nil {
		return err
	}
	l.csvWriter.Flush()
	if err := l.csvWriter.Error(); err != nil {
		return err
	}

	line, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := l.jsonFile.Write(append(line, '\n')); err != nil {
		return err
	}

	if l.console != nil {
		fmt.Fprintf(l.console, "Epoch %4d | Lines: %3d | Improvement: %10.2f | Similarity: %6.2f%% | %v\n",
			s.Epoch, s.Elites, s.Improvement, s.Ratio*100, s.Duration.Round(time.Millisecond))
	}
	return nil
}
