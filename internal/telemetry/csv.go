package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteHistoryCSV writes the recorded per-year statistics to path,
// one row per completed year.
func (c *Collector) WriteHistoryCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("telemetry: create history csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&c.history, f); err != nil {
		return fmt.Errorf("telemetry: write history csv: %w", err)
	}
	return nil
}

// WriteDistributionCSV writes the current per-cell census to path.
func (c *Collector) WriteDistributionCSV(path string) error {
	rows := c.sim.Distribution()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("telemetry: create distribution csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(&rows, f); err != nil {
		return fmt.Errorf("telemetry: write distribution csv: %w", err)
	}
	return nil
}
