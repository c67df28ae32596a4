package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/broth/config"
	"github.com/pthm-cable/broth/genome"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir        string
	epochsFile *os.File

	epochsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	epochsPath := filepath.Join(dir, "epochs.csv")
	f, err := os.Create(epochsPath)
	if err != nil {
		return nil, fmt.Errorf("creating epochs.csv: %w", err)
	}
	om.epochsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteEpoch writes an epoch stats record to epochs.csv. The first write
// includes headers; subsequent writes append rows.
func (om *OutputManager) WriteEpoch(stats EpochStats) error {
	if om == nil {
		return nil
	}

	records := []EpochStats{stats}

	if !om.epochsHeaderWritten {
		if err := gocsv.Marshal(records, om.epochsFile); err != nil {
			return fmt.Errorf("writing epochs: %w", err)
		}
		om.epochsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.epochsFile); err != nil {
			return fmt.Errorf("writing epochs: %w", err)
		}
	}

	return nil
}

// WriteBest saves the best genotype of the run as JSON.
func (om *OutputManager) WriteBest(pop *genome.SavedPopulation) error {
	if om == nil || pop == nil {
		return nil
	}
	return pop.Write(filepath.Join(om.dir, "best.json"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.epochsFile != nil {
		return om.epochsFile.Close()
	}
	return nil
}
