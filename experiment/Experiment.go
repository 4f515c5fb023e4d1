// Package experiment implements experiments for training agents in
// treasure-hunting gridworlds, along with the statistics they report
// and the sessions which own them
package experiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samuelfneumann/treasurehunt/agent/tabular/qlearning"
	env "github.com/samuelfneumann/treasurehunt/environment"
	"github.com/samuelfneumann/treasurehunt/environment/envconfig"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
)

// Default experiment parameters
const (
	DefaultEpisodes       int = 1000
	DefaultReportInterval int = 100

	// maxConfigSize is the largest config file LoadConfig will read
	maxConfigSize int64 = 1 << 20
)

// Experiment describes a training run of an agent in an environment
type Experiment interface {
	Run() Statistics
	RunEpisode() EpisodeStats
	Register(t tracker.Tracker)
	Save() error
}

// Config describes a full training session: the environment, the
// agent's hyperparameters and the length of training. Configs are JSON
// serializable.
type Config struct {
	Env            envconfig.Config `json:"environment"`
	Agent          qlearning.Config `json:"agent"`
	Episodes       int              `json:"episodes"`
	ReportInterval int              `json:"report_interval"`
	Seed           uint64           `json:"seed"`
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		Env:            envconfig.Default(),
		Agent:          qlearning.DefaultConfig(),
		Episodes:       DefaultEpisodes,
		ReportInterval: DefaultReportInterval,
	}
}

// Validate returns an error describing the first invalid field of the
// Config, or nil if the Config is valid
func (c Config) Validate() error {
	const op = "validate"

	if err := env.CheckAtLeast(op, "episodes", c.Episodes, 1); err != nil {
		return err
	}
	if err := env.CheckAtLeast(op, "report_interval", c.ReportInterval,
		1); err != nil {
		return err
	}
	if err := c.Env.Validate(); err != nil {
		return err
	}
	return c.Agent.Validate()
}

// LoadConfig reads a Config from a JSON file. Fields missing from the
// file keep their default values. The returned Config is validated.
func LoadConfig(path string) (Config, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return Config{}, fmt.Errorf("loadConfig: config file must be "+
			".json, got %q", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("loadConfig: config file too large "+
			"(%d bytes, max %d)", info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		var field string
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return Config{}, &env.ConfigurationError{Op: "loadConfig",
			Field: field, Err: fmt.Errorf("could not parse %s: %w", path, err)}
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}
