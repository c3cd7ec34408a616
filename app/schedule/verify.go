package schedule

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/robfig/cron/v3"
)

const (
	// repeater validation limits
	minAttempts = 1
	maxAttempts = 100
	minFactor   = 1.0
	maxFactor   = 10.0
	minDuration = time.Millisecond
	maxDuration = time.Hour
)

//go:embed schema.json
var embeddedSchemaData []byte

var validKinds = map[string]bool{
	KindBulkSync:       true,
	KindCollectMetrics: true,
	KindCleanup:        true,
}

// Verify validates the task config, the embedded JSON schema has to parse too
func Verify(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal(embeddedSchemaData, &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if len(cfg.Tasks) == 0 {
		return fmt.Errorf("at least one task is required")
	}

	for i, task := range cfg.Tasks {
		if task.Kind == "" {
			return fmt.Errorf("task %d: 'task' field is required", i+1)
		}
		if !validKinds[task.Kind] {
			return fmt.Errorf("task %d: unknown task kind %q", i+1, task.Kind)
		}
		if task.Spec == "" {
			return fmt.Errorf("task %d: 'spec' field is required", i+1)
		}
		if _, err := cron.ParseStandard(task.Spec); err != nil {
			return fmt.Errorf("task %d: invalid spec %q: %w", i+1, task.Spec, err)
		}
		if task.HistoryHours < 0 {
			return fmt.Errorf("task %d: history_hours can't be negative", i+1)
		}
		if task.HistoryHours > 0 && task.Kind != KindCollectMetrics {
			return fmt.Errorf("task %d: history_hours only makes sense for %s", i+1, KindCollectMetrics)
		}
		if task.Repeater != nil {
			if err := validateRepeaterConfig(task.Repeater, i+1); err != nil {
				return err
			}
		}
		if task.Conditions != nil {
			if err := validateConditionsConfig(task.Conditions, i+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRepeaterConfig(r *RepeaterConfig, taskNum int) error {
	if r.Attempts != nil && (*r.Attempts < minAttempts || *r.Attempts > maxAttempts) {
		return fmt.Errorf("task %d: repeater attempts must be between %d and %d", taskNum, minAttempts, maxAttempts)
	}
	if r.Factor != nil && (*r.Factor < minFactor || *r.Factor > maxFactor) {
		return fmt.Errorf("task %d: repeater factor must be between %.1f and %.1f", taskNum, minFactor, maxFactor)
	}
	if r.Duration != nil && (*r.Duration < minDuration || *r.Duration > maxDuration) {
		return fmt.Errorf("task %d: repeater duration must be between %v and %v", taskNum, minDuration, maxDuration)
	}
	return nil
}

func validateConditionsConfig(c *ConditionsConfig, taskNum int) error {
	checkPercent := func(name string, v *int) error {
		if v != nil && (*v < 1 || *v > 100) {
			return fmt.Errorf("task %d: %s must be between 1 and 100", taskNum, name)
		}
		return nil
	}
	if err := checkPercent("cpu_below", c.CPUBelow); err != nil {
		return err
	}
	if err := checkPercent("memory_below", c.MemoryBelow); err != nil {
		return err
	}
	if err := checkPercent("disk_free_above", c.DiskFreeAbove); err != nil {
		return err
	}
	if c.LoadAvgBelow != nil && *c.LoadAvgBelow <= 0 {
		return fmt.Errorf("task %d: load_avg_below must be positive", taskNum)
	}
	if c.MaxPostpone != nil && *c.MaxPostpone <= 0 {
		return fmt.Errorf("task %d: max_postpone must be positive", taskNum)
	}
	if c.CheckInterval != nil && *c.CheckInterval <= 0 {
		return fmt.Errorf("task %d: check_interval must be positive", taskNum)
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
