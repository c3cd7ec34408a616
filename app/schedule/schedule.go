// Package schedule deals with the yaml task file defining periodic sync tasks,
// their cron specs, retry overrides and run conditions. It also watches the
// file for changes and publishes the updated task list.
package schedule

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

// task kinds understood by the scheduler
const (
	KindBulkSync       = "bulk-sync"
	KindCollectMetrics = "collect-metrics"
	KindCleanup        = "cleanup"
)

// Config is the top-level structure of the task file
type Config struct {
	Tasks []Task `yaml:"tasks" json:"tasks" jsonschema:"required,description=List of periodic sync tasks"`
}

// Task is a single periodic task definition
type Task struct {
	Name         string            `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Optional display name"`
	Kind         string            `yaml:"task" json:"task" jsonschema:"required,enum=bulk-sync,enum=collect-metrics,enum=cleanup"`
	Spec         string            `yaml:"spec" json:"spec" jsonschema:"required,description=Cron spec or @every interval"`
	HistoryHours int               `yaml:"history_hours,omitempty" json:"history_hours,omitempty" jsonschema:"description=Hours of item history to pull (collect-metrics only)"`
	Repeater     *RepeaterConfig   `yaml:"repeater,omitempty" json:"repeater,omitempty"`
	Conditions   *ConditionsConfig `yaml:"conditions,omitempty" json:"conditions,omitempty"`
}

// RepeaterConfig overrides retry settings for a single task.
// Nil fields fall back to the global defaults.
type RepeaterConfig struct {
	Attempts *int           `yaml:"attempts,omitempty" json:"attempts,omitempty"`
	Duration *time.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Factor   *float64       `yaml:"factor,omitempty" json:"factor,omitempty"`
	Jitter   *bool          `yaml:"jitter,omitempty" json:"jitter,omitempty"`
}

// ConditionsConfig defines host-level guards checked before a task runs
type ConditionsConfig struct {
	CPUBelow      *int           `yaml:"cpu_below,omitempty" json:"cpu_below,omitempty"`
	MemoryBelow   *int           `yaml:"memory_below,omitempty" json:"memory_below,omitempty"`
	LoadAvgBelow  *float64       `yaml:"load_avg_below,omitempty" json:"load_avg_below,omitempty"`
	DiskFreeAbove *int           `yaml:"disk_free_above,omitempty" json:"disk_free_above,omitempty"`
	DiskFreePath  string         `yaml:"disk_free_path,omitempty" json:"disk_free_path,omitempty"`
	Custom        string         `yaml:"custom,omitempty" json:"custom,omitempty"`
	MaxPostpone   *time.Duration `yaml:"max_postpone,omitempty" json:"max_postpone,omitempty"`
	CheckInterval *time.Duration `yaml:"check_interval,omitempty" json:"check_interval,omitempty"`
}

// UnmarshalYAML parses duration fields given as strings like "30s" or "1h"
func (r *RepeaterConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		Attempts *int     `yaml:"attempts"`
		Duration *string  `yaml:"duration"`
		Factor   *float64 `yaml:"factor"`
		Jitter   *bool    `yaml:"jitter"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	r.Attempts, r.Factor, r.Jitter = raw.Attempts, raw.Factor, raw.Jitter
	if raw.Duration != nil {
		d, err := time.ParseDuration(*raw.Duration)
		if err != nil {
			return fmt.Errorf("invalid repeater duration %q: %w", *raw.Duration, err)
		}
		r.Duration = &d
	}
	return nil
}

// UnmarshalYAML parses duration fields given as strings like "30s" or "1h"
func (c *ConditionsConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		CPUBelow      *int     `yaml:"cpu_below"`
		MemoryBelow   *int     `yaml:"memory_below"`
		LoadAvgBelow  *float64 `yaml:"load_avg_below"`
		DiskFreeAbove *int     `yaml:"disk_free_above"`
		DiskFreePath  string   `yaml:"disk_free_path"`
		Custom        string   `yaml:"custom"`
		MaxPostpone   *string  `yaml:"max_postpone"`
		CheckInterval *string  `yaml:"check_interval"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.CPUBelow, c.MemoryBelow, c.LoadAvgBelow = raw.CPUBelow, raw.MemoryBelow, raw.LoadAvgBelow
	c.DiskFreeAbove, c.DiskFreePath, c.Custom = raw.DiskFreeAbove, raw.DiskFreePath, raw.Custom
	if raw.MaxPostpone != nil {
		d, err := time.ParseDuration(*raw.MaxPostpone)
		if err != nil {
			return fmt.Errorf("invalid max_postpone %q: %w", *raw.MaxPostpone, err)
		}
		c.MaxPostpone = &d
	}
	if raw.CheckInterval != nil {
		d, err := time.ParseDuration(*raw.CheckInterval)
		if err != nil {
			return fmt.Errorf("invalid check_interval %q: %w", *raw.CheckInterval, err)
		}
		c.CheckInterval = &d
	}
	return nil
}

// DisplayName returns the name if set, the kind otherwise
func (t Task) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Kind
}

// Parser reads the task file, thread safe
type Parser struct {
	file        string
	updInterval time.Duration
}

// New creates Parser for the file, not parsing yet
func New(file string, updInterval time.Duration) *Parser {
	log.Printf("[INFO] task file %s, update every %v", file, updInterval)
	return &Parser{file: file, updInterval: updInterval}
}

// List parses the task file and returns validated tasks
func (p *Parser) List() ([]Task, error) {
	cfg, err := p.load()
	if err != nil {
		return nil, err
	}
	return cfg.Tasks, nil
}

func (p *Parser) String() string {
	return p.file
}

func (p *Parser) load() (*Config, error) {
	data, err := os.ReadFile(p.file)
	if err != nil {
		return nil, fmt.Errorf("can't read task file %s: %w", p.file, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("can't parse task file %s: %w", p.file, err)
	}
	if err := Verify(&cfg); err != nil {
		return nil, fmt.Errorf("invalid task file %s: %w", p.file, err)
	}
	return &cfg, nil
}

// Changes returns an updates channel. Each time the task file modification
// time changes it gets re-parsed and the full task list is sent to the channel.
// Updates are debounced to avoid reacting to intermediate saves.
func (p *Parser) Changes(ctx context.Context) (<-chan []Task, error) {
	ch := make(chan []Task)

	mtime := func() (time.Time, error) {
		st, err := os.Stat(p.file)
		if err != nil {
			return time.Time{}, fmt.Errorf("can't stat task file %s: %w", p.file, err)
		}
		return st.ModTime(), nil
	}

	lastMtime, err := mtime()
	if err != nil {
		// need file available to start the change watcher
		return nil, err
	}

	ticker := time.NewTicker(p.updInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(ch)
				return
			case <-ticker.C:
				m, err := mtime()
				if err != nil {
					log.Printf("[WARN] can't get info about %s, %v", p.file, err)
					continue
				}
				if m == lastMtime {
					continue
				}
				// change should be at least half the interval old to prevent
				// reacting on every small intermediate save
				if time.Since(m) < p.updInterval/2 {
					continue
				}
				lastMtime = m
				tasks, err := p.List()
				if err != nil {
					log.Printf("[WARN] can't get task list from %s, %v", p.file, err)
					continue
				}
				ch <- tasks
			}
		}
	}()

	return ch, nil
}
