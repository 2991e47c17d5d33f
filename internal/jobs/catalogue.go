// Package jobs loads the job catalogue: which message is sent, for which
// OneSignal app, on which cron schedule.
package jobs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"pushcron/internal/domain/model"
)

var (
	// ErrNotFound is returned when the catalogue file does not exist.
	ErrNotFound = errors.New("job catalogue not found")
	// ErrUnknownJob is returned by Find for names not in the catalogue.
	ErrUnknownJob = errors.New("unknown job")
)

var appPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// Catalogue is the validated set of scheduled jobs.
type Catalogue struct {
	Timezone  string
	Heartbeat string
	Jobs      []model.Job
}

type document struct {
	Timezone  string  `yaml:"timezone"`
	Jobs      []entry `yaml:"jobs"`
	Heartbeat struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"heartbeat"`
}

type entry struct {
	Name     string `yaml:"name"`
	App      string `yaml:"app"`
	Schedule string `yaml:"schedule"`
	Message  string `yaml:"message"`
}

// Load reads the catalogue at path. Relative message paths resolve against the catalogue's directory.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read job catalogue: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes and validates a catalogue document.
func Parse(data []byte, baseDir string) (*Catalogue, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse job catalogue: %w", err)
	}

	catalogue := &Catalogue{
		Timezone:  strings.TrimSpace(doc.Timezone),
		Heartbeat: strings.TrimSpace(doc.Heartbeat.Schedule),
		Jobs:      make([]model.Job, 0, len(doc.Jobs)),
	}
	for _, e := range doc.Jobs {
		message := strings.TrimSpace(e.Message)
		if message != "" && !filepath.IsAbs(message) {
			message = filepath.Join(baseDir, message)
		}
		catalogue.Jobs = append(catalogue.Jobs, model.Job{
			Name:        strings.TrimSpace(e.Name),
			App:         NormalizeApp(e.App),
			Schedule:    strings.TrimSpace(e.Schedule),
			MessagePath: message,
		})
	}

	if err := catalogue.Validate(); err != nil {
		return nil, err
	}
	return catalogue, nil
}

// NormalizeApp upper-cases an app prefix and maps dashes to underscores.
func NormalizeApp(app string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(app), "-", "_"))
}

// Validate reports every problem in the catalogue at once.
func (c *Catalogue) Validate() error {
	var errs []error
	if len(c.Jobs) == 0 {
		errs = append(errs, errors.New("no jobs defined"))
	}

	seen := make(map[string]struct{}, len(c.Jobs))
	for i, job := range c.Jobs {
		label := job.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Errorf("job %s: name is required", label))
		} else if _, dup := seen[job.Name]; dup {
			errs = append(errs, fmt.Errorf("job %s: duplicate name", label))
		}
		seen[job.Name] = struct{}{}

		if !appPattern.MatchString(job.App) {
			errs = append(errs, fmt.Errorf("job %s: invalid app prefix %q", label, job.App))
		}
		if _, err := ParseSchedule(job.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("job %s: invalid schedule %q: %w", label, job.Schedule, err))
		}
		if job.MessagePath == "" {
			errs = append(errs, fmt.Errorf("job %s: message is required", label))
		}
	}

	if c.Heartbeat != "" {
		if _, err := ParseSchedule(c.Heartbeat); err != nil {
			errs = append(errs, fmt.Errorf("heartbeat: invalid schedule %q: %w", c.Heartbeat, err))
		}
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
		}
	}

	return errors.Join(errs...)
}

// Find returns the job called name.
func (c *Catalogue) Find(name string) (model.Job, error) {
	for _, job := range c.Jobs {
		if job.Name == name {
			return job, nil
		}
	}
	return model.Job{}, fmt.Errorf("%w: %s", ErrUnknownJob, name)
}

// Names lists job names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, 0, len(c.Jobs))
	for _, job := range c.Jobs {
		names = append(names, job.Name)
	}
	return names
}

// Location resolves the catalogue timezone, falling back to fallback and then UTC.
func (c *Catalogue) Location(fallback string) (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = fallback
	}
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
