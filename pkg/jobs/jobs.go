// Package jobs describes what the harvester pulls from WordPress.com and how.
// Jobs are declared in a YAML or JSON registry file.
package jobs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/wpcom-harvester/internal/regfile"
)

// Supported job kinds.
const (
	KindPosts = "posts"
	KindStats = "stats"
	KindRoute = "route"
)

var defaultRequestDelayMs = 500

// Job is one harvest query against a site. Route names the stats report for
// stats jobs and the full API route for route jobs.
type Job struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Kind           string         `json:"kind" yaml:"kind"`
	Site           string         `json:"site" yaml:"site"`
	Route          string         `json:"route" yaml:"route"`
	Method         string         `json:"method" yaml:"method"`
	Params         map[string]any `json:"params" yaml:"params"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Enabled        *bool          `json:"enabled" yaml:"enabled"`
}

type configFile struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// Registry holds validated jobs loaded from a config file.
type Registry struct {
	mu   sync.RWMutex
	jobs []Job
	idx  map[string]Job
}

// LoadRegistry loads the job registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	var parsed configFile
	if err := regfile.Load(path, "jobs", &parsed); err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Jobs)
}

// NewRegistry validates jobs and indexes them by id.
func NewRegistry(jobs []Job) (*Registry, error) {
	if len(jobs) == 0 {
		return nil, errors.New("jobs file contains no jobs entries")
	}

	reg := &Registry{
		jobs: make([]Job, len(jobs)),
		idx:  make(map[string]Job, len(jobs)),
	}
	for i := range jobs {
		j := sanitizeJob(jobs[i])
		if err := validateJob(j); err != nil {
			return nil, fmt.Errorf("job[%d]: %w", i, err)
		}
		if _, exists := reg.idx[j.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		reg.jobs[i] = j
		reg.idx[j.ID] = j
	}
	return reg, nil
}

func sanitizeJob(j Job) Job {
	j.ID = strings.TrimSpace(j.ID)
	j.Name = strings.TrimSpace(j.Name)
	j.Kind = strings.ToLower(strings.TrimSpace(j.Kind))
	j.Site = strings.TrimSpace(j.Site)
	j.Route = strings.Trim(strings.TrimSpace(j.Route), "/")
	j.Method = strings.ToUpper(strings.TrimSpace(j.Method))

	if j.Name == "" {
		j.Name = j.ID
	}
	if j.Method == "" {
		j.Method = http.MethodGet
	}
	if j.Params == nil {
		j.Params = map[string]any{}
	}
	if j.RequestDelayMs <= 0 {
		j.RequestDelayMs = defaultRequestDelayMs
	}
	if j.Enabled == nil {
		def := true
		j.Enabled = &def
	}
	return j
}

func validateJob(j Job) error {
	if j.ID == "" {
		return errors.New("id is required")
	}
	switch j.Kind {
	case KindPosts, KindStats:
		if j.Site == "" {
			return fmt.Errorf("site is required for %s job %q", j.Kind, j.ID)
		}
		if j.Method != http.MethodGet {
			return fmt.Errorf("%s job %q only supports GET", j.Kind, j.ID)
		}
	case KindRoute:
		if j.Route == "" {
			return fmt.Errorf("route is required for route job %q", j.ID)
		}
	case "":
		return fmt.Errorf("kind is required for job %q", j.ID)
	default:
		return fmt.Errorf("unsupported kind %q for job %q", j.Kind, j.ID)
	}
	return nil
}

// All returns all configured jobs.
func (r *Registry) All() []Job {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Enabled returns jobs that are enabled.
func (r *Registry) Enabled() []Job {
	all := r.All()
	out := make([]Job, 0, len(all))
	for _, j := range all {
		if j.EnabledValue() {
			out = append(out, j)
		}
	}
	return out
}

// ByID returns the job with the given id, if loaded.
func (r *Registry) ByID(id string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.idx[id]
	return j, ok
}

// EnabledValue returns enabled flag defaulting to true.
func (j Job) EnabledValue() bool {
	if j.Enabled == nil {
		return true
	}
	return *j.Enabled
}

// RequestDelay returns the pause taken after this job before the next one.
func (j Job) RequestDelay() time.Duration {
	if j.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(j.RequestDelayMs) * time.Millisecond
}
