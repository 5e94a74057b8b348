package cron

import (
	"context"
	"sort"
	"sync"

	"larana.GO/core/registry"
)

// RunFunc executes one job run. ctx is cancelled when the scheduler stops.
type RunFunc func(ctx context.Context)

// Job is a named schedule entry.
type Job struct {
	Name     string
	Schedule string
	Run      RunFunc
}

var mu sync.Mutex

// Register adds a job. Panics on a duplicate name or once the scheduler has read the registry.
func Register(name, schedule string, run RunFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register before StartCron)")
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{Name: name, Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job and unlocks the registry (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns the registered jobs ordered by name and locks the registry.
func Jobs() []Job {
	mu.Lock()
	defer mu.Unlock()
	m := getJobs()
	out := make([]Job, 0, len(m))
	for _, j := range m {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}

// Lookup finds a registered job by name.
func Lookup(name string) (Job, bool) {
	mu.Lock()
	defer mu.Unlock()
	j, ok := getJobs()[name]
	return j, ok
}
