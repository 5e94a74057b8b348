package cron

import (
	"context"
	"testing"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	ran := false
	Register("testexport", "@every 1h", func(ctx context.Context) {
		ran = true
	})
	Register("testaudit", "@daily", func(context.Context) {})
	defer Unregister("testexport")
	defer Unregister("testaudit")

	jobs := Jobs()
	if len(jobs) < 2 {
		t.Fatalf("Jobs() = %d entries, want at least 2", len(jobs))
	}
	for i := 1; i < len(jobs); i++ {
		if jobs[i-1].Name > jobs[i].Name {
			t.Errorf("Jobs() not sorted: %q before %q", jobs[i-1].Name, jobs[i].Name)
		}
	}
	j, ok := Lookup("testexport")
	if !ok {
		t.Fatal("testexport not found")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run(context.Background())
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegistry_LockedAfterJobs(t *testing.T) {
	Register("lockjob", "@hourly", func(context.Context) {})
	defer Unregister("lockjob")
	Jobs()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when registering after Jobs()")
		}
	}()
	Register("latejob", "@hourly", func(context.Context) {})
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("dupjob", "@hourly", func(context.Context) {})
	defer Unregister("dupjob")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupjob", "@daily", func(context.Context) {})
}

func TestStartCron_BadSchedule(t *testing.T) {
	Register("badschedule", "not a schedule", func(context.Context) {})
	defer Unregister("badschedule")
	if c, err := StartCron(context.Background(), nil); err == nil {
		c.Stop()
		t.Fatal("StartCron: want error for invalid schedule")
	}
}
