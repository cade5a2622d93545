// Package diagnose collects a degradable health report for the current
// session, configuration and network.
package diagnose

import (
	"context"
	"time"

	"github.com/fulviofreitas/eeroctl/internal/model"
	"github.com/fulviofreitas/eeroctl/internal/output"
)

// API is the subset of the vendor client the collector reads from.
type API interface {
	Account(ctx context.Context) (model.Account, error)
	Network(ctx context.Context, networkID string) (model.Network, error)
	Eeros(ctx context.Context, networkID string) ([]model.Eero, error)
}

// Status is the outcome of a single check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	// StatusSkip means a prerequisite check failed so this one did not run.
	StatusSkip Status = "skip"
)

// Check is one line of the report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Record implements output.Recorder.
func (c Check) Record() output.Record {
	return output.Record{
		{Key: "name", Value: c.Name},
		{Key: "status", Value: string(c.Status)},
		{Key: "detail", Value: c.Detail},
	}
}

// Report is a read-only collection of checks. Failed checks produce
// warnings, never an error from Collect.
type Report struct {
	CollectedAt time.Time
	NetworkID   string
	Checks      []Check
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}

// Warnings lists the checks that did not pass, in collection order.
func (r *Report) Warnings() []string {
	out := []string{}
	for _, c := range r.Checks {
		if c.Status == StatusWarn || c.Status == StatusFail {
			out = append(out, c.Name+": "+c.Detail)
		}
	}
	return out
}

// Check returns the named check.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Record implements output.Recorder.
func (r *Report) Record() output.Record {
	var networkID any
	if r.NetworkID != "" {
		networkID = r.NetworkID
	}
	return output.Record{
		{Key: "collected_at", Value: r.CollectedAt.UTC().Format(time.RFC3339)},
		{Key: "network_id", Value: networkID},
		{Key: "healthy", Value: r.Healthy()},
		{Key: "checks", Value: r.Checks},
	}
}

func (r *Report) add(name string, status Status, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: detail})
}
