// Package v1 holds the JSON documents of the /api/v1 status API.
package v1

import "time"

type Health struct {
	Status string `json:"status"`
	Wheel  Wheel  `json:"wheel"`
}

type Wheel struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	State   string `json:"state"`
	Workers int    `json:"workers"`
}

type Executor struct {
	Name    string `json:"name"`
	Workers int    `json:"workers"`
	Pending int    `json:"pending"`
}

type Worker struct {
	Name           string     `json:"name"`
	Period         string     `json:"period"`
	Runs           uint64     `json:"runs"`
	Panics         uint64     `json:"panics"`
	LastRun        *time.Time `json:"lastRun,omitempty"`
	LastDurationMs float64    `json:"lastDurationMs"`
	NextWake       *time.Time `json:"nextWake,omitempty"`
	Retired        bool       `json:"retired"`
}

type Run struct {
	Id          string    `json:"id"`
	Wheel       string    `json:"wheel"`
	Worker      string    `json:"worker"`
	ScheduledAt time.Time `json:"scheduledAt"`
	StartedAt   time.Time `json:"startedAt"`
	DurationMs  float64   `json:"durationMs"`
	LatenessMs  float64   `json:"latenessMs"`
	Panicked    bool      `json:"panicked"`
}

type RunListResponse struct {
	Page      int   `json:"page"`
	PageCount int   `json:"pageCount"`
	Total     int   `json:"total"`
	Runs      []Run `json:"runs"`
}

type RunSummary struct {
	Worker        string     `json:"worker"`
	Runs          int        `json:"runs"`
	Panics        int        `json:"panics"`
	AvgDurationMs float64    `json:"avgDurationMs"`
	MaxDurationMs float64    `json:"maxDurationMs"`
	LastRun       *time.Time `json:"lastRun,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
