package models

import "time"

type WorkerKind string

const (
	WorkerKindHeartbeat WorkerKind = "heartbeat"
	WorkerKindSleep     WorkerKind = "sleep"
	WorkerKindPrune     WorkerKind = "prune"
)

func ParseWorkerKind(s string) (WorkerKind, error) {
	switch WorkerKind(s) {
	case WorkerKindHeartbeat, WorkerKindSleep, WorkerKindPrune:
		return WorkerKind(s), nil
	default:
		return "", &UnknownWorkerKindError{Kind: s}
	}
}

type UnknownWorkerKindError struct {
	Kind string
}

func (e *UnknownWorkerKindError) Error() string {
	return "unknown worker kind: " + e.Kind
}

type WorkerStatus struct {
	Name         string
	Period       time.Duration
	Runs         uint64
	Panics       uint64
	LastRun      time.Time
	LastDuration time.Duration
	NextWake     time.Time
	Retired      bool
}

type ExecutorStatus struct {
	Name    string
	Workers int
	Pending int
}

type WheelStatus struct {
	ID      string
	Name    string
	State   string
	Workers int
}
