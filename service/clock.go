package service

import (
	"time"
)

// realClock reads the system wall clock
type realClock struct{}

// NewClock returns the production Clock
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}
