package domain

import (
	"context"
	"time"
)

// ConversionKind names one of the four conversions.
type ConversionKind string

const (
	ConversionRegexToDFA ConversionKind = "regex_to_dfa"
	ConversionNFAToDFA   ConversionKind = "nfa_to_dfa"
	ConversionDFAToRegex ConversionKind = "dfa_to_regex"
	ConversionNFAToRegex ConversionKind = "nfa_to_regex"
)

// ConversionEvent is emitted when a conversion starts and when it ends.
// Success, Steps, Duration and ErrorKind are only set on end.
type ConversionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      ConversionKind `json:"kind"`
	Success   bool           `json:"success"`
	Steps     int            `json:"steps"`
	Duration  time.Duration  `json:"duration"`
	ErrorKind ErrorKind      `json:"error_kind,omitempty"`
}

// StepEvent is emitted for each recorded step.
type StepEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      ConversionKind `json:"kind"`
	Step      Step           `json:"step"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnConversionStart func(context.Context, *ConversionEvent)
	OnConversionEnd   func(context.Context, *ConversionEvent)
	OnStep            func(context.Context, *StepEvent)
}
