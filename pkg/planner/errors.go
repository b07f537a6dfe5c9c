package planner

import (
	"errors"
	"fmt"
)

// Failure kinds. Match with errors.Is.
var (
	ErrEmptyRequest = errors.New("empty request")
	ErrService      = errors.New("completion service failed")
	ErrParse        = errors.New("response could not be parsed")
	ErrEmptyResult  = errors.New("no itinerary generated")
)

type Phase string

const (
	PhaseDraft        Phase = "draft"
	PhaseToolExchange Phase = "tool_exchange"
	PhaseCompile      Phase = "compile"
	PhaseParse        Phase = "parse"
)

// GenerationError is the single error type returned by Generate.
type GenerationError struct {
	Kind    error
	Phase   Phase
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Phase != "" {
		return fmt.Sprintf("%s (%s)", msg, e.Phase)
	}
	return msg
}

func (e *GenerationError) Is(target error) bool {
	return target == e.Kind
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func serviceError(phase Phase, err error) error {
	return &GenerationError{Kind: ErrService, Phase: phase, Err: err}
}

func parseError(msg string, err error) error {
	return &GenerationError{Kind: ErrParse, Phase: PhaseParse, Message: msg, Err: err}
}

func emptyResultError() error {
	return &GenerationError{Kind: ErrEmptyResult, Phase: PhaseParse, Message: "itinerary list is empty"}
}

// UserMessage turns a generation failure into copy suitable for end users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyRequest):
		return "Please describe the trip you would like to plan."
	case errors.Is(err, ErrEmptyResult):
		return "Sorry, we couldn't generate an itinerary for that request. Please try being more specific."
	case errors.Is(err, ErrParse):
		return "The AI's response was not in the expected format. Please try rephrasing your request."
	case errors.Is(err, ErrService):
		return "We couldn't reach the itinerary service. Please try again in a moment."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
