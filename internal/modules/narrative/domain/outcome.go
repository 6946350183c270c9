package domain

import (
	"encoding/base64"
	"errors"
)

var (
	ErrRateLimited   = errors.New("generation quota exceeded")
	ErrEmptyResponse = errors.New("model returned no content")
	ErrNoImage       = errors.New("model returned no image")
	ErrUnavailable   = errors.New("generation backend not configured")
	ErrNoBackstory   = errors.New("character has no background story")
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// Outcome is the result of one generation call. Degraded carries a usable
// fallback value, Failed carries none.
type Outcome[T any] struct {
	Value  T
	Status Status
	Cause  error
}

func OK[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value, Status: StatusOK}
}

func Degraded[T any](fallback T, cause error) Outcome[T] {
	return Outcome[T]{Value: fallback, Status: StatusDegraded, Cause: cause}
}

func Failed[T any](cause error) Outcome[T] {
	return Outcome[T]{Status: StatusFailed, Cause: cause}
}

func (o Outcome[T]) Reason() string {
	if o.Cause == nil {
		return ""
	}
	return o.Cause.Error()
}

// Image is raw image bytes as returned by the model.
type Image struct {
	MIMEType string
	Data     []byte
}

// Handle encodes the image as a data URL, the form stored on records.
func (i Image) Handle() string {
	mime := i.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
