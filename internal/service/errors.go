package service

import (
	"errors"
	"strings"
)

var ErrPostNotFound = errors.New("post not found")

// FieldError describes one rejected input value. Loc is the path to it, e.g.
// ["query", "skip"] or ["body", "title"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, strings.Join(fe.Loc, ".")+": "+fe.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(msg, typ string, loc ...string) {
	e.Errors = append(e.Errors, FieldError{Loc: loc, Msg: msg, Type: typ})
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
