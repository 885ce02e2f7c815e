package validation

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	json "github.com/goccy/go-json"
)

// ErrMalformedInput matches any answer payload that is not a single JSON
// value.
var ErrMalformedInput = errors.New("validation: malformed input")

// MalformedInputError reports a payload that could not be decoded. It is
// never reported as a schema issue.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Err == nil {
		return ErrMalformedInput.Error()
	}
	return ErrMalformedInput.Error() + ": " + e.Err.Error()
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

// DecodeCandidate decodes raw into generic JSON values. Numbers are kept as
// json.Number so integer checks see the literal the client sent.
func DecodeCandidate(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &MalformedInputError{Err: errors.New("empty payload")}
	}
	if !utf8.Valid(raw) {
		return nil, &MalformedInputError{Err: errors.New("invalid UTF-8 in payload")}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &MalformedInputError{Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Err: errors.New("unexpected trailing data after payload")}
	}
	return value, nil
}

// ValidateJSON decodes raw and validates it. A malformed payload is returned
// as the error; schema violations are always reported through the Result.
func ValidateJSON(v Validator, raw []byte) (Result, error) {
	value, err := DecodeCandidate(raw)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(value), nil
}
