package icons

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrBatch marks a population batch in which at least one icon failed.
var ErrBatch = errors.New("icon batch failed")

// Result is the settled load of one category icon.
type Result struct {
	Category string
	Image    image.Image
	Err      error
}

// Policy decides which icons of a settled batch get committed.
type Policy interface {
	Commit(results []Result) (map[string]image.Image, error)
}

// AllOrNothing commits the batch only when every icon loaded.
type AllOrNothing struct{}

func (AllOrNothing) Commit(results []Result) (map[string]image.Image, error) {
	if err := batchErr(results); err != nil {
		return nil, err
	}
	return collect(results), nil
}

// Partial commits every icon that loaded and reports the rest.
type Partial struct{}

func (Partial) Commit(results []Result) (map[string]image.Image, error) {
	return collect(results), batchErr(results)
}

// PolicyByName maps the config names "all-or-nothing" and "partial".
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "all-or-nothing":
		return AllOrNothing{}, nil
	case "partial":
		return Partial{}, nil
	default:
		return nil, errors.Errorf("unknown icon policy %q", name)
	}
}

func collect(results []Result) map[string]image.Image {
	out := make(map[string]image.Image, len(results))
	for _, r := range results {
		if r.Err == nil && r.Image != nil {
			out[r.Category] = r.Image
		}
	}
	return out
}

func batchErr(results []Result) error {
	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, r.Err)
		}
	}
	if errs == nil {
		return nil
	}
	return &batchError{cause: errs}
}

type batchError struct {
	cause error
}

func (e *batchError) Error() string { return ErrBatch.Error() + ": " + e.cause.Error() }

func (e *batchError) Is(target error) bool { return target == ErrBatch }

func (e *batchError) Unwrap() error { return e.cause }
