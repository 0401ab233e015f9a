package checkerr

import (
	"fmt"
	"log/slog"
)

// Errors accumulates CheckErrors across a batch of top-level expressions.
type Errors struct {
	errs []CheckError
}

// With appends one or more errors, allocating a new Errors if r is nil.
func (r *Errors) With(err ...CheckError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

// Merge folds other's errors into r.
func (r *Errors) Merge(other *Errors) *Errors {
	if r == nil {
		return other
	}
	if other == nil || len(other.errs) == 0 {
		return r
	}
	return r.With(other.errs...)
}

func (r *Errors) Errors() []CheckError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	return r != nil && len(r.errs) > 0
}

func (r *Errors) LogValue() slog.Value {
	if r == nil {
		return slog.GroupValue()
	}
	attrs := make([]slog.Attr, 0, len(r.errs))
	for i, e := range r.errs {
		attrs = append(attrs, slog.Attr{
			Key:   fmt.Sprint("e", i),
			Value: slog.StringValue(FormatWithCode(e)),
		})
	}
	return slog.GroupValue(attrs...)
}
