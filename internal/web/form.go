package web

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/apperrors"
)

var dateTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// form reads and validates POST fields. It keeps the first failure only;
// once a field fails, later reads return zero values.
type form struct {
	c   *gin.Context
	err *apperrors.ValidationError
}

func newForm(c *gin.Context) *form {
	return &form{c: c}
}

func (f *form) fail(field, msg string) {
	if f.err == nil {
		f.err = &apperrors.ValidationError{Field: field, Message: msg}
	}
}

// Err returns the first validation failure, if any.
func (f *form) Err() *apperrors.ValidationError { return f.err }

func (f *form) raw(field string) string {
	return strings.TrimSpace(f.c.PostForm(field))
}

// text returns an optional free-text field.
func (f *form) text(field string) string {
	if f.err != nil {
		return ""
	}
	return f.raw(field)
}

func (f *form) required(field, label string) string {
	if f.err != nil {
		return ""
	}
	v := f.raw(field)
	if v == "" {
		f.fail(field, fmt.Sprintf("%s cannot be empty.", label))
	}
	return v
}

// positiveInt accepts only plain digit strings with a value above zero.
func (f *form) positiveInt(field, label string) int64 {
	if f.err != nil {
		return 0
	}
	v := f.raw(field)
	n, err := strconv.ParseInt(v, 10, 64)
	if v == "" || strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) >= 0 || err != nil || n <= 0 {
		f.fail(field, fmt.Sprintf("'%s' must be a positive integer.", label))
		return 0
	}
	return n
}

func (f *form) nonNegative(field, label string) float64 {
	if f.err != nil {
		return 0
	}
	x, err := strconv.ParseFloat(f.raw(field), 64)
	if err != nil || x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		f.fail(field, fmt.Sprintf("'%s' must be a non-negative number.", label))
		return 0
	}
	return x
}

func (f *form) date(field, label string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", f.raw(field))
	if err != nil {
		f.fail(field, fmt.Sprintf("'%s' must be a date (YYYY-MM-DD).", label))
	}
	return t
}

func (f *form) dateTime(field, label string) time.Time {
	if f.err != nil {
		return time.Time{}
	}
	v := f.raw(field)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	f.fail(field, fmt.Sprintf("'%s' must be a date and time (YYYY-MM-DD HH:MM).", label))
	return time.Time{}
}
