package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-8][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsValidUUID accepts RFC 9562 UUIDs of versions 1 through 8, any case.
func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ValidateDateRange checks a pair of YYYY-MM-DD strings and appends any
// problem to errs under the given field names.
func ValidateDateRange(errs ValidationErrors, startField, start, endField, end string) (time.Time, time.Time, ValidationErrors) {
	var startDate, endDate time.Time
	var okStart, okEnd bool

	if IsEmpty(start) {
		errs = append(errs, ValidationError{Field: startField, Message: startField + " is required"})
	} else if startDate, okStart = IsValidDate(start); !okStart {
		errs = append(errs, ValidationError{Field: startField, Message: startField + " must be in YYYY-MM-DD format"})
	}

	if IsEmpty(end) {
		errs = append(errs, ValidationError{Field: endField, Message: endField + " is required"})
	} else if endDate, okEnd = IsValidDate(end); !okEnd {
		errs = append(errs, ValidationError{Field: endField, Message: endField + " must be in YYYY-MM-DD format"})
	}

	if okStart && okEnd && startDate.After(endDate) {
		errs = append(errs, ValidationError{Field: startField, Message: "Start date must be before end date."})
	}

	return startDate, endDate, errs
}

// SpanDays is the number of calendar days in the inclusive range [start, end].
func SpanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// ValidateMaxSpan appends an error under field when [start, end] covers more
// than maxDays calendar days.
func ValidateMaxSpan(errs ValidationErrors, field string, start, end time.Time, maxDays int) ValidationErrors {
	if SpanDays(start, end) > maxDays {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("date range must not exceed %d days", maxDays),
		})
	}
	return errs
}
