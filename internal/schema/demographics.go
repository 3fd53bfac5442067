package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/courtneynewtocode/career-compass/internal/scoring"
)

var (
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe       = regexp.MustCompile(`^(\+27|0)[0-9]{9}$`)
	phoneStrip    = regexp.MustCompile(`[\s\-()]`)
	nameRe        = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	letterRe      = regexp.MustCompile(`[a-zA-Z]`)
	schoolGradeRe = regexp.MustCompile(`(?i)^(K|R|PRE-?K|[1-9]|1[0-2])(TH|ST|ND|RD)?$|^GRADE\s*([1-9]|1[0-2])$`)
	uniYearRe     = regexp.MustCompile(`(?i)^([1-4](ST|ND|RD|TH)?\s*YEAR|FINAL\s*YEAR|FIRST\s*YEAR|SECOND\s*YEAR|THIRD\s*YEAR|FOURTH\s*YEAR|YEAR\s*[1-4])$`)
)

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool { return emailRe.MatchString(strings.TrimSpace(s)) }

// ValidPhone accepts South African numbers: +27 or 0 followed by nine digits.
func ValidPhone(s string) bool { return phoneRe.MatchString(phoneStrip.ReplaceAllString(s, "")) }

func checkName(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case len(s) < 2:
		return "Name must be at least 2 characters long"
	case !nameRe.MatchString(s):
		return "Name should contain only letters, spaces, hyphens, and apostrophes"
	case !letterRe.MatchString(s):
		return "Name must contain at least one letter"
	}
	return ""
}

func checkAge(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return "Age must be a valid number"
	}
	if n < 10 || n > 100 {
		return "Please enter a valid age (10-100)"
	}
	return ""
}

func checkGrade(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "Grade/Year is required"
	}
	if !schoolGradeRe.MatchString(s) && !uniYearRe.MatchString(s) {
		return "Please enter a valid grade (e.g., K, R, 1-12) or year of study (e.g., 1st Year, Final Year)"
	}
	return ""
}

// ValidateDemographics checks the respondent's details against the fields the
// definition declares. Empty optional fields are skipped.
func ValidateDemographics(values scoring.Respondent, fields []scoring.DemographicField) error {
	ve := &ValidationError{}
	for _, f := range fields {
		v := strings.TrimSpace(values[f.Key])
		if v == "" {
			if f.Required {
				ve.add("%s is required", f.Label)
			}
			continue
		}

		var msg string
		switch f.Key {
		case "studentName":
			msg = checkName(v)
		case "age":
			msg = checkAge(v)
		case "grade":
			msg = checkGrade(v)
		}
		if msg != "" {
			ve.add("%s", msg)
		}

		switch f.Validation {
		case "email":
			if !ValidEmail(v) {
				ve.add("Please enter a valid email address (e.g., name@example.com)")
			}
		case "phone":
			if !ValidPhone(v) {
				ve.add("Please enter a valid contact number (e.g., 0812345678 or +27812345678)")
			}
		}
	}
	return ve.orNil()
}
