package payroll

import (
	"regexp"
	"strings"
)

// Parser turns a raw work history string into a WorkHistory.
//
// Failures wrap one of ErrInvalidInputFormat, ErrInvalidIntervalFormat,
// ErrInvalidDay or ErrInvalidTimeInterval.
type Parser interface {
	Parse(input string) (*WorkHistory, error)
}

var intervalPattern = regexp.MustCompile(`^([A-Z]{2})(\d{2}:\d{2})-(\d{2}:\d{2})$`)

// TextParser reads the NAME=DDHH:MM-HH:MM,DDHH:MM-HH:MM,... format.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

// Compile-time check that TextParser implements Parser
var _ Parser = (*TextParser)(nil)

func (p *TextParser) Parse(input string) (*WorkHistory, error) {
	name, rest, found := strings.Cut(strings.TrimSpace(input), "=")
	if !found || name == "" || rest == "" {
		return nil, &InputError{Kind: ErrInvalidInputFormat, Token: input}
	}

	tokens := strings.Split(rest, ",")
	history := &WorkHistory{
		Employee:  name,
		Intervals: make([]WorkInterval, 0, len(tokens)),
	}

	for _, token := range tokens {
		iv, err := parseInterval(token)
		if err != nil {
			return nil, err
		}
		history.Intervals = append(history.Intervals, iv)
	}
	return history, nil
}

func parseInterval(token string) (WorkInterval, error) {
	m := intervalPattern.FindStringSubmatch(token)
	if m == nil {
		return WorkInterval{}, &InputError{Kind: ErrInvalidIntervalFormat, Token: token}
	}

	day, err := ParseDay(m[1])
	if err != nil {
		return WorkInterval{}, &InputError{Kind: ErrInvalidDay, Token: m[1]}
	}

	start, err := ParseTimeOfDay(m[2])
	if err != nil {
		return WorkInterval{}, &InputError{Kind: ErrInvalidIntervalFormat, Token: token}
	}
	end, err := ParseTimeOfDay(m[3])
	if err != nil {
		return WorkInterval{}, &InputError{Kind: ErrInvalidIntervalFormat, Token: token}
	}

	if !end.After(start) {
		return WorkInterval{}, &InputError{Kind: ErrInvalidTimeInterval, Token: token}
	}
	return WorkInterval{Day: day, Start: start, End: end}, nil
}
