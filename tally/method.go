// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
)

// Method identifies a voting method
type Method int

const (
	FirstPastThePost Method = iota
	Approval
	Preferential
	GoodOkBad
	Star
	AntiPlurality
	UsualJudgment
)

var methodNames = [...]string{
	FirstPastThePost: "first_past_the_post",
	Approval:         "approval",
	Preferential:     "preferential",
	GoodOkBad:        "good_ok_bad",
	Star:             "star",
	AntiPlurality:    "anti_plurality",
	UsualJudgment:    "usual_judgment",
}

var methodTitles = [...]string{
	FirstPastThePost: "First Past The Post",
	Approval:         "Approval",
	Preferential:     "Preferential",
	GoodOkBad:        "Good Ok Bad",
	Star:             "STAR",
	AntiPlurality:    "Anti-Plurality",
	UsualJudgment:    "Usual Judgment",
}

// All returns every method in declaration order
func All() []Method {
	return []Method{FirstPastThePost, Approval, Preferential, GoodOkBad, Star, AntiPlurality, UsualJudgment}
}

// Valid reports whether m is a known method
func (m Method) Valid() bool {
	return m >= FirstPastThePost && m <= UsualJudgment
}

// String returns the wire name, e.g. "first_past_the_post"
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodNames[m]
}

// Title returns the display name, e.g. "First Past The Post"
func (m Method) Title() string {
	if !m.Valid() {
		return m.String()
	}
	return methodTitles[m]
}

// ParseMethod looks up a method by wire name
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if name == s {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("unknown voting method %q", s)
}

func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid voting method %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
