package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var ErrUnknownStatus = errors.New("unknown booking status")

type Status int

const (
	StatusUnknown Status = iota
	StatusBooked
	StatusInUse
	StatusCancelled
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusBooked:    "Đã đặt",
	StatusInUse:     "Đang sử dụng",
	StatusCancelled: "Hủy",
	StatusCompleted: "Hoàn thành",
}

// Statuses returns the canonical values in lifecycle order.
func Statuses() []Status {
	return []Status{StatusBooked, StatusInUse, StatusCancelled, StatusCompleted}
}

// ParseStatus matches raw against the canonical names after trimming,
// NFC normalisation and case folding.
func ParseStatus(raw string) (Status, error) {
	candidate := norm.NFC.String(strings.TrimSpace(raw))

	for _, status := range Statuses() {
		if strings.EqualFold(candidate, statusNames[status]) {
			return status, nil
		}
	}

	return StatusUnknown, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return "unknown"
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]

	return ok
}

// Blocking statuses occupy the room for conflict checks.
func (s Status) Blocking() bool {
	return s == StatusBooked || s == StatusInUse
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}

	return s.String(), nil
}

func (s *Status) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*s = StatusUnknown

		return nil
	default:
		return fmt.Errorf("cannot scan %T into booking status", src)
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
