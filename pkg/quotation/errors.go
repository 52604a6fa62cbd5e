package quotation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWeight is wrapped by errors for weight labels that are not numbers.
	ErrInvalidWeight = errors.New("quotation: invalid weight label")
	// ErrMissingZone is wrapped by errors for zones absent from the header row.
	ErrMissingZone = errors.New("quotation: zone column not found")
	// ErrInvalidPrice is wrapped by errors for price cells that are not numbers.
	ErrInvalidPrice = errors.New("quotation: invalid price")
)

// WeightLabelError reports a weight label that cannot be read as a range.
type WeightLabelError struct {
	Row    int
	Label  string
	Reason string
}

func (e *WeightLabelError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("quotation: row %d: invalid weight label %q: %s", e.Row, e.Label, e.Reason)
	}
	return fmt.Sprintf("quotation: invalid weight label %q: %s", e.Label, e.Reason)
}

func (e *WeightLabelError) Unwrap() error { return ErrInvalidWeight }

// MissingZoneError reports a zone whose name has no column in the header row.
type MissingZoneError struct {
	ZoneID   string
	ZoneName string
}

func (e *MissingZoneError) Error() string {
	return fmt.Sprintf("quotation: zone %q (%s) has no column in the header row", e.ZoneName, e.ZoneID)
}

func (e *MissingZoneError) Unwrap() error { return ErrMissingZone }

// PriceError reports a price cell that is not a number.
type PriceError struct {
	Row    int
	Col    int
	ZoneID string
	Value  string
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("quotation: row %d col %d (zone %s): invalid price %q", e.Row, e.Col, e.ZoneID, e.Value)
}

func (e *PriceError) Unwrap() error { return ErrInvalidPrice }
