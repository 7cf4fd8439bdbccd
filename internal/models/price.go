package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price is a decimal(5,2) amount held as integer cents.
type Price int64

// MaxPrice is the largest amount a decimal(5,2) column can hold.
const MaxPrice Price = 99999

var (
	ErrInvalidPrice   = errors.New("a valid number is required")
	ErrPriceDecimals  = errors.New("ensure that there are no more than 2 decimal places")
	ErrPriceMaxDigits = errors.New("ensure that there are no more than 5 digits in total")
)

// ParsePrice parses a plain decimal literal such as "5", "5.5" or "-12.25".
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, ErrInvalidPrice
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, ErrInvalidPrice
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > 2 {
		return 0, ErrPriceDecimals
	}
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > 3 {
		return 0, ErrPriceMaxDigits
	}

	var units, cents int64
	if whole != "" {
		units, _ = strconv.ParseInt(whole, 10, 64)
	}
	if frac != "" {
		cents, _ = strconv.ParseInt((frac + "00")[:2], 10, 64)
	}
	p := Price(units*100 + cents)
	if neg {
		p = -p
	}
	return p, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Cents returns the amount in cents.
func (p Price) Cents() int64 { return int64(p) }

func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the price as a string so no precision is lost in
// JavaScript clients.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both "5.25" and 5.25.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return ErrInvalidPrice
		}
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements the driver.Valuer interface
func (p Price) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface
func (p *Price) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*p = 0
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case int64:
		*p = Price(v * 100)
		return nil
	case float64:
		raw = strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return fmt.Errorf("cannot scan %T into Price", value)
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return fmt.Errorf("scan price %q: %w", raw, err)
	}
	*p = parsed
	return nil
}
