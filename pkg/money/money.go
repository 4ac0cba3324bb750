// Copyright (c) 2026 Datadoit. All rights reserved.
// Author: contact@datadoit.app

/*
Package money provides a tolerant decimal amount type for upstream payloads.

The upstream API serializes monetary fields as quoted decimal strings
("149.00") while some legacy endpoints emit bare JSON numbers. [Amount]
decodes both forms so calling code never branches on the wire shape.

Do not use this package for arithmetic that requires exact decimal
semantics; totals shown by the gateway are display values, the upstream
remains the source of truth for billing.
*/
package money

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount is a monetary value in the storefront currency's major unit.
type Amount float64

// UnmarshalJSON accepts both `"149.00"` and `149.0` wire forms.
func (amount *Amount) UnmarshalJSON(data []byte) error {

	// Treat JSON null as zero rather than an error.
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*amount = 0
		return nil
	}

	// Unquote string-encoded decimals before parsing.
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("money_parse_failed: %w", err)
	}

	*amount = Amount(value)
	return nil
}

// MarshalJSON always emits a bare JSON number.
func (amount Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(amount))
}

// Float64 returns the amount as a plain float64.
func (amount Amount) Float64() float64 {
	return float64(amount)
}
