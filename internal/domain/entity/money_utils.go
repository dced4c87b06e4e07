package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/propstake/token-ledger/internal/domain/error"
)

// Monetary values are handled as int64 cents throughout the domain so fee
// computation stays exact integer arithmetic. Percentages are parsed from
// 2-decimal strings into basis points with the same string-based approach.

// MaxDecimalPlaces defines the maximum number of decimal places allowed
// for money amounts and fee percentages
const MaxDecimalPlaces = 2

// parseTwoDecimalString converts a string like "2.5" or "1000" into an
// integer scaled by 100 ("2.5" -> 250, "1000" -> 100000) without going
// through floating point
func parseTwoDecimalString(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(value, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(value, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var scaled string
	if len(parts) == 1 {
		scaled = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			scaled = parts[0] + "00"
		case 1:
			scaled = parts[0] + parts[1] + "0"
		case 2:
			scaled = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	result, err := strconv.ParseInt(scaled, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	return result, nil
}

// AmountToCents validates and converts a currency string to cents
func AmountToCents(amount string) (int64, error) {
	return parseTwoDecimalString(amount)
}

// PercentToBasisPoints converts a fee percentage string (at most two decimal
// places, 0-100) to basis points ("2.50" -> 250)
func PercentToBasisPoints(percent string) (int64, error) {
	bps, err := parseTwoDecimalString(percent)
	if err != nil {
		return 0, err
	}
	if bps > 10000 {
		return 0, fmt.Errorf("%w: fee percentage cannot exceed 100", errs.ErrInvalidAmount)
	}
	return bps, nil
}

// CentsToString converts an integer cents amount to a 2-decimal string
// (1015 -> "10.15", 500000 -> "5000.00")
func CentsToString(cents int64) string {
	isNegative := cents < 0
	if isNegative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	decimalPos := len(s) - 2
	whole := s[:decimalPos]
	decimal := s[decimalPos:]

	if isNegative {
		return "-" + whole + "." + decimal
	}
	return whole + "." + decimal
}

// ApplyFee computes the processing fee in cents for a base amount and a fee
// in basis points. Exact for 2-decimal percentages over cent amounts.
func ApplyFee(baseCents, feeBps int64) int64 {
	return baseCents * feeBps / 10000
}
