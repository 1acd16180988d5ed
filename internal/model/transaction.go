package model

import (
	"strings"
	"time"
)

// DateLayout is the canonical serialization of a calendar date.
// Lexicographic order on this layout is date order.
const DateLayout = "2006-01-02"

// Kind indicates the direction of a transaction. Direction is never
// encoded in the amount's sign.
type Kind string

const (
	// KindIncome marks money coming in.
	KindIncome Kind = "income"
	// KindExpense marks money going out.
	KindExpense Kind = "expense"
)

// ParseKind matches "income" case-insensitively; anything else is an
// expense. This is the coercion rule used on import.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindIncome)) {
		return KindIncome
	}
	return KindExpense
}

// Transaction is a single dated ledger entry. Amount is in minor units
// (euro cents) and is always non-negative.
type Transaction struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Amount   int64  `json:"amountCents"`
	Note     string `json:"note,omitempty"`
}

// YearMonth returns the YYYY-MM prefix of the transaction date.
func (t Transaction) YearMonth() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

// ValidDate reports whether s is a real calendar date in canonical form.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
