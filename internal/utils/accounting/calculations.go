package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinLinesPerEntry is the smallest number of lines a journal entry may carry.
const MinLinesPerEntry = 2

// AmountScale is the number of decimal places a stored amount keeps.
const AmountScale = 4

// ValidateLineShape checks a single line: amounts are non-negative, fit in
// AmountScale decimal places and exactly one side is positive.
func ValidateLineShape(line domain.JournalEntryLine, position int) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("line %d: debit and credit must not be negative", position)
	}
	if exceedsScale(line.Debit) || exceedsScale(line.Credit) {
		return fmt.Errorf("line %d: amounts may carry at most %d decimal places", position, AmountScale)
	}
	hasDebit := line.Debit.IsPositive()
	hasCredit := line.Credit.IsPositive()
	switch {
	case hasDebit && hasCredit:
		return fmt.Errorf("line %d: a line cannot carry both a debit and a credit", position)
	case !hasDebit && !hasCredit:
		return fmt.Errorf("line %d: a line must carry either a debit or a credit", position)
	}
	return nil
}

// exceedsScale ignores trailing zeros, so 1.50000 is accepted.
func exceedsScale(d decimal.Decimal) bool {
	return !d.Equal(d.Truncate(AmountScale))
}

// SumLines returns the total debit and total credit of the lines.
func SumLines(lines []domain.JournalEntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateJournalBalance checks line count, line shapes and that the entry
// balances within domain.EntryBalanceTolerance. It returns the totals.
func ValidateJournalBalance(lines []domain.JournalEntryLine) (decimal.Decimal, decimal.Decimal, error) {
	if len(lines) < MinLinesPerEntry {
		return decimal.Zero, decimal.Zero, fmt.Errorf("journal entry must have at least %d lines", MinLinesPerEntry)
	}
	for i, line := range lines {
		if err := ValidateLineShape(line, i+1); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	totalDebit, totalCredit := SumLines(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.EntryBalanceTolerance) {
		return totalDebit, totalCredit, fmt.Errorf("journal entry is not balanced: total debit %s, total credit %s",
			totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}

// WithinReportTolerance reports whether two report totals agree, that is
// |a-b| < domain.ReportBalanceTolerance.
func WithinReportTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(domain.ReportBalanceTolerance)
}

// SumPositive adds only the strictly positive balances.
func SumPositive(lines []domain.StatementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Balance.IsPositive() {
			total = total.Add(l.Balance)
		}
	}
	return total
}

// SumBalances adds every balance, sign included.
func SumBalances(lines []domain.StatementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Balance)
	}
	return total
}
