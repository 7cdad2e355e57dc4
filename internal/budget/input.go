package budget

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const maxNameLen = 120

// ExpenseInput is a validated request to record a discretionary expense.
type ExpenseInput struct {
	Name  string
	Value decimal.Decimal
	Date  time.Time
}

func (in ExpenseInput) Validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validatePositive("value", in.Value); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return invalid("date", "date is required")
	}
	return nil
}

type IncomeInput struct {
	Name  string
	Value decimal.Decimal
	Type  IncomeType
	Date  time.Time
}

func (in IncomeInput) Validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validatePositive("value", in.Value); err != nil {
		return err
	}
	switch in.Type {
	case IncomeSalary, IncomeIncome, IncomeLeftover:
	default:
		return invalid("type", "income type must be one of salary, income, leftover")
	}
	return nil
}

type BillInput struct {
	Name    string
	Value   decimal.Decimal
	Day     int
	Type    BillType
	Savings bool
}

func (in BillInput) Validate() error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validatePositive("value", in.Value); err != nil {
		return err
	}
	if in.Day < 1 || in.Day > 31 {
		return invalid("day", "day must be between 1 and 31")
	}
	switch in.Type {
	case BillManual, BillAutomatic:
	default:
		return invalid("type", "bill type must be manual or automatic")
	}
	return nil
}

type SavingInput struct {
	Amount decimal.Decimal
}

func (in SavingInput) Validate() error {
	return validatePositive("amount", in.Amount)
}

func ValidatePayday(day int) error {
	if day < 1 || day > 31 {
		return invalid("payday", "payday must be between 1 and 31")
	}
	return nil
}

// ParseAmount parses a money amount typed by the user. Both "12.50" and
// "12,50" are accepted.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, invalid(field, "%s is required", field)
	}
	trimmed = strings.Replace(trimmed, ",", ".", 1)
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, invalid(field, "%s is not a valid number", field)
	}
	return d, nil
}

func ParseDay(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid(field, "%s is not a valid number", field)
	}
	if n < 1 || n > 31 {
		return 0, invalid(field, "%s must be between 1 and 31", field)
	}
	return n, nil
}

func ParseDate(field, raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, invalid(field, "%s is required", field)
	}
	t, err := time.ParseInLocation("2006-01-02", trimmed, loc)
	if err != nil {
		return time.Time{}, invalid(field, "%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

func ParseIncomeType(raw string) (IncomeType, error) {
	t := IncomeType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return IncomeIncome, nil
	}
	switch t {
	case IncomeSalary, IncomeIncome, IncomeLeftover:
		return t, nil
	}
	return "", invalid("type", "income type must be one of salary, income, leftover")
}

func ParseBillType(raw string) (BillType, error) {
	t := BillType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return BillManual, nil
	}
	switch t {
	case BillManual, BillAutomatic:
		return t, nil
	}
	return "", invalid("type", "bill type must be manual or automatic")
}

// Money converts a validated amount to the float64 the ledger stores.
func Money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("name", "name is required")
	}
	if len(trimmed) > maxNameLen {
		return invalid("name", "name must be at most %d characters", maxNameLen)
	}
	return nil
}

func validatePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalid(field, "%s must be greater than 0", field)
	}
	return nil
}
