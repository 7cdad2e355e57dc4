package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	got, err := ParseAmount("value", " 12,50 ")
	if err != nil {
		t.Fatalf("ParseAmount() unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("ParseAmount() = %s, want 12.5", got)
	}

	_, err = ParseAmount("value", "")
	if err == nil || err.Error() != "value is required" {
		t.Fatalf("ParseAmount(empty) error = %v, want %q", err, "value is required")
	}
	if _, err := ParseAmount("value", "ten"); !errors.Is(err, ErrValidation) {
		t.Fatalf("ParseAmount(ten) error = %v, want ErrValidation", err)
	}
}

func TestExpenseInputValidate(t *testing.T) {
	t.Parallel()

	ok := ExpenseInput{Name: "coffee", Value: decimal.NewFromFloat(4.5), Date: day(2024, time.June, 20)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	zero := ok
	zero.Value = decimal.Zero
	err := zero.Validate()
	if err == nil || err.Error() != "value must be greater than 0" {
		t.Fatalf("Validate(zero) error = %v, want %q", err, "value must be greater than 0")
	}

	blank := ok
	blank.Name = "   "
	if err := blank.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate(blank name) error = %v, want ErrValidation", err)
	}
}

func TestBillInputValidateDay(t *testing.T) {
	t.Parallel()

	in := BillInput{Name: "rent", Value: decimal.NewFromInt(400), Day: 32, Type: BillManual}
	err := in.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "day" {
		t.Fatalf("Validate(day 32) error = %v, want day validation error", err)
	}
	in.Day = 31
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate(day 31) unexpected error: %v", err)
	}
}

func TestParseTypesDefault(t *testing.T) {
	t.Parallel()

	if got, err := ParseIncomeType(""); err != nil || got != IncomeIncome {
		t.Fatalf("ParseIncomeType(\"\") = %q, %v", got, err)
	}
	if got, err := ParseBillType("AUTOMATIC"); err != nil || got != BillAutomatic {
		t.Fatalf("ParseBillType(AUTOMATIC) = %q, %v", got, err)
	}
	if _, err := ParseBillType("weekly"); !errors.Is(err, ErrValidation) {
		t.Fatalf("ParseBillType(weekly) error = %v, want ErrValidation", err)
	}
}
