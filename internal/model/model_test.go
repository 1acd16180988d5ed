package model

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"income", KindIncome},
		{"INCOME", KindIncome},
		{"Income", KindIncome},
		{"expense", KindExpense},
		{"withdrawal", KindExpense},
		{"", KindExpense},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.input); got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2024-03-05", "1999-12-31"}
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("ValidDate(%q) = false, want true", d)
		}
	}
	invalid := []string{"", "05/03/2024", "2024-3-5", "2024-02-31", "march"}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("ValidDate(%q) = true, want false", d)
		}
	}
}

func TestCategoryRegistryEnsure(t *testing.T) {
	var r CategoryRegistry

	if !r.Ensure(KindExpense, "  Groceries ") {
		t.Fatal("first Ensure should report a change")
	}
	if r.Ensure(KindExpense, "Groceries") {
		t.Error("duplicate Ensure should be a no-op")
	}
	if r.Ensure(KindExpense, "   ") {
		t.Error("blank Ensure should be a no-op")
	}
	if len(r.Expense) != 1 || r.Expense[0] != "Groceries" {
		t.Errorf("expense registry = %v, want [Groceries]", r.Expense)
	}

	r.Ensure(KindIncome, "Groceries")
	if len(r.Income) != 1 {
		t.Error("same name under the other kind is independent")
	}
}

func TestCategoryRegistryRemove(t *testing.T) {
	r := CategoryRegistry{Expense: []string{"Groceries", "Rent", "Fuel"}}

	if !r.Remove(KindExpense, "Rent") {
		t.Fatal("Remove of present name should report a change")
	}
	if r.Remove(KindExpense, "Rent") {
		t.Error("Remove of absent name should be a no-op")
	}
	want := []string{"Groceries", "Fuel"}
	for i, name := range want {
		if r.Expense[i] != name {
			t.Errorf("expense[%d] = %s, want %s (order preserved)", i, r.Expense[i], name)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	state := DefaultState(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	state.Transactions = []Transaction{
		{ID: "a", Kind: KindExpense, Date: "2024-03-05", Category: "Groceries", Amount: 45000},
	}
	state.Budgets.Expense["Groceries"] = 50000

	clone := state.Clone()
	clone.Transactions[0].Amount = 1
	clone.Budgets.Expense["Groceries"] = 1
	clone.Categories.Expense[0] = "Mutated"

	if state.Transactions[0].Amount != 45000 {
		t.Error("clone shares the transactions slice")
	}
	if state.Budgets.Expense["Groceries"] != 50000 {
		t.Error("clone shares the budgets map")
	}
	if state.Categories.Expense[0] == "Mutated" {
		t.Error("clone shares the category slices")
	}
}
