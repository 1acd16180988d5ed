package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svanhoutte/stuiver/internal/common"
	"github.com/svanhoutte/stuiver/internal/model"
)

var importNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestParseState_Wrapper(t *testing.T) {
	payload := []byte(`{
		"version": 1,
		"exportedAt": "2024-03-15T12:00:00Z",
		"data": {
			"categories": {"income": ["Salary"], "expense": ["Groceries"]},
			"selectedMonth": "2024-03",
			"budgets": {"expense": {"Groceries": 50000}},
			"transactions": [
				{"id": "a", "type": "income", "date": "2024-03-01", "category": "Salary", "amountCents": 250000}
			]
		}
	}`)

	state, err := ParseState(payload, importNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", state.SelectedMonth)
	assert.Equal(t, int64(50000), state.Budgets.Expense["Groceries"])
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, model.KindIncome, state.Transactions[0].Kind)
	assert.Equal(t, int64(250000), state.Transactions[0].Amount)
}

func TestParseState_RawState(t *testing.T) {
	payload := []byte(`{
		"categories": {"income": [], "expense": ["Groceries"]},
		"transactions": [
			{"type": "expense", "date": "2024-03-05", "category": "Groceries", "amountCents": 45000}
		]
	}`)

	state, err := ParseState(payload, importNow)
	require.NoError(t, err)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, int64(45000), state.Transactions[0].Amount)
}

func TestParseState_LegacyPayload(t *testing.T) {
	payload := []byte(`{
		"tx": [
			{"type": "expense", "date": "2024-03-05", "category": "Groceries", "amount": 450.5}
		],
		"cats": {"income": ["Salary"], "expense": ["Groceries"]}
	}`)

	state, err := ParseState(payload, importNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salary"}, state.Categories.Income)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, int64(45050), state.Transactions[0].Amount, "decimal euro amount converts to cents")
}

func TestParseState_AmountShapes(t *testing.T) {
	tests := []struct {
		name   string
		txJSON string
		want   int64
	}{
		{"amountCents integer", `{"date": "2024-03-01", "amountCents": 1250}`, 1250},
		{"amount number", `{"date": "2024-03-01", "amount": 12.5}`, 1250},
		{"amount string", `{"date": "2024-03-01", "amount": "12,50"}`, 1250},
		{"amount localized string", `{"date": "2024-03-01", "amount": "1.234,56"}`, 123456},
		{"amountCents wins over amount", `{"date": "2024-03-01", "amountCents": 999, "amount": 12.5}`, 999},
		{"garbage amount parses to zero", `{"date": "2024-03-01", "amount": "n/a"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte(`{"categories": {"income": [], "expense": []}, "transactions": [` + tt.txJSON + `]}`)
			state, err := ParseState(payload, importNow)
			require.NoError(t, err)
			require.Len(t, state.Transactions, 1)
			assert.Equal(t, tt.want, state.Transactions[0].Amount)
		})
	}
}

func TestParseState_MissingDateDefaultsToToday(t *testing.T) {
	payload := []byte(`{"categories": {"income": [], "expense": []}, "transactions": [{"amountCents": 100}]}`)
	state, err := ParseState(payload, importNow)
	require.NoError(t, err)
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, "2024-03-15", state.Transactions[0].Date)
}

func TestParseState_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", `][`},
		{"not an object", `[1, 2, 3]`},
		{"missing categories", `{"transactions": []}`},
		{"categories not an object", `{"categories": "nope", "transactions": []}`},
		{"missing transactions", `{"categories": {"income": [], "expense": []}}`},
		{"transactions not a sequence", `{"categories": {"income": [], "expense": []}, "transactions": {"a": 1}}`},
		{"legacy tx not a sequence", `{"tx": 42, "cats": {"income": [], "expense": []}}`},
		{"wrapped garbage", `{"version": 1, "data": {"transactions": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseState([]byte(tt.payload), importNow)
			require.ErrorIs(t, err, common.ErrInvalidImport)
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	original := &model.LedgerState{
		SchemaVersion: model.SchemaVersion,
		SelectedMonth: "2024-03",
		Categories:    model.CategoryRegistry{Income: []string{"Salary"}, Expense: []string{"Groceries"}},
		Budgets:       model.BudgetMap{Expense: map[string]int64{"Groceries": 50000}},
		Transactions: []model.Transaction{
			{ID: "a", Kind: model.KindIncome, Date: "2024-03-01", Category: "Salary", Amount: 250000, Note: "march"},
			{ID: "b", Kind: model.KindExpense, Date: "2024-03-05", Category: "Groceries", Amount: 45000},
		},
	}

	raw, err := Export(original, importNow)
	require.NoError(t, err)

	parsed, err := ParseState(raw, importNow)
	require.NoError(t, err)
	assert.Equal(t, original.SelectedMonth, parsed.SelectedMonth)
	assert.Equal(t, original.Categories, parsed.Categories)
	assert.Equal(t, original.Budgets, parsed.Budgets)
	assert.Equal(t, original.Transactions, parsed.Transactions)
}
