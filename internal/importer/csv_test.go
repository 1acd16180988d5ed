package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svanhoutte/stuiver/internal/common"
	"github.com/svanhoutte/stuiver/internal/model"
)

func TestParseCSV_Delimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"comma", "date,type,category,amount,note\n2024-03-05,expense,Groceries,\"45,00\",weekly\n"},
		{"semicolon", "date;type;category;amount;note\n2024-03-05;expense;Groceries;45,00;weekly\n"},
		{"tab", "date\ttype\tcategory\tamount\tnote\n2024-03-05\texpense\tGroceries\t45,00\tweekly\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := ParseCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, transactions, 1)
			tx := transactions[0]
			assert.Equal(t, model.KindExpense, tx.Kind)
			assert.Equal(t, "2024-03-05", tx.Date)
			assert.Equal(t, "Groceries", tx.Category)
			assert.Equal(t, int64(4500), tx.Amount)
			assert.Equal(t, "weekly", tx.Note)
		})
	}
}

func TestParseCSV_ColumnOrderFollowsHeader(t *testing.T) {
	input := "amount;date;note;category;type\n45,00;2024-03-05;weekly;Groceries;expense\n"
	transactions, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Groceries", transactions[0].Category)
	assert.Equal(t, int64(4500), transactions[0].Amount)
}

func TestParseCSV_DateFormats(t *testing.T) {
	input := strings.Join([]string{
		"date;type;category;amount;note",
		"05/03/2024;expense;Groceries;10,00;slash form",
		"2024-03-06;expense;Groceries;20,00;iso form",
		"March 7;expense;Groceries;30,00;unparseable",
		"",
	}, "\n")

	transactions, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2, "row with unparseable date is skipped")
	assert.Equal(t, "2024-03-05", transactions[0].Date, "DD/MM/YYYY normalizes")
	assert.Equal(t, "2024-03-06", transactions[1].Date)
}

func TestParseCSV_SkipsShortRows(t *testing.T) {
	input := strings.Join([]string{
		"date;type;category;amount;note",
		"2024-03-05;expense;Groceries;45,00;ok",
		"2024-03-06;expense",
		"",
		"2024-03-07;income;Salary;2500,00",
		"",
	}, "\n")

	transactions, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, model.KindIncome, transactions[1].Kind)
	assert.Equal(t, int64(250000), transactions[1].Amount)
	assert.Empty(t, transactions[1].Note, "missing trailing note is tolerated")
}

func TestParseCSV_KindMatching(t *testing.T) {
	input := strings.Join([]string{
		"date;type;category;amount",
		"2024-03-05;INCOME;Salary;100,00",
		"2024-03-05;Income;Salary;100,00",
		"2024-03-05;withdrawal;Misc;100,00",
		"2024-03-05;;Misc;100,00",
		"",
	}, "\n")

	transactions, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, transactions, 4)
	assert.Equal(t, model.KindIncome, transactions[0].Kind, "income matches case-insensitively")
	assert.Equal(t, model.KindIncome, transactions[1].Kind)
	assert.Equal(t, model.KindExpense, transactions[2].Kind, "anything else is an expense")
	assert.Equal(t, model.KindExpense, transactions[3].Kind)
}

func TestParseCSV_MissingRequiredHeader(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("type;category;note\nexpense;Groceries;x\n"))
	require.ErrorIs(t, err, common.ErrInvalidImport)

	_, err = ParseCSV(strings.NewReader("date;type;category\n2024-03-05;expense;Groceries\n"))
	require.ErrorIs(t, err, common.ErrInvalidImport)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.ErrorIs(t, err, common.ErrInvalidImport, "empty input has no usable header")
}
