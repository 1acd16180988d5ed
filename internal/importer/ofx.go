package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/svanhoutte/stuiver/internal/model"
)

// OFXCategory is assigned to imported statement entries that carry no
// recognizable type hint; the user recategorizes afterwards.
const OFXCategory = "Bank import"

// ofxCategories maps OFX transaction types to starter categories.
var ofxCategories = map[string]struct {
	kind     model.Kind
	category string
}{
	"INT": {model.KindIncome, "Interest"},
	"FEE": {model.KindExpense, "Bank fees"},
	"ATM": {model.KindExpense, "Cash"},
}

// OFXParser reads OFX/QFX statements exported from a bank.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// preprocess fixes common formatting issues in OFX files.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (should be INFO, WARN, or ERROR).
	// SGML-style exports leave the tag unclosed, so both forms appear.
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	bareSeverityRegex := regexp.MustCompile(`(?im)^(\s*<SEVERITY>)(Info|Warn|Error)\s*$`)
	content = bareSeverityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing angle bracket on a
	// bare tag at end of line
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads an OFX/QFX document and returns ledger transactions.
// Amount signs decide direction: debits become expenses, credits
// income; amounts are stored as absolute minor units.
func (p *OFXParser) Parse(r io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTx))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convert(ofxTx))
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convert maps one OFX statement entry onto the ledger model.
func (p *OFXParser) convert(ofxTx ofxgo.Transaction) model.Transaction {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	kind := model.KindExpense
	if amount.Sign() > 0 {
		kind = model.KindIncome
	}

	category := OFXCategory
	if hint, ok := ofxCategories[fmt.Sprintf("%v", ofxTx.TrnType)]; ok {
		kind = hint.kind
		category = hint.category
	}

	note := strings.TrimSpace(string(ofxTx.Name))
	if memo := strings.TrimSpace(string(ofxTx.Memo)); memo != "" && note == "" {
		note = memo
	}

	return model.Transaction{
		ID:       string(ofxTx.FiTID),
		Kind:     kind,
		Date:     ofxTx.DtPosted.Time.Format(model.DateLayout),
		Category: category,
		Amount:   amount.Abs().Shift(2).IntPart(),
		Note:     note,
	}
}
