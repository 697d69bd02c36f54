// Package ofx turns OFX/QFX bank and card statements into expenses.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/aclindsa/ofxgo"
)

// DefaultCategory is assigned to every imported expense.
const DefaultCategory = "Other"

// ErrNoTransactions is returned when a statement parses but lists nothing.
var ErrNoTransactions = errors.New("no transactions in statement")

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	unclosedTag   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is one statement line converted to an expense.
type Entry struct {
	FITID   string
	Account string
	Expense model.NewExpense
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of a bare opening tag.
	return unclosedTag.ReplaceAllString(content, "$1>")
}

// ParseFile parses a statement. Debits become positive expenses and credits
// become negative ones (refunds).
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			account := string(stmt.BankAcctFrom.AcctID)
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(tx, account, false))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			account := string(stmt.CCAcctFrom.AcctID)
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, p.convertTransaction(tx, account, true))
			}
		}
	}

	slog.Info("parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	if len(entries) == 0 {
		return nil, ErrNoTransactions
	}
	return entries, nil
}

// Expenses strips the statement metadata from entries.
func Expenses(entries []Entry) []model.NewExpense {
	out := make([]model.NewExpense, len(entries))
	for i, e := range entries {
		out[i] = e.Expense
	}
	return out
}

func (p *Parser) convertTransaction(tx ofxgo.Transaction, account string, creditCard bool) Entry {
	amount, _ := tx.TrnAmt.Float64()

	return Entry{
		FITID:   string(tx.FiTID),
		Account: account,
		Expense: model.NewExpense{
			Date:          model.FormatDay(tx.DtPosted.Time),
			Description:   p.extractMerchantName(tx),
			Category:      DefaultCategory,
			Amount:        -amount,
			PaymentMethod: paymentMethod(tx.TrnType, creditCard),
		},
	}
}

// paymentMethod maps an OFX transaction type onto the UI's payment methods.
func paymentMethod(trnType fmt.Stringer, creditCard bool) string {
	if creditCard {
		return "Credit Card"
	}
	switch fmt.Sprintf("%v", trnType) {
	case "ATM", "CASH":
		return "Cash"
	case "POS", "DEBIT":
		return "Debit Card"
	default:
		return "Bank Transfer"
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
