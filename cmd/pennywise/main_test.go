package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/pennywise/internal/chart"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/pattern"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv is a scratch directory with a config file pointing at its own database.
type cliEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("database:\n  path: %s\nlogging:\n  level: error\n  file: %s\n",
		filepath.Join(dir, "expenses.db"), filepath.Join(dir, "pennywise.log"))
	require.NoError(t, os.WriteFile(cfg, []byte(content), 0600))

	t.Cleanup(viper.Reset)
	return &cliEnv{t: t, dir: dir, config: cfg}
}

// appendConfig adds YAML to the config file.
func (e *cliEnv) appendConfig(yaml string) {
	e.t.Helper()
	f, err := os.OpenFile(e.config, os.O_APPEND|os.O_WRONLY, 0600)
	require.NoError(e.t, err)
	_, err = f.WriteString(yaml)
	require.NoError(e.t, err)
	require.NoError(e.t, f.Close())
}

// run executes the root command with args and stdin and returns its output.
func (e *cliEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	viper.Reset()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.config}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"ui", "add", "list", "delete", "categories", "report", "export", "import-ofx", "auth", "about", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("db"))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		defValue string
		args     []string
	}{
		{name: "add category", args: []string{"add"}, flag: "category", defValue: "Other"},
		{name: "add payment", args: []string{"add"}, flag: "payment", defValue: "Cash"},
		{name: "add recurring", args: []string{"add"}, flag: "recurring", defValue: "false"},
		{name: "list timeframe", args: []string{"list"}, flag: "timeframe", defValue: ""},
		{name: "delete yes", args: []string{"delete"}, flag: "yes", defValue: "false"},
		{name: "report width", args: []string{"report"}, flag: "width", defValue: "60"},
		{name: "export sheets", args: []string{"export"}, flag: "sheets", defValue: "false"},
		{name: "import dry run", args: []string{"import-ofx"}, flag: "dry-run", defValue: "false"},
		{name: "import category", args: []string{"import-ofx"}, flag: "category", defValue: "Other"},
		{name: "auth listen", args: []string{"auth", "sheets"}, flag: "listen", defValue: "localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := newRootCmd().Find(tt.args)
			require.NoError(t, err)

			flag := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag, "flag %s should exist", tt.flag)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestAddAndList(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("add", "Lunch", "12,50", "--category", "Food", "--date", "2024-03-01", "--payment", "Debit Card")
	assert.Contains(t, out, "Added expense #1")

	env.mustRun("add", "Rent", "1200", "-c", "Rent", "-d", "2024-03-02", "--recurring")

	out = env.mustRun("list")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "Debit Card")
	assert.Less(t, strings.Index(out, "Rent"), strings.Index(out, "Lunch"), "newest first")

	out = env.mustRun("list", "--timeframe", "today")
	assert.Contains(t, out, "No expenses found.")
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		args    []string
	}{
		{name: "bad amount", args: []string{"add", "Lunch", "twelve"}, message: "Amount must be a number"},
		{name: "bad date", args: []string{"add", "Lunch", "12", "--date", "03/01/2024"}, message: "Date must be YYYY-MM-DD"},
		{name: "blank description", args: []string{"add", "  ", "12"}, message: "Please fill in all fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)

			_, err := env.run("", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.message, common.UserMessage(err))

			assert.Contains(t, env.mustRun("list"), "No expenses found.")
		})
	}
}

func TestList_InvalidTimeframe(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("", "list", "--timeframe", "fortnight")
	assert.ErrorIs(t, err, model.ErrInvalidTimeframe)
}

func TestDelete(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Lunch", "12.50", "--category", "Food")

	out, err := env.run("n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")
	assert.Contains(t, env.mustRun("list"), "Lunch")

	out, err = env.run("y\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted expense #1")
	assert.Contains(t, env.mustRun("list"), "No expenses found.")

	out, err = env.run("", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No expense with id 1, nothing deleted")

	_, err = env.run("", "delete", "abc")
	assert.Error(t, err)
}

func TestDelete_ShowsRecurring(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Rent", "1200", "--category", "Rent", "--recurring")

	out, err := env.run("n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Recurring: Yes")
	assert.Contains(t, out, "Nothing deleted")
}

func TestList_StorageFault(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("add", "Lunch", "12.50", "--category", "Food")

	// A table without the expected columns makes every read fail.
	db, err := sql.Open("sqlite3", filepath.Join(env.dir, "expenses.db"))
	require.NoError(t, err)
	_, err = db.Exec("DROP TABLE expenses")
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE expenses (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = env.run("", "list")
	require.Error(t, err)
	assert.Equal(t, "Something went wrong: failed to load expenses", common.UserMessage(err))
}

func TestCategories(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("categories", "list")
	for _, name := range model.DefaultCategories {
		assert.Contains(t, out, name)
	}

	env.mustRun("categories", "add", "Travel")
	assert.Contains(t, env.mustRun("categories", "list"), "Travel")

	_, err := env.run("", "categories", "add", "Travel")
	require.Error(t, err)
	assert.Equal(t, `Category "Travel" already exists`, common.UserMessage(err))

	env.mustRun("add", "Taxi", "20", "--category", "Travel")
	_, err = env.run("", "categories", "delete", "Travel")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCategoryInUse)
	assert.Equal(t, `Cannot delete "Travel": it is used by 1 expense(s)`, common.UserMessage(err))

	env.mustRun("delete", "1", "--yes")
	env.mustRun("categories", "delete", "Travel")
	assert.NotContains(t, env.mustRun("categories", "list"), "Travel")
}

func TestReport(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("report", "--timeframe", "all")
	assert.Contains(t, out, "Total Expenses: 0.00")
	assert.Contains(t, out, "No expenses to display")

	env.mustRun("add", "Lunch", "10", "--category", "Food", "--date", "2024-03-01")
	env.mustRun("add", "Dinner", "20", "--category", "Food", "--date", "2024-03-02")
	env.mustRun("add", "Bus", "10", "--category", "Transport", "--date", "2024-03-02")

	out = env.mustRun("report", "--timeframe", "all")
	assert.Contains(t, out, "Expense Report")
	assert.Contains(t, out, "Summary (All)")
	assert.Contains(t, out, "Total Expenses: 40.00")
	assert.Contains(t, out, "Number of Expenses: 3")
	assert.Contains(t, out, "Average Expense: 13.33")
	assert.Contains(t, out, chart.Title)
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
}

func TestExport(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "out", "expenses.csv")

	_, err := env.run("", "export", path)
	require.Error(t, err)
	assert.Equal(t, "No expenses to export", common.UserMessage(err))

	env.mustRun("add", "Lunch", "12.50", "--category", "Food", "--date", "2024-03-01")
	out := env.mustRun("export", path)
	assert.Contains(t, out, "Exported 1 expense(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Description,Category,Amount,Payment Method,Recurring")
	assert.Contains(t, string(data), "2024-03-01,Lunch,Food,12.5,Cash,No")
}

func TestExport_SheetsNotConfigured(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}
	env := newCLIEnv(t)

	_, err := env.run("", "export", "--sheets")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

const sampleStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>Corner Bakery
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240128120000[0:GMT]
<TRNAMT>19.99
<FITID>2024012801
<NAME>Hardware Store Return
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>
`

func TestImportOFX(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "checking.ofx")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatement), 0600))

	out := env.mustRun("import-ofx", "--dry-run", path)
	assert.Contains(t, out, "Dry run: 3 expense(s) would be imported")
	assert.Contains(t, env.mustRun("list"), "No expenses found.")

	// The same statement twice imports each line once.
	out = env.mustRun("import-ofx", "--category", "Imported", path, path)
	assert.Contains(t, out, "Import Complete")
	assert.Contains(t, out, "Added: 3")
	assert.Contains(t, out, "Skipped: 3")

	out = env.mustRun("list")
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "125.00")
	assert.Contains(t, out, "-19.99")
	assert.Contains(t, env.mustRun("categories", "list"), "Imported")
}

func TestImportOFX_Rules(t *testing.T) {
	env := newCLIEnv(t)
	env.appendConfig(`import:
  rules:
    - name: groceries
      pattern: whole foods
      category: Food
    - pattern: "^corner"
      regex: true
      category: Treats
      priority: 5
`)
	path := filepath.Join(env.dir, "checking.ofx")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatement), 0600))

	env.mustRun("import-ofx", path)

	out := env.mustRun("categories", "list")
	assert.Contains(t, out, "Treats")

	out = env.mustRun("report", "--timeframe", "all")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "Treats")
	assert.Contains(t, out, "Other", "unmatched lines keep the default category")
}

func TestImportOFX_InvalidRule(t *testing.T) {
	env := newCLIEnv(t)
	env.appendConfig("import:\n  rules:\n    - pattern: \"([\"\n      regex: true\n      category: Food\n")
	path := filepath.Join(env.dir, "checking.ofx")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatement), 0600))

	_, err := env.run("", "import-ofx", "--dry-run", path)
	assert.ErrorIs(t, err, pattern.ErrInvalidRule)
}

func TestImportOFX_NoFiles(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("", "import-ofx", filepath.Join(env.dir, "missing-*.ofx"))
	require.Error(t, err)
	assert.Equal(t, "No files found to import", common.UserMessage(err))
}

func TestVersionAndAbout(t *testing.T) {
	env := newCLIEnv(t)

	assert.Contains(t, env.mustRun("version"), "pennywise dev")
	assert.Contains(t, env.mustRun("about"), "A personal expense tracker.")
}
