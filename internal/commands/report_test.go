package commands_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/acqtools/paymentproc/internal/config"
	"github.com/acqtools/paymentproc/internal/model"
	"github.com/acqtools/paymentproc/internal/runlog"
)

// setupProject lays out data/ with the sample export and legacy config in a
// fresh directory and makes it the working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	export, err := os.ReadFile("../../testdata/payment_data.txt")
	require.NoError(t, err)
	legacy, err := os.ReadFile("../../testdata/payment_processor_config.txt")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "payment_data.txt"), export, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.LegacyFile), legacy, 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestDetail_DefaultLayout(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runPaymentproc(t, "detail")
	require.NoError(t, err)
	assert.Contains(t, out, "Done! Wrote 6 rows (4 orders, 6 payments)")

	lines := readLines(t, filepath.Join(dir, "output", "payments.txt"))
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "RECORD #(ORDER)\tFY\tTITLE\tFUND\tPaid Date"))
	assert.True(t, strings.HasPrefix(lines[1], "o10002066\tFY2009-2010\t"))
	assert.True(t, strings.HasPrefix(lines[2], "o10002066\tFY2010-2011\t"))
	assert.True(t, strings.HasPrefix(lines[3], "o10003001\tFY2011-2012\tJournal of things.\t"))
}

func TestSummary_DefaultLayout(t *testing.T) {
	dir := setupProject(t)

	out, _, err := runPaymentproc(t, "summary", "--years", "2009,2010,2011")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 rows")

	assert.Equal(t, []string{
		"RECORD #(ORDER)\tTITLE\tFUND\tFY2009-2010\tFY2010-2011\tFY2011-2012",
		"o10002066\tAfrica research bulletin.\tesoci\t1591.57\t1662.09\t0.0",
		"o10003001\tJournal of things.\tehum\t0.0\t0.0\t250.0",
		"o10004112\tAnnual review.\tesci\t200.0\t3000.0\t0.0",
		"o10005000\tNo payments yet.\tesoci\t0.0\t0.0\t0.0",
	}, readLines(t, filepath.Join(dir, "output", "payment_summary.txt")))
}

func TestSummary_RequiresYears(t *testing.T) {
	setupProject(t)
	_, _, err := runPaymentproc(t, "summary")
	require.Error(t, err)
}

func TestSummary_BadYears(t *testing.T) {
	dir := setupProject(t)

	for _, years := range []string{"09,10", "2009,,2010", "2009,2009"} {
		_, _, err := runPaymentproc(t, "summary", "--years", years)
		var pe *model.ParseError
		require.True(t, errors.As(err, &pe), "years %q: want ParseError, got %v", years, err)
	}

	_, err := os.Stat(filepath.Join(dir, "output", "payment_summary.txt"))
	assert.True(t, os.IsNotExist(err), "no report should be written")
}

func TestDetail_XLSX(t *testing.T) {
	dir := setupProject(t)

	_, _, err := runPaymentproc(t, "detail", "--format", "xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "output", "payments.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "RECORD #(ORDER)", rows[0][0])
	assert.Equal(t, "FY2009-2010", rows[1][1])
}

func TestDetail_FlagsOverrideConfig(t *testing.T) {
	setupProject(t)
	other := t.TempDir()
	input := filepath.Join(other, "export.txt")
	data, err := os.ReadFile(filepath.Join("data", "payment_data.txt"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, data, 0o644))

	_, _, err = runPaymentproc(t, "detail", "--input", input, "--output-dir", filepath.Join(other, "reports"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(other, "reports", "payments.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join("output", "payments.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestDetail_YAMLConfigTakesPrecedence(t *testing.T) {
	dir := setupProject(t)
	cfg := config.Default()
	cfg.Fiscal.BeginMonth = 1
	require.NoError(t, config.Save(filepath.Join(dir, config.DefaultFile), cfg))

	_, _, err := runPaymentproc(t, "detail")
	require.NoError(t, err)

	// Calendar-year fiscal years: 06-02-10 falls in FY2010.
	lines := readLines(t, filepath.Join(dir, "output", "payments.txt"))
	assert.True(t, strings.HasPrefix(lines[1], "o10002066\tFY2010-2011\t"), lines[1])
}

func TestDetail_ExplicitConfigFlag(t *testing.T) {
	dir := setupProject(t)
	path := filepath.Join(t.TempDir(), "jan.txt")
	require.NoError(t, os.WriteFile(path, []byte("fy_begin_month = 1\nfy_begin_day = 1\n"), 0o644))

	_, _, err := runPaymentproc(t, "--config", path, "detail")
	require.NoError(t, err)

	lines := readLines(t, filepath.Join(dir, "output", "payments.txt"))
	assert.True(t, strings.HasPrefix(lines[1], "o10002066\tFY2010-2011\t"), lines[1])
}

func TestDetail_MissingConfig(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, config.LegacyFile)))

	_, _, err := runPaymentproc(t, "detail")
	var ce *model.ConfigError
	require.True(t, errors.As(err, &ce), "want ConfigError, got %v", err)
}

func TestDetail_MalformedExport(t *testing.T) {
	dir := setupProject(t)
	bad := "RECORD #(ORDER)*TITLE*FUND*Paid Date*Invoice Date*Invoice Num*Amount Paid*Voucher Num*Copies*Sub From*Sub To*Note\n" +
		"o1*t*f*01-01-10*x\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "payment_data.txt"), []byte(bad), 0o644))

	_, _, err := runPaymentproc(t, "detail")
	var me *model.MalformedRecordError
	require.True(t, errors.As(err, &me), "want MalformedRecordError, got %v", err)
	assert.Equal(t, 2, me.Line)

	_, statErr := os.Stat(filepath.Join(dir, "output", "payments.txt"))
	assert.True(t, os.IsNotExist(statErr), "no report should be written")
}

func TestReports_RecordRunLog(t *testing.T) {
	dir := setupProject(t)

	_, _, err := runPaymentproc(t, "detail")
	require.NoError(t, err)
	_, _, err = runPaymentproc(t, "summary", "--years", "2010")
	require.NoError(t, err)

	entries, err := runlog.Read(filepath.Join(dir, "output"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "detail", entries[0].Mode)
	assert.Equal(t, "summary", entries[1].Mode)
	assert.Equal(t, 4, entries[1].Orders)
	assert.Equal(t, 6, entries[1].Payments)
	assert.Equal(t, filepath.Join("output", "payment_summary.txt"), entries[1].Output)

	out, _, err := runPaymentproc(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "detail")
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, entries[0].RunID[:8])

	out, _, err = runPaymentproc(t, "history", "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, entries[0].RunID[:8])
	assert.Contains(t, out, entries[1].RunID[:8])
}

func TestHistory_Empty(t *testing.T) {
	out, _, err := runPaymentproc(t, "history", "--output-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}
