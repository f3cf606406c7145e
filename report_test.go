package csveda

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/csveda/domain/model"
	"github.com/nao1215/csveda/store"
)

func cleanSample(t *testing.T, content string) *model.Table {
	t.Helper()

	table, err := NewCleaner().WithLogger(discardLogger()).Clean(loadSample(t, content))
	require.NoError(t, err)
	return table
}

// assertLines checks that every pattern matches a whole output line.
func assertLines(t *testing.T, out string, patterns ...string) {
	t.Helper()

	for _, p := range patterns {
		assert.Regexp(t, regexp.MustCompile(`(?m)^`+p+`$`), out)
	}
}

func TestReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleanSample(t, adultSample))
	require.NoError(t, err)
	out := buf.String()

	t.Run("shape", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "--- Exploratory Data Analysis (EDA) ---")
		assert.Contains(t, out, "Table Shape: (3, 15)")
	})

	t.Run("info", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "RangeIndex: 3 entries, 0 to 2")
		assert.Contains(t, out, "Data columns (total 15 columns):")
		assertLines(t, out,
			` 0\s+age\s+3 non-null\s+INTEGER`,
			` 1\s+workclass\s+2 non-null\s+TEXT`,
			` 14\s+income\s+3 non-null\s+TEXT`,
		)
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "First 5 Rows of the Data:")
		assertLines(t, out,
			`\s+age\s+workclass\s+fnlwgt.*income`,
			`0\s+39\s+State-gov\s+77516.*<=50K`,
			`1\s+50\s+<NA>\s+83311.*>50K`,
		)
	})

	t.Run("missing counts", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "Missing Values Count:")
		assertLines(t, out,
			`age\s+0`,
			`workclass\s+1`,
			`native_country\s+1`,
			`income\s+0`,
		)
	})

	t.Run("income distribution", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "Income Distribution:")
		assertLines(t, out,
			`<=50K\s+66\.666667`,
			`>50K\s+33\.333333`,
		)
		assert.Contains(t, out, "\n33.33% of people earn more than $50K.\n")
	})

	t.Run("age statistics", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "Age Statistics:")
		assertLines(t, out,
			`count\s+3\.000000`,
			`mean\s+42\.333333`,
			`std\s+6\.658328`,
			`min\s+38\.000000`,
			`25%\s+38\.500000`,
			`50%\s+39\.000000`,
			`75%\s+44\.500000`,
			`max\s+50\.000000`,
			`Name: age, dtype: INTEGER`,
		)
	})

	t.Run("sections are ordered", func(t *testing.T) {
		t.Parallel()

		sections := []string{
			"Table Shape:", "Table Info:", "First 5 Rows", "Missing Values Count:",
			"Income Distribution:", "% of people", "Age Statistics:",
		}
		last := -1
		for _, s := range sections {
			i := bytes.Index([]byte(out), []byte(s))
			require.Greater(t, i, last, "section %q", s)
			last = i
		}
	})
}

func TestReporter_Report_DistributionSumsToHundred(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleanSample(t, adultSample)))

	matches := regexp.MustCompile(`(?m)^(<=50K|>50K)\s+([0-9.]+)$`).FindAllStringSubmatch(buf.String(), -1)
	require.Len(t, matches, 2)

	var sum float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[2], 64)
		require.NoError(t, err)
		sum += v
	}
	assert.InDelta(t, 100.0, sum, 1e-4)
}

func TestReporter_Report_MissingPositiveClass(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleanSample(t, adultSampleNoHighIncome))
	require.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Contains(t, err.Error(), "income")

	out := buf.String()
	assert.Contains(t, out, "Income Distribution:")
	assertLines(t, out, `<=50K\s+100\.000000`)
	assert.NotContains(t, out, "% of people")
	assert.NotContains(t, out, "Age Statistics:")
}

func TestReporter_Report_NaNDoesNotSkewStatistics(t *testing.T) {
	t.Parallel()

	t.Run("loaded NaN is missing", func(t *testing.T) {
		t.Parallel()

		table, err := NewLoader().LoadReader(context.Background(), strings.NewReader("10,a\n20,b\nNAN,c\n30,d\n"), "ages", FileTypeCSV)
		require.NoError(t, err)
		cleaned, err := NewCleaner().WithColumnNames([]string{"age", "name"}).Clean(table)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleaned))

		out := buf.String()
		assertLines(t, out,
			`age\s+1`,
			`count\s+3\.000000`,
			`mean\s+20\.000000`,
			`min\s+10\.000000`,
			`50%\s+20\.000000`,
			`Name: age, dtype: INTEGER`,
		)
		assert.NotContains(t, out, "NaN")
	})

	t.Run("NaN value keeps the column textual", func(t *testing.T) {
		t.Parallel()

		table := model.NewTable("ages", model.PositionalHeader(1), []model.Record{
			model.NewRecord([]string{"10"}),
			model.NewRecord([]string{"NAN"}),
			model.NewRecord([]string{"30"}),
		})
		cleaned, err := NewCleaner().WithColumnNames([]string{"age"}).Clean(table)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleaned))

		out := buf.String()
		assertLines(t, out,
			`count\s+3`,
			`unique\s+3`,
			`Name: age, dtype: TEXT`,
		)
		assert.NotContains(t, out, "mean")
	})
}

func TestReporter_Report_GenericColumns(t *testing.T) {
	t.Parallel()

	table := model.NewTable("short", model.PositionalHeader(2), []model.Record{
		model.NewRecord([]string{"1", "a"}),
		model.NewRecord([]string{"2", "?"}),
	})
	cleaned, err := NewCleaner().WithLogger(discardLogger()).Clean(table)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleaned))

	out := buf.String()
	assert.Contains(t, out, "Table Shape: (2, 2)")
	assertLines(t, out, `col_1\s+1`)
	assert.NotContains(t, out, "Distribution:")
	assert.NotContains(t, out, "Statistics:")
}

func TestReporter_Report_Options(t *testing.T) {
	t.Parallel()

	opts := DefaultReportOptions()
	opts.PreviewRows = 1
	opts.NumericColumn = "workclass"

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, opts).Report(context.Background(), cleanSample(t, adultSample)))
	out := buf.String()

	t.Run("preview rows", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "First 1 Rows of the Data:")
		assertLines(t, out, `0\s+39\s+State-gov.*`)
		assert.NotRegexp(t, regexp.MustCompile(`(?m)^1\s+50\s+`), out)
	})

	t.Run("categorical summary", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, out, "Workclass Statistics:")
		assertLines(t, out,
			`count\s+2`,
			`unique\s+2`,
			`top\s+State-gov`,
			`freq\s+1`,
			`Name: workclass, dtype: TEXT`,
		)
	})
}

func TestReporter_Report_ReservedColumnName(t *testing.T) {
	t.Parallel()

	table := model.NewTable("t", model.PositionalHeader(2), []model.Record{
		model.NewRecord([]string{"1", ">50K"}),
	})
	cleaned, err := NewCleaner().WithColumnNames([]string{"oid", "income"}).Clean(table)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = NewReporter(&buf, DefaultReportOptions()).Report(context.Background(), cleaned)
	require.ErrorIs(t, err, store.ErrReservedColumnName)
	assert.Empty(t, buf.String())
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Income", titleCase("income"))
	assert.Equal(t, "", titleCase(""))
}
