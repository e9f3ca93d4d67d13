package dataprocessing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFixtureWorkbook builds a small workbook with a price sheet and
// a dividends sheet and returns its path.
func writeFixtureWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("stock_prices_latest")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"symbol", "date", "open", "high", "low", "close", "close_adjusted", "volume", "split_coefficient"},
		{"AAA", 44927, 10.0, 12.0, 9.0, 11.0, 11.0, 1000, 1.0},
		{"AAA", 44928, 11.0, 13.0, 10.0, 12.0, 12.0, 1500, 1.0},
		{"BBB", 44927, 5.0, 6.0, 4.5, 5.5, 5.5, 800, 1.0},
	}
	for i, row := range rows {
		addr, err := excelize.JoinCellName("A", i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("stock_prices_latest", addr, &row))
	}

	_, err = f.NewSheet("dividends")
	require.NoError(t, err)
	divRows := [][]interface{}{
		{"symbol", "date", "amount"},
		{"AAA", 44930, 0.25},
	}
	for i, row := range divRows {
		addr, err := excelize.JoinCellName("A", i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("dividends", addr, &row))
	}

	path := filepath.Join(t.TempDir(), "master.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbookRoundTrip(t *testing.T) {
	path := writeFixtureWorkbook(t)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	bars, err := LoadPriceBars(wb, "stock_prices_latest")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "AAA", bars[0].Symbol)
	assert.True(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Equal(bars[0].Date))
	assert.Equal(t, 11.0, bars[0].Close)
	assert.Equal(t, int64(1500), bars[1].Volume)

	dividends, err := LoadDividends(wb, "dividends")
	require.NoError(t, err)
	require.Len(t, dividends, 1)
	assert.Equal(t, 0.25, dividends[0].Amount)
}

func TestWorkbookMissingSheetYieldsEmpty(t *testing.T) {
	path := writeFixtureWorkbook(t)

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.Rows("earnings")
	require.NoError(t, err)
	assert.Empty(t, rows)

	earnings, err := LoadEarnings(wb, "earnings")
	require.NoError(t, err)
	assert.Empty(t, earnings)
}

func TestOpenWorkbookMissingFile(t *testing.T) {
	_, err := OpenWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.True(t, IsSourceUnavailable(err))
}
