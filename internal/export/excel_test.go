package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/signworks/estimator/internal/estimate"
)

func sampleItems() []estimate.LineItem {
	return []estimate.LineItem{
		{Building: "Main", Item: "SignA", Material: "Aluminum", Dimensions: "10 x 10", Quantity: 3, UnitPrice: 100, Total: 300},
		{Building: "Main", Item: "Group: Group1", Material: "Various", Quantity: 4, UnitPrice: 100, Total: 400},
		{Building: "ALL", Item: "Installation", Quantity: 1, UnitPrice: 70, Total: 70},
	}
}

func TestEstimateWorkbookLayout(t *testing.T) {
	f, err := EstimateWorkbook("Demo Project", sampleItems())
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Estimate"}, f.GetSheetList())

	name, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	require.Equal(t, "Demo Project", name)

	header, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	require.Equal(t, "Building", header)

	item, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	require.Equal(t, "SignA", item)

	total, err := f.GetCellValue(sheetName, "G4")
	require.NoError(t, err)
	require.Equal(t, "300", total)

	// Grand total lands one blank row below the data.
	label, err := f.GetCellValue(sheetName, "F8")
	require.NoError(t, err)
	require.Equal(t, "Grand Total", label)

	grand, err := f.GetCellValue(sheetName, "G8")
	require.NoError(t, err)
	require.Equal(t, "770", grand)
}

func TestWriteEstimateProducesReadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEstimate(&buf, "Demo Project", sampleItems()))
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	item, err := f.GetCellValue(sheetName, "B6")
	require.NoError(t, err)
	require.Equal(t, "Installation", item)
}

func TestEstimateWorkbookEmptyEstimate(t *testing.T) {
	f, err := EstimateWorkbook("Empty", nil)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue(sheetName, "F5")
	require.NoError(t, err)
	require.Equal(t, "Grand Total", label)

	grand, err := f.GetCellValue(sheetName, "G5")
	require.NoError(t, err)
	require.Equal(t, "0", grand)
}
