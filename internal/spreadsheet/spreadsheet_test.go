package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAssetsCSVMapsByHeaderName(t *testing.T) {
	// Columns deliberately reordered and partially missing.
	file := strings.Join([]string{
		"description,barcode,asset_code,purchase_price",
		"HP Laptop,BC-001,AS000001,1200",
		",,,",
		"Office Desk,BC-002,,350",
	}, "\n")

	records, err := ReadAssets(strings.NewReader(file), FormatCSV)
	require.NoError(t, err)
	require.Len(t, records, 2, "the blank row is skipped")

	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, "HP Laptop", records[0].Description)
	assert.Equal(t, "AS000001", records[0].AssetCode)
	assert.Equal(t, "1200", records[0].PurchasePrice)
	assert.Empty(t, records[0].Supplier, "absent columns read as empty")

	assert.Equal(t, 4, records[1].Line, "line numbers count skipped rows")
	assert.Empty(t, records[1].AssetCode)
}

func TestReadAssetsRequiresDescriptionColumn(t *testing.T) {
	file := "asset_code,barcode\nAS000001,BC-001\n"

	_, err := ReadAssets(strings.NewReader(file), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description column")
}

func TestReadAssetsUnsupportedFormat(t *testing.T) {
	_, err := ReadAssets(strings.NewReader(""), "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "pdf"`)
}

func TestWriteAssetsCSVRoundTrips(t *testing.T) {
	records := []AssetRecord{
		{
			AssetCode:     "AS000007",
			Barcode:       "BC-007",
			Description:   "Projector",
			MajorCategory: "ICT",
			PurchasePrice: "980.50",
			IsDisposed:    "false",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssetsCSV(&buf, records, nil))

	parsed, err := ReadAssets(&buf, FormatCSV)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "AS000007", parsed[0].AssetCode)
	assert.Equal(t, "Projector", parsed[0].Description)
	assert.Equal(t, "ICT", parsed[0].MajorCategory)
}

func TestWriteAssetsXLSXRoundTrips(t *testing.T) {
	records := []AssetRecord{
		{AssetCode: "AS000001", Barcode: "BC-001", Description: "HP Laptop"},
		{AssetCode: "AS000002", Barcode: "BC-002", Description: "Office Desk"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssetsXLSX(&buf, records, nil))

	parsed, err := ReadAssets(&buf, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "AS000001", parsed[0].AssetCode)
	assert.Equal(t, "Office Desk", parsed[1].Description)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields("")
	require.NoError(t, err)
	assert.Nil(t, fields, "empty input selects every column")

	fields, err = ParseFields(" Asset_Code , description,asset_code, ")
	require.NoError(t, err)
	assert.Equal(t, []string{"asset_code", "description"}, fields, "normalized, deduplicated, caller's order")

	_, err = ParseFields("asset_code,shoe_size")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "shoe_size"`)

	_, err = ParseFields(" , ,")
	require.Error(t, err)
}

func TestWriteAssetsCSVWithFieldSubset(t *testing.T) {
	records := []AssetRecord{
		{AssetCode: "AS000007", Description: "Projector", Supplier: "Artel Hardware"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssetsCSV(&buf, records, []string{"description", "supplier"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "description,supplier", lines[0])
	assert.Equal(t, "Projector,Artel Hardware", lines[1])
}

func TestWriteAssetsXLSXWithFieldSubset(t *testing.T) {
	records := []AssetRecord{
		{AssetCode: "AS000001", Description: "HP Laptop", Department: "Finance"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAssetsXLSX(&buf, records, []string{"asset_code", "department"}))

	parsed, err := ReadAssets(&buf, FormatXLSX)
	require.Error(t, err, "a subset without description does not re-import")

	buf.Reset()
	require.NoError(t, WriteAssetsXLSX(&buf, records, []string{"description", "department"}))
	parsed, err = ReadAssets(&buf, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "HP Laptop", parsed[0].Description)
	assert.Equal(t, "Finance", parsed[0].Department)
	assert.Empty(t, parsed[0].AssetCode, "omitted columns are not written")
}
