package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// importRow is a spreadsheet row naming the fixture's seeded references. The
// asset_code is left blank, so applying it unchanged creates a new asset.
func (f *assetServiceFixture) importRow(line int) spreadsheet.AssetRecord {
	return spreadsheet.AssetRecord{
		Line:                line,
		Barcode:             fmt.Sprintf("BC-IMP-%d", line),
		Description:         "Imported laptop",
		AssetType:           model.AssetTypeMovable,
		MajorCategory:       "ICT",
		MinorCategory:       "Laptops",
		Location:            "Head Office",
		Department:          "Finance",
		Supplier:            "Artel Hardware",
		PurchasePrice:       "800",
		Units:               "1",
		DateOfPurchase:      "2024-01-15",
		DatePlacedInService: "2024-01-15",
		Condition:           model.ConditionNew,
	}
}

func TestImportAssetsCreatesRowsWithoutCodes(t *testing.T) {
	f := newAssetServiceFixture()

	blank := f.importRow(2)
	placeholder := f.importRow(3)
	placeholder.AssetCode = "DEFAULT"

	result, err := f.svc.ImportAssets(context.Background(), testAdmin, []spreadsheet.AssetRecord{blank, placeholder})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, result.Conflicts)
	assert.Len(t, f.saved, 2)

	actions := auditActions(f.audit.Entries())
	require.Len(t, actions, 3)
	assert.Equal(t, model.ActionImportAssets, actions[2], "one import entry after the per-asset entries")
}

func TestImportAssetsUpdatesMatchingCode(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	row := f.importRow(2)
	row.AssetCode = created.AssetCode
	row.Barcode = created.Barcode
	row.Description = "Renamed via import"

	result, err := f.svc.ImportAssets(context.Background(), testClerk, []spreadsheet.AssetRecord{row})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Conflicts)

	stored := f.saved[uuid.MustParse(created.ID)]
	assert.Equal(t, "Renamed via import", stored.Description)
}

func TestImportAssetsUnknownCodeConflicts(t *testing.T) {
	f := newAssetServiceFixture()

	row := f.importRow(2)
	row.AssetCode = "AS999999"

	result, err := f.svc.ImportAssets(context.Background(), testAdmin, []spreadsheet.AssetRecord{row})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 2, result.Conflicts[0].Line)
	assert.Equal(t, "AS999999", result.Conflicts[0].AssetCode)
	assert.Contains(t, result.Conflicts[0].Reason, `no asset with code "AS999999"`)
	assert.Empty(t, f.saved, "an unknown code must not create an asset")
}

func TestImportAssetsUnknownReferenceConflicts(t *testing.T) {
	f := newAssetServiceFixture()

	row := f.importRow(2)
	row.Location = "Warehouse 9"

	result, err := f.svc.ImportAssets(context.Background(), testAdmin, []spreadsheet.AssetRecord{row})
	require.NoError(t, err)

	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0].Reason, `unknown location "Warehouse 9"`)
}

func TestImportAssetsBarcodeChangeNeedsSuperuser(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	row := f.importRow(2)
	row.AssetCode = created.AssetCode
	row.Barcode = "BC-CHANGED"

	result, err := f.svc.ImportAssets(context.Background(), testClerk, []spreadsheet.AssetRecord{row})
	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0].Reason, "requires a superuser")
	assert.Equal(t, 0, result.Updated)

	result, err = f.svc.ImportAssets(context.Background(), testAdmin, []spreadsheet.AssetRecord{row})
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, result.Updated)

	stored := f.saved[uuid.MustParse(created.ID)]
	assert.Equal(t, "BC-CHANGED", stored.Barcode)
}

func TestImportAssetsAppliesGoodRowsAroundBadOnes(t *testing.T) {
	f := newAssetServiceFixture()
	created := f.seedAsset(t)

	fresh := f.importRow(2)

	update := f.importRow(3)
	update.AssetCode = created.AssetCode
	update.Barcode = created.Barcode
	update.Description = "Mid-file update"

	broken := f.importRow(4)
	broken.Supplier = "Nonexistent Vendors Ltd"

	result, err := f.svc.ImportAssets(context.Background(), testAdmin, []spreadsheet.AssetRecord{fresh, update, broken})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 4, result.Conflicts[0].Line)

	entries := f.audit.Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, model.ActionImportAssets, last.Action)
	assert.Contains(t, last.Changes, `"created":1`)
	assert.Contains(t, last.Changes, `"updated":1`)
}
