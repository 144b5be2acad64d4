package service

import (
	"context"
	"testing"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listFromStore serves GetAuditEntries from the mock's appended entries.
func listFromStore(audit *MockAuditRepository) {
	audit.ListFunc = func(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]model.AuditEntry, int64, error) {
		entries := audit.Entries()
		return entries, int64(len(entries)), nil
	}
}

func TestAuditEntriesSurviveActorDeletion(t *testing.T) {
	f := newUserServiceFixture()

	// The clerk leaves a trail, then a superuser deletes the account.
	entry := newAuditEntry(testClerk, model.ActionCreateAsset, model.EntityAsset, "some-asset-id", "HP Laptop", nil)
	require.NoError(t, f.audit.Log(context.Background(), entry))
	require.NoError(t, f.svc.DeleteUser(context.Background(), testAdmin, testClerk.ID))

	listFromStore(f.audit)
	auditSvc := NewAuditService(f.audit)

	entries, total, err := auditSvc.GetAuditEntries(context.Background(), repository.AuditFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	assert.Equal(t, testClerk.Name, entries[0].ActorName, "attribution is copied, not joined")
	assert.Equal(t, testClerk.Email, entries[0].ActorEmail)
	assert.Equal(t, testClerk.ID, entries[0].ActorID)

	assert.Equal(t, model.ActionDeleteUser, entries[1].Action)
	assert.Equal(t, testAdmin.Name, entries[1].ActorName)
}

func TestAuditEntriesWithoutActorReadAsSystem(t *testing.T) {
	audit := &MockAuditRepository{}
	require.NoError(t, audit.Log(context.Background(),
		newAuditEntry(Actor{}, model.ActionImportAssets, model.EntityAsset, "", "register import", nil)))

	listFromStore(audit)
	auditSvc := NewAuditService(audit)

	entries, _, err := auditSvc.GetAuditEntries(context.Background(), repository.AuditFilter{}, 1, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "System", entries[0].ActorName)
	assert.Empty(t, entries[0].ActorID)
}
