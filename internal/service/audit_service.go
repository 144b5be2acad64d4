package service

import (
	"context"
	"encoding/json"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/google/uuid"
)

// Actor identifies the authenticated user performing a mutation. Name and
// email travel into every audit entry by value, so the trail keeps saying who
// did what even after the account is gone.
type Actor struct {
	ID        string
	Name      string
	Email     string
	Superuser bool
}

// newAuditEntry builds an entry attributed to the actor. changes is
// marshalled to JSON; pass nil for actions with no payload worth keeping.
func newAuditEntry(actor Actor, action, entityType, entityID, entityLabel string, changes interface{}) *model.AuditEntry {
	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actor.ID); err == nil {
		actorID = &parsed
	}

	payload := "{}"
	if changes != nil {
		if raw, err := json.Marshal(changes); err == nil {
			payload = string(raw)
		}
	}

	return &model.AuditEntry{
		ActorID:     actorID,
		ActorName:   actor.Name,
		ActorEmail:  actor.Email,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		EntityLabel: entityLabel,
		Changes:     payload,
	}
}

type AuditEntryResponse struct {
	ID          string `json:"id"`
	ActorID     string `json:"actor_id"`
	ActorName   string `json:"actor_name"`
	ActorEmail  string `json:"actor_email"`
	Action      string `json:"action"`
	EntityType  string `json:"entity_type"`
	EntityID    string `json:"entity_id"`
	EntityLabel string `json:"entity_label"`
	Changes     string `json:"changes"`
	CreatedAt   string `json:"created_at"`
}

type AuditService interface {
	GetAuditEntries(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]AuditEntryResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditEntries retrieves strictly paginated records, newest first
func (s *auditService) GetAuditEntries(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]AuditEntryResponse, int64, error) {
	entries, total, err := s.auditRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		actorID := ""
		if e.ActorID != nil {
			actorID = e.ActorID.String()
		}
		actorName := e.ActorName
		if actorName == "" {
			actorName = "System"
		}

		res = append(res, AuditEntryResponse{
			ID:          e.ID.String(),
			ActorID:     actorID,
			ActorName:   actorName,
			ActorEmail:  e.ActorEmail,
			Action:      e.Action,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			EntityLabel: e.EntityLabel,
			Changes:     e.Changes,
			CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}
