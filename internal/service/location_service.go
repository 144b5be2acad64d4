package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateLocationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

type UpdateLocationRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type LocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

type LocationService interface {
	GetLocations(ctx context.Context, search string, page, limit int) ([]LocationResponse, int64, error)
	GetLocationByID(ctx context.Context, id string) (*LocationResponse, error)
	CreateLocation(ctx context.Context, actor Actor, req CreateLocationRequest) (*LocationResponse, error)
	UpdateLocation(ctx context.Context, actor Actor, id string, req UpdateLocationRequest) (*LocationResponse, error)
	DeleteLocation(ctx context.Context, actor Actor, id string) error
}

type locationService struct {
	locationRepo repository.LocationRepository
	assetRepo    repository.AssetRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewLocationService(
	locationRepo repository.LocationRepository,
	assetRepo repository.AssetRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		assetRepo:    assetRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

func (s *locationService) GetLocations(ctx context.Context, search string, page, limit int) ([]LocationResponse, int64, error) {
	locations, total, err := s.locationRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		res = append(res, toLocationResponse(&locations[i]))
	}
	return res, total, nil
}

func (s *locationService) GetLocationByID(ctx context.Context, id string) (*LocationResponse, error) {
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := toLocationResponse(location)
	return &res, nil
}

func (s *locationService) CreateLocation(ctx context.Context, actor Actor, req CreateLocationRequest) (*LocationResponse, error) {
	if err := validateCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	location := &model.Location{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locationRepo.Create(txCtx, location); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("location %q already exists: %w", req.Name, ErrConflict)
			}
			return fmt.Errorf("failed to create location: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionCreateLocation, model.EntityLocation, location.ID.String(), location.Name, req)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toLocationResponse(location)
	return &res, nil
}

func (s *locationService) UpdateLocation(ctx context.Context, actor Actor, id string, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil && *req.Name != location.Name {
		changes["name"] = map[string]string{"from": location.Name, "to": *req.Name}
		location.Name = *req.Name
	}
	if req.Latitude != nil {
		changes["latitude"] = map[string]interface{}{"from": location.Latitude, "to": *req.Latitude}
		location.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		changes["longitude"] = map[string]interface{}{"from": location.Longitude, "to": *req.Longitude}
		location.Longitude = req.Longitude
	}
	if err := validateCoordinates(location.Latitude, location.Longitude); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		res := toLocationResponse(location)
		return &res, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locationRepo.Update(txCtx, location); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("location %q already exists: %w", location.Name, ErrConflict)
			}
			return fmt.Errorf("failed to update location: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionUpdateLocation, model.EntityLocation, location.ID.String(), location.Name, changes)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toLocationResponse(location)
	return &res, nil
}

// DeleteLocation refuses to remove a location that still has assets placed at
// it, matching the database restrict constraint.
func (s *locationService) DeleteLocation(ctx context.Context, actor Actor, id string) error {
	location, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	assets, err := s.assetRepo.CountByLocation(ctx, location.ID)
	if err != nil {
		return err
	}
	if assets > 0 {
		return fmt.Errorf("location %q still has %d assets: %w", location.Name, assets, ErrConflict)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.locationRepo.Delete(txCtx, location.ID); err != nil {
			return fmt.Errorf("failed to delete location: %w", err)
		}
		entry := newAuditEntry(actor, model.ActionDeleteLocation, model.EntityLocation, location.ID.String(), location.Name, nil)
		return s.auditRepo.Log(txCtx, entry)
	})
}

func (s *locationService) find(ctx context.Context, id string) (*model.Location, error) {
	locationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid location id", ErrValidation)
	}
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("location not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return location, nil
}

func validateCoordinates(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrValidation)
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrValidation)
	}
	return nil
}

func toLocationResponse(location *model.Location) LocationResponse {
	return LocationResponse{
		ID:        location.ID.String(),
		Name:      location.Name,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		CreatedAt: location.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: location.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
