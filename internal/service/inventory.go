package service

import (
	"context"
	"errors"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/repository"
)

var (
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrClassificationExists   = errors.New("classification already exists")
	ErrUnknownClassification  = errors.New("unknown classification")
)

// InventoryStore is the persistence the inventory service depends on.
type InventoryStore interface {
	ListClassifications(ctx context.Context) ([]model.Classification, error)
	GetClassification(ctx context.Context, id int64) (*model.Classification, error)
	CreateClassification(ctx context.Context, name string) (*model.Classification, error)
	ListVehiclesByClassification(ctx context.Context, classificationID int64) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	CreateVehicle(ctx context.Context, v *model.Vehicle) error
	UpdateVehicle(ctx context.Context, v *model.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// InventoryService handles classification and vehicle business logic.
type InventoryService struct {
	store InventoryStore
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(store InventoryStore) *InventoryService {
	return &InventoryService{store: store}
}

// Classifications lists every classification in name order.
func (s *InventoryService) Classifications(ctx context.Context) ([]model.Classification, error) {
	return s.store.ListClassifications(ctx)
}

// Classification retrieves one classification.
func (s *InventoryService) Classification(ctx context.Context, id int64) (*model.Classification, error) {
	c, err := s.store.GetClassification(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassificationNotFound) {
			return nil, ErrClassificationNotFound
		}
		return nil, err
	}
	return c, nil
}

// AddClassification creates a classification.
func (s *InventoryService) AddClassification(ctx context.Context, name string) (*model.Classification, error) {
	c, err := s.store.CreateClassification(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateClassification) {
			return nil, ErrClassificationExists
		}
		return nil, err
	}
	return c, nil
}

// VehiclesByClassification returns the classification and its vehicles.
// An unknown classification yields ErrClassificationNotFound.
func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID int64) (*model.Classification, []model.Vehicle, error) {
	c, err := s.Classification(ctx, classificationID)
	if err != nil {
		return nil, nil, err
	}

	vehicles, err := s.store.ListVehiclesByClassification(ctx, classificationID)
	if err != nil {
		return nil, nil, err
	}
	return c, vehicles, nil
}

// Inventory returns the vehicles of a classification without checking that it exists.
func (s *InventoryService) Inventory(ctx context.Context, classificationID int64) ([]model.Vehicle, error) {
	return s.store.ListVehiclesByClassification(ctx, classificationID)
}

// Vehicle retrieves one vehicle.
func (s *InventoryService) Vehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// AddVehicle inserts a vehicle, filling in default image paths when blank.
func (s *InventoryService) AddVehicle(ctx context.Context, v *model.Vehicle) error {
	applyImageDefaults(v)
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		if errors.Is(err, repository.ErrUnknownClassification) {
			return ErrUnknownClassification
		}
		return err
	}
	return nil
}

// UpdateVehicle overwrites an existing vehicle.
func (s *InventoryService) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	if _, err := s.Vehicle(ctx, v.ID); err != nil {
		return err
	}

	applyImageDefaults(v)
	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		if errors.Is(err, repository.ErrUnknownClassification) {
			return ErrUnknownClassification
		}
		return err
	}
	return nil
}

// DeleteVehicle removes a vehicle and returns what was deleted. A missing
// vehicle yields ErrVehicleNotFound without a delete being attempted.
func (s *InventoryService) DeleteVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.Vehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteVehicle(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func applyImageDefaults(v *model.Vehicle) {
	if v.Image == "" {
		v.Image = model.DefaultVehicleImage
	}
	if v.Thumbnail == "" {
		v.Thumbnail = model.DefaultVehicleThumbnail
	}
}
