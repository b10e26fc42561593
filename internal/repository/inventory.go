package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/csemotors/csemotors-go/internal/model"
)

var (
	ErrVehicleNotFound         = errors.New("vehicle not found")
	ErrClassificationNotFound  = errors.New("classification not found")
	ErrDuplicateClassification = errors.New("classification already exists")
	ErrUnknownClassification   = errors.New("classification does not exist")
)

const (
	listClassificationsQuery  = `SELECT classification_id, classification_name FROM classification ORDER BY classification_name`
	classificationByIDQuery   = `SELECT classification_id, classification_name FROM classification WHERE classification_id = ?`
	insertClassificationQuery = `INSERT INTO classification (classification_name) VALUES (?)`

	vehicleColumns = `i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description, i.inv_image,
		i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color, i.classification_id, c.classification_name`

	vehiclesByClassificationQuery = `SELECT ` + vehicleColumns + `
		FROM inventory AS i
		JOIN classification AS c ON c.classification_id = i.classification_id
		WHERE i.classification_id = ?
		ORDER BY i.inv_make, i.inv_model`
	vehicleByIDQuery = `SELECT ` + vehicleColumns + `
		FROM inventory AS i
		JOIN classification AS c ON c.classification_id = i.classification_id
		WHERE i.inv_id = ?`

	insertVehicleQuery = `INSERT INTO inventory
		(inv_make, inv_model, inv_year, inv_description, inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateVehicleQuery = `UPDATE inventory SET
		inv_make = ?, inv_model = ?, inv_year = ?, inv_description = ?, inv_image = ?,
		inv_thumbnail = ?, inv_price = ?, inv_miles = ?, inv_color = ?, classification_id = ?
		WHERE inv_id = ?`
	deleteVehicleQuery = `DELETE FROM inventory WHERE inv_id = ?`
)

// InventoryRepository handles classification and vehicle persistence.
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new InventoryRepository.
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListClassifications returns every classification ordered by name.
func (r *InventoryRepository) ListClassifications(ctx context.Context) ([]model.Classification, error) {
	rows, err := r.db.QueryContext(ctx, listClassificationsQuery)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()

	var classes []model.Classification
	for rows.Next() {
		var c model.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}

	return classes, nil
}

// GetClassification retrieves a classification by ID.
func (r *InventoryRepository) GetClassification(ctx context.Context, id int64) (*model.Classification, error) {
	c := &model.Classification{}
	err := r.db.QueryRowContext(ctx, classificationByIDQuery, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassificationNotFound
		}
		return nil, fmt.Errorf("select classification: %w", err)
	}
	return c, nil
}

// CreateClassification inserts a classification and returns it with its ID.
func (r *InventoryRepository) CreateClassification(ctx context.Context, name string) (*model.Classification, error) {
	result, err := r.db.ExecContext(ctx, insertClassificationQuery, name)
	if err != nil {
		if isDuplicateEntryError(err) {
			return nil, ErrDuplicateClassification
		}
		return nil, fmt.Errorf("insert classification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert classification: %w", err)
	}

	return &model.Classification{ID: id, Name: name}, nil
}

// ListVehiclesByClassification returns the vehicles of one classification
// ordered by make and model. An empty classification yields an empty slice.
func (r *InventoryRepository) ListVehiclesByClassification(ctx context.Context, classificationID int64) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, vehiclesByClassificationQuery, classificationID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []model.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	return vehicles, nil
}

// GetVehicle retrieves one vehicle with its classification name.
func (r *InventoryRepository) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, vehicleByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// CreateVehicle inserts a vehicle and sets the generated ID on it.
func (r *InventoryRepository) CreateVehicle(ctx context.Context, v *model.Vehicle) error {
	result, err := r.db.ExecContext(ctx, insertVehicleQuery,
		v.Make, v.Model, v.Year, v.Description, v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrUnknownClassification
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	v.ID = id
	return nil
}

// UpdateVehicle overwrites every column of an existing vehicle.
func (r *InventoryRepository) UpdateVehicle(ctx context.Context, v *model.Vehicle) error {
	_, err := r.db.ExecContext(ctx, updateVehicleQuery,
		v.Make, v.Model, v.Year, v.Description, v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID, v.ID,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrUnknownClassification
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// DeleteVehicle removes a vehicle by ID.
func (r *InventoryRepository) DeleteVehicle(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, deleteVehicleQuery, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if n == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := row.Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.Description, &v.Image,
		&v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.ClassificationID, &v.ClassificationName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}
	return v, nil
}
