package model

import "strconv"

// Default image paths used when a vehicle is added without its own pictures.
const (
	DefaultVehicleImage     = "/images/vehicles/no-image.png"
	DefaultVehicleThumbnail = "/images/vehicles/no-image-tn.png"
)

// Classification groups vehicles into a category such as Sedan or SUV.
type Classification struct {
	ID   int64  `json:"classification_id"`
	Name string `json:"classification_name"`
}

// Vehicle represents an inventory row.
type Vehicle struct {
	ID                 int64   `json:"inv_id"`
	Make               string  `json:"inv_make"`
	Model              string  `json:"inv_model"`
	Year               int     `json:"inv_year"`
	Description        string  `json:"inv_description"`
	Image              string  `json:"inv_image"`
	Thumbnail          string  `json:"inv_thumbnail"`
	Price              float64 `json:"inv_price"`
	Miles              int     `json:"inv_miles"`
	Color              string  `json:"inv_color"`
	ClassificationID   int64   `json:"classification_id"`
	ClassificationName string  `json:"classification_name,omitempty"`
}

// Title is the "year make model" heading used on detail pages.
func (v *Vehicle) Title() string {
	return strconv.Itoa(v.Year) + " " + v.Make + " " + v.Model
}

// Name is the "make model" label used in grids and notices.
func (v *Vehicle) Name() string {
	return v.Make + " " + v.Model
}
