// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

const maxLabelLength = 64

// Number is a lenient JSON number. It accepts numbers, numeric strings and null;
// anything else, including NaN and infinities, decodes to 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler and never fails.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*n = Number(model.Finite(v))
	return nil
}

// Float64 returns the value as a float64.
func (n Number) Float64() float64 {
	return float64(n)
}

// ProductInput is the product as sent by clients.
//
// @Description Product to be packed. Numeric fields accept numbers or numeric strings; anything else is read as 0.
type ProductInput struct {
	Width     Number `json:"width" swaggertype:"number" example:"10"`
	Height    Number `json:"height" swaggertype:"number" example:"5"`
	Depth     Number `json:"depth" swaggertype:"number" example:"3"`
	Weight    Number `json:"weight" swaggertype:"number" example:"0.5"`
	Fragility string `json:"fragility" example:"LOW" enums:"LOW,MEDIUM,HIGH,EXTREME"`
	Name      string `json:"name,omitempty" example:"Ceramic mug"`
	Brand     string `json:"brand,omitempty" example:"Acme"`
} // @name ProductInput

// ToModel converts the input to a domain product with a normalized fragility.
func (p ProductInput) ToModel() model.Product {
	return model.Product{
		Width:     p.Width.Float64(),
		Height:    p.Height.Float64(),
		Depth:     p.Depth.Float64(),
		Weight:    p.Weight.Float64(),
		Fragility: model.Fragility(strings.ToUpper(strings.TrimSpace(p.Fragility))).Normalize(),
		Name:      strings.TrimSpace(p.Name),
		Brand:     strings.TrimSpace(p.Brand),
	}
}

// BoxInput is a box as sent by clients.
type BoxInput struct {
	Width  Number `json:"width" swaggertype:"number" example:"13.1"`
	Height Number `json:"height" swaggertype:"number" example:"8.1"`
	Depth  Number `json:"depth" swaggertype:"number" example:"6.1"`
} // @name BoxInput

// ToModel converts the input to domain box dimensions.
func (b BoxInput) ToModel() model.BoxDimensions {
	return model.BoxDimensions{
		Width:  b.Width.Float64(),
		Height: b.Height.Float64(),
		Depth:  b.Depth.Float64(),
	}
}

// PredictRequest represents the JSON request body for the predict endpoint.
//
// @Description Request a raw model prediction
// @Example {"product": {"width": 10, "height": 5, "depth": 3, "weight": 0.5, "fragility": "LOW"}, "packaging_type": "Box"}
type PredictRequest struct {
	Product *ProductInput `json:"product"`
	// PackagingType defaults to Box when empty.
	PackagingType string `json:"packaging_type" example:"Box"`
} // @name PredictRequest

// Validate performs custom validation on the request.
func (r *PredictRequest) Validate() error {
	if r.Product == nil {
		return ErrProductRequired
	}
	return validateLabel("packaging_type", r.PackagingType)
}

// Packaging returns the requested packaging type, Box when empty.
func (r *PredictRequest) Packaging() model.PackagingType {
	return packagingOrDefault(r.PackagingType)
}

// QuoteRequest is the request body shared by the recommend, quote and save-report endpoints.
//
// @Description Request a recommendation or quote for a product
// @Example {"product": {"width": 10, "height": 5, "depth": 3, "weight": 0.5, "fragility": "LOW", "name": "Ceramic mug"}, "packaging_type": "Box", "category": "Plastic"}
type QuoteRequest struct {
	Product *ProductInput `json:"product"`
	// PackagingType defaults to Box when empty.
	PackagingType string `json:"packaging_type" example:"Box"`
	// Category selects the minimum clearance; Paper uses a tighter one.
	Category string `json:"category,omitempty" example:"Plastic"`
} // @name QuoteRequest

// Validate performs custom validation on the request.
func (r *QuoteRequest) Validate() error {
	if r.Product == nil {
		return ErrProductRequired
	}
	if err := validateLabel("packaging_type", r.PackagingType); err != nil {
		return err
	}
	return validateLabel("category", r.Category)
}

// ToInput converts the request to a quote input.
func (r *QuoteRequest) ToInput() model.QuoteInput {
	var product model.Product
	if r.Product != nil {
		product = r.Product.ToModel()
	}
	return model.QuoteInput{
		Product:       product,
		PackagingType: packagingOrDefault(r.PackagingType),
		Category:      strings.TrimSpace(r.Category),
	}
}

// EstimateCostRequest represents the JSON request body for the estimate-cost endpoint.
//
// @Description Price a given box
// @Example {"box": {"width": 13.1, "height": 8.1, "depth": 6.1}, "packaging_type": "Box", "thickness_level": 1, "void_space": 497.3}
type EstimateCostRequest struct {
	Box           *BoxInput `json:"box"`
	PackagingType string    `json:"packaging_type" example:"Box"`
	// ThicknessLevel of 0 or below is priced as level 1.
	ThicknessLevel int    `json:"thickness_level" example:"1"`
	VoidSpace      Number `json:"void_space" swaggertype:"number" example:"497.3"`
} // @name EstimateCostRequest

// Validate performs custom validation on the request.
func (r *EstimateCostRequest) Validate() error {
	if r.Box == nil {
		return ErrBoxRequired
	}
	return validateLabel("packaging_type", r.PackagingType)
}

// Packaging returns the requested packaging type, Box when empty.
func (r *EstimateCostRequest) Packaging() model.PackagingType {
	return packagingOrDefault(r.PackagingType)
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrProductRequired is returned when the product object is missing.
	ErrProductRequired = &ValidationError{
		Field:   "product",
		Message: "is required",
	}
	// ErrBoxRequired is returned when the box object is missing.
	ErrBoxRequired = &ValidationError{
		Field:   "box",
		Message: "is required",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validateLabel(field, value string) error {
	if len(value) > maxLabelLength {
		return &ValidationError{
			Field:   field,
			Message: "must be at most 64 characters",
		}
	}
	return nil
}

func packagingOrDefault(v string) model.PackagingType {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.PackagingBox
	}
	return model.PackagingType(v)
}
