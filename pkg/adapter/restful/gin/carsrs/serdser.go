package carsrs

import (
	"github.com/momeni/car-rental/pkg/core/model"
)

type carReq struct {
	Name         string   `json:"name" binding:"required"`
	Brand        string   `json:"brand" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required,gte=1886"`
	Image        string   `json:"image" binding:"required"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Transmission string   `json:"transmission" binding:"required,oneof=Automatic Manual"`
	FuelType     string   `json:"fuelType" binding:"required,oneof=Petrol Diesel Electric Hybrid"`
	Seats        int      `json:"seats" binding:"required,gt=0"`
	Category     string   `json:"category" binding:"required,oneof=Sedan SUV Sports Economy Luxury Convertible"`
	Rating       float64  `json:"rating" binding:"gte=0,lte=5"`
	Reviews      int      `json:"reviews" binding:"gte=0"`
	Status       string   `json:"status" binding:"omitempty,oneof=Available 'On Ride'"`
	Features     []string `json:"features"`

	PerKm        *float64 `json:"pricePerKm" binding:"omitempty,gte=0"`
	Band0To100   *float64 `json:"slabPrice0to100" binding:"omitempty,gte=0"`
	Band100To200 *float64 `json:"slabPrice100to200" binding:"omitempty,gte=0"`
	Band200To300 *float64 `json:"slabPrice200to300" binding:"omitempty,gte=0"`
}

// ToModel converts the request into a car. An absent status is left
// unset, so the use case may choose its default.
func (req carReq) ToModel(id string) (model.Car, error) {
	car := model.Car{
		ID:           id,
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Image:        req.Image,
		Price:        req.Price,
		Transmission: model.Transmission(req.Transmission),
		FuelType:     model.FuelType(req.FuelType),
		Seats:        req.Seats,
		Category:     model.Category(req.Category),
		Rating:       req.Rating,
		Reviews:      req.Reviews,
		Features:     req.Features,
		Pricing: model.Pricing{
			PerKm:        req.PerKm,
			Band0To100:   req.Band0To100,
			Band100To200: req.Band100To200,
			Band200To300: req.Band200To300,
		},
	}
	if req.Status != "" {
		s, err := model.ParseCarStatus(req.Status)
		if err != nil {
			return model.Car{}, err
		}
		car.Status = s
	}
	return car, nil
}
