package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image holds an uploaded file reference. Storage itself is out of scope;
// only the URL pass-through is kept.
type Image struct {
	FilePath string `json:"filePath,omitempty" bson:"filePath,omitempty"`
	URL      string `json:"url,omitempty" bson:"url,omitempty"`
}

type Address struct {
	FullAddress string  `json:"full_address,omitempty" bson:"full_address,omitempty"`
	Lat         float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty" bson:"lon,omitempty"`
}

type Store struct {
	ID            primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Owner         primitive.ObjectID   `json:"owner" bson:"owner"`
	Description   string               `json:"description,omitempty" bson:"description,omitempty"`
	Address       Address              `json:"address,omitempty" bson:"address,omitempty"`
	StoreCategory []primitive.ObjectID `json:"storeCategory" bson:"storeCategory"`
	Avatar        Image                `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Cover         Image                `json:"cover,omitempty" bson:"cover,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type Dish struct {
	ID            primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string               `json:"name" bson:"name"`
	Price         float64              `json:"price" bson:"price"`
	Category      primitive.ObjectID   `json:"category,omitempty" bson:"category,omitempty"`
	Store         primitive.ObjectID   `json:"store" bson:"store"`
	Image         Image                `json:"image,omitempty" bson:"image,omitempty"`
	ToppingGroups []primitive.ObjectID `json:"toppingGroups,omitempty" bson:"toppingGroups,omitempty"`
	Toppings      []Topping            `json:"toppings,omitempty" bson:"toppings,omitempty"`
	Description   string               `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt     time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Topping is embedded in its group; the id is stable so carts can reference
// a topping directly.
type Topping struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Price float64            `json:"price" bson:"price"`
}

type ToppingGroup struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Store     primitive.ObjectID `json:"store" bson:"store"`
	Toppings  []Topping          `json:"toppings" bson:"toppings"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Category struct {
	ID     primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name   string               `json:"name" bson:"name"`
	Store  primitive.ObjectID   `json:"store" bson:"store"`
	Dishes []primitive.ObjectID `json:"dishes,omitempty" bson:"dishes,omitempty"`
}

type FoodType struct {
	ID    primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Image Image              `json:"image,omitempty" bson:"image,omitempty"`
}

type Staff struct {
	ID      primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Role    string             `json:"role" bson:"role"` // manager | staff
	Store   primitive.ObjectID `json:"store" bson:"store"`
	Contact Contact            `json:"contact,omitempty" bson:"contact,omitempty"`
}

type Contact struct {
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

// Rating covers both store and dish ratings; exactly one of Store/Dish is set.
type Rating struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Store       primitive.ObjectID `json:"store,omitempty" bson:"store,omitempty"`
	Dish        primitive.ObjectID `json:"dish,omitempty" bson:"dish,omitempty"`
	RatingValue int                `json:"ratingValue" bson:"ratingValue"` // 1..5
	Comment     string             `json:"comment" bson:"comment"`
	Images      []Image            `json:"images,omitempty" bson:"images,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// RatingSummary is the aggregation result for a dish or store.
type RatingSummary struct {
	AvgRating float64 `json:"avgRating" bson:"avgRating"`
	Count     int64   `json:"count" bson:"count"`
}
