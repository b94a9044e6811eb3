package datamodel

import "time"

const (
	MealTypeVeg    = "veg"
	MealTypeNonVeg = "non_veg"
	MealTypeBoth   = "both"
)

// DinnerMenu is today's offered menu. MealType tells which sides are
// available; "both" days allow either veg or non-veg but not both at
// once.
type DinnerMenu struct {
	Date     time.Time  `json:"date"`
	MealType string     `json:"meal_type"`
	Items    []FoodItem `json:"items"`
	Deadline time.Time  `json:"deadline"`
}

type FoodItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	IsVeg bool   `json:"is_veg"`
}

// DinnerSelection is the daily, singleton-per-user record. Veg and
// NonVeg are mutually exclusive on "both" days.
type DinnerSelection struct {
	Veg        bool      `json:"veg"`
	NonVeg     bool      `json:"non_veg"`
	FoodItemID int64     `json:"food_item_id,omitempty"`
	Deadline   time.Time `json:"deadline,omitempty"`
}
