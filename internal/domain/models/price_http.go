package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
)

// PriceQueryRequest is the wire form of PriceQuery. Pointers distinguish an
// absent or null field from a zero value such as Holiday_Promotion: 0.
type PriceQueryRequest struct {
	Date              *string  `json:"Date" validate:"required"`
	Category          *string  `json:"Category" validate:"required"`
	Region            *string  `json:"Region" validate:"required"`
	InventoryLevel    *int64   `json:"Inventory_Level" validate:"required"`
	UnitsSold         *int64   `json:"Units_Sold" validate:"required"`
	UnitsOrdered      *int64   `json:"Units_Ordered" validate:"required"`
	DemandForecast    *float64 `json:"Demand_Forecast" validate:"required"`
	Discount          *float64 `json:"Discount" validate:"required"`
	WeatherCondition  *string  `json:"Weather_Condition" validate:"required"`
	HolidayPromotion  *int64   `json:"Holiday_Promotion" validate:"required"`
	Seasonality       *string  `json:"Seasonality" validate:"required"`
	CompetitorPricing *float64 `json:"Competitor_Pricing" validate:"required"`
}

// Query converts a validated request. Call only after validation succeeded.
func (r *PriceQueryRequest) Query() PriceQuery {
	return PriceQuery{
		Date:              *r.Date,
		Category:          *r.Category,
		Region:            *r.Region,
		InventoryLevel:    *r.InventoryLevel,
		UnitsSold:         *r.UnitsSold,
		UnitsOrdered:      *r.UnitsOrdered,
		DemandForecast:    *r.DemandForecast,
		Discount:          *r.Discount,
		WeatherCondition:  *r.WeatherCondition,
		HolidayPromotion:  *r.HolidayPromotion,
		Seasonality:       *r.Seasonality,
		CompetitorPricing: *r.CompetitorPricing,
	}
}

// UnmarshalJSON matches keys exactly. encoding/json would otherwise accept
// "category" or "CATEGORY" for Category. Type errors keep the field name.
func (r *PriceQueryRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v := reflect.ValueOf(r).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		value, ok := raw[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, v.Field(i).Addr().Interface()); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				typeErr.Field = name
			}
			return err
		}
	}
	return nil
}
