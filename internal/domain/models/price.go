package models

// PriceQuery is the validated input of a price prediction. Every field is present.
type PriceQuery struct {
	Date              string  `json:"Date"`
	Category          string  `json:"Category"`
	Region            string  `json:"Region"`
	InventoryLevel    int64   `json:"Inventory_Level"`
	UnitsSold         int64   `json:"Units_Sold"`
	UnitsOrdered      int64   `json:"Units_Ordered"`
	DemandForecast    float64 `json:"Demand_Forecast"`
	Discount          float64 `json:"Discount"`
	WeatherCondition  string  `json:"Weather_Condition"`
	HolidayPromotion  int64   `json:"Holiday_Promotion"`
	Seasonality       string  `json:"Seasonality"`
	CompetitorPricing float64 `json:"Competitor_Pricing"`
}

// PricePrediction is the response of a successful prediction, rounded to cents.
type PricePrediction struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// Record is a query keyed by the preprocessor's column labels. Values are
// string, int64 or float64.
type Record map[string]interface{}
