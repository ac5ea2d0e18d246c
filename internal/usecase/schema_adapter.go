package usecase

import "RetailPrice/internal/domain/models"

// columnRenames maps each PriceQuery wire field to the column label the
// preprocessor was fitted on. The table is total over PriceQuery.
var columnRenames = [...]struct {
	Field  string
	Column string
	value  func(q models.PriceQuery) interface{}
}{
	{"Date", "Date", func(q models.PriceQuery) interface{} { return q.Date }},
	{"Category", "Category", func(q models.PriceQuery) interface{} { return q.Category }},
	{"Region", "Region", func(q models.PriceQuery) interface{} { return q.Region }},
	{"Inventory_Level", "Inventory Level", func(q models.PriceQuery) interface{} { return q.InventoryLevel }},
	{"Units_Sold", "Units Sold", func(q models.PriceQuery) interface{} { return q.UnitsSold }},
	{"Units_Ordered", "Units Ordered", func(q models.PriceQuery) interface{} { return q.UnitsOrdered }},
	{"Demand_Forecast", "Demand Forecast", func(q models.PriceQuery) interface{} { return q.DemandForecast }},
	{"Discount", "Discount", func(q models.PriceQuery) interface{} { return q.Discount }},
	{"Weather_Condition", "Weather Condition", func(q models.PriceQuery) interface{} { return q.WeatherCondition }},
	{"Holiday_Promotion", "Holiday/Promotion", func(q models.PriceQuery) interface{} { return q.HolidayPromotion }},
	{"Seasonality", "Seasonality", func(q models.PriceQuery) interface{} { return q.Seasonality }},
	{"Competitor_Pricing", "Competitor Pricing", func(q models.PriceQuery) interface{} { return q.CompetitorPricing }},
}

// AdaptQuery renames q's fields to preprocessor column labels. Values are copied
// unchanged.
func AdaptQuery(q models.PriceQuery) models.Record {
	rec := make(models.Record, len(columnRenames))
	for _, r := range columnRenames {
		rec[r.Column] = r.value(q)
	}
	return rec
}

// ColumnFor returns the column label for a wire field name.
func ColumnFor(field string) (string, bool) {
	for _, r := range columnRenames {
		if r.Field == field {
			return r.Column, true
		}
	}
	return "", false
}

// QueryFields lists the wire field names in schema order.
func QueryFields() []string {
	out := make([]string, len(columnRenames))
	for i, r := range columnRenames {
		out[i] = r.Field
	}
	return out
}

// AdaptedColumns lists the column labels in schema order.
func AdaptedColumns() []string {
	out := make([]string, len(columnRenames))
	for i, r := range columnRenames {
		out[i] = r.Column
	}
	return out
}
