package domain

// City is a destination referenced by foods and distances.
// Names are unique and stored exactly as written in the workbook.
type City struct {
	ID   int64
	Name string
}

// Food is a traditional food item sold in a city.
type Food struct {
	ID     int64
	Name   string
	CityID int64
	Price  float64
}

// Distance is the directional road distance between two cities in kilometres.
// The (FromCityID, ToCityID) pair is unique; the reverse pair is a separate record.
type Distance struct {
	FromCityID int64
	ToCityID   int64
	Kilometers float64
}

// Counts summarises the number of rows in each destination table.
type Counts struct {
	Cities    int
	Foods     int
	Distances int
}
