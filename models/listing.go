package models

// RawListing holds one marketplace card exactly as it was scraped.
// Every field is free text; nothing has been parsed yet.
type RawListing struct {
	Title          string
	EngineText     string
	YearText       string
	MileageText    string
	Gearbox        string
	Energy         string
	PriceText      string
	MarketPosition string
	WarrantyText   string
	URL            string
}

// CleanRecord is the typed row produced by the cleaning pipeline.
// Nil pointers are values the listing did not carry.
type CleanRecord struct {
	Brand          string
	Model          string
	Generation     string
	Year           int32
	Mileage        int64
	Price          int64
	WarrantyMonths int64
	Displacement   *string
	EngineCode     *string
	Horsepower     int64
	Trim           *string
	Battery        *string
	Gearbox        string
	Energy         string
	MarketPosition string
	URL            string
}

// InsightReport holds the computed analytics over the cleaned dataset.
type InsightReport struct {
	TotalListings    int
	AveragePrice     float64
	MinPrice         int64
	MaxPrice         int64
	AverageMileage   float64
	ElectrifiedShare float64
	Cheapest         *CleanRecord
	MostExpensive    *CleanRecord
	ListingsByBrand  map[string]int
	ListingsByEnergy map[string]int
	ListingsByMarket map[string]int
}
