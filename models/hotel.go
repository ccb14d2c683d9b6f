package models

// Hotel is an external catalog entity referenced by bookings. The engine
// only reads pricing and display fields; it never mutates hotels.
type Hotel struct {
	ID            string `bson:"id" json:"id"`
	Name          string `bson:"name" json:"name"`
	City          string `bson:"city" json:"city"`
	Country       string `bson:"country" json:"country"`
	Active        bool   `bson:"active" json:"active"`
	PricePerNight int64  `bson:"price_per_night" json:"pricePerNight"` // minor units
	Currency      string `bson:"currency" json:"currency"`
}
