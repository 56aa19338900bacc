package models

import "encoding/json"

type Store struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	Website     string    `json:"website"`
	Location    *Location `json:"location"`
}

type Deal struct {
	ID          string      `json:"id"`
	StoreID     string      `json:"store"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price,omitempty"`
	ImageURL    string      `json:"image_url"`
}

// GeoDeal is a Deal enriched with resolved store fields and the distance
// between the store and the current user. Store-derived fields are nil when
// the deal's store is not in the cached catalog. DistanceKm is "0.00" when
// either location is unknown; see DealStore.GeoDeals for how that sentinel
// sorts.
type GeoDeal struct {
	Deal
	StoreName        *string   `json:"store_name"`
	StoreAddress     *string   `json:"store_address"`
	StorePhoneNumber *string   `json:"store_phone_number"`
	StoreWebsite     *string   `json:"store_website"`
	StoreLocation    *Location `json:"store_location"`
	UserLocation     *Location `json:"user_location"`
	DistanceKm       string    `json:"distance_km"`
}

// ShoppingList references deals by id. Duplicate entries are permitted;
// the list carries no ownership over the deals themselves.
type ShoppingList struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name"`
	Deals []string `json:"deals"`
}
