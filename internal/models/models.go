package models

import "time"

// Location is a pair of coordinates
type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Place represents a location record owned by exactly one user
type Place struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	Creator     string   `json:"creator"`
}

// User represents an account holding an ordered list of place ids
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Places    []string  `json:"places"`
	CreatedAt time.Time `json:"created_at"`
}

// RemovePlace drops every occurrence of placeID from the user's place list
func (u *User) RemovePlace(placeID string) {
	kept := u.Places[:0]
	for _, id := range u.Places {
		if id != placeID {
			kept = append(kept, id)
		}
	}
	u.Places = kept
}
