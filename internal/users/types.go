package users

import "time"

// Address is a shipping address embedded in the user document.
type Address struct {
	ID           string `json:"id" dynamodbav:"id"`
	Label        string `json:"label" dynamodbav:"label"` // Home, Work, etc
	FullName     string `json:"fullName" dynamodbav:"full_name"`
	Phone        string `json:"phone" dynamodbav:"phone"`
	AddressLine1 string `json:"addressLine1" dynamodbav:"address_line1"`
	AddressLine2 string `json:"addressLine2,omitempty" dynamodbav:"address_line2,omitempty"`
	City         string `json:"city" dynamodbav:"city"`
	State        string `json:"state" dynamodbav:"state"`
	PostalCode   string `json:"postalCode" dynamodbav:"postal_code"`
	Country      string `json:"country" dynamodbav:"country"`
	IsDefault    bool   `json:"isDefault" dynamodbav:"is_default"`
}

// MeasurementProfile holds one person's body measurements. A user keeps one
// profile per person they shop for (Me, Mother, Sister).
type MeasurementProfile struct {
	ID           string             `json:"id" dynamodbav:"id"`
	ProfileName  string             `json:"profileName" dynamodbav:"profile_name"`
	Measurements map[string]float64 `json:"measurements" dynamodbav:"measurements"` // bust, waist, hips, shoulder, sleeveLength, dressLength
	Notes        string             `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	LastUpdated  time.Time          `json:"lastUpdated" dynamodbav:"last_updated"`
}

// Measurement returns the named measurement, defaulting to 0 when absent.
func (p *MeasurementProfile) Measurement(name string) float64 {
	return p.Measurements[name]
}

// User is the aggregate stored in the users table. List-valued fields are
// mutated through the store's targeted operations, never by whole-document
// replace; Version guards the read-modify-write paths.
type User struct {
	ID                  string               `json:"id" dynamodbav:"id"` // PK
	Phone               string               `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Email               string               `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Name                string               `json:"name,omitempty" dynamodbav:"name,omitempty"`
	PasswordHash        string               `json:"-" dynamodbav:"password_hash,omitempty"`
	IsGuest             bool                 `json:"isGuest" dynamodbav:"is_guest"`
	Addresses           []Address            `json:"addresses" dynamodbav:"addresses,omitempty"`
	MeasurementProfiles []MeasurementProfile `json:"measurementProfiles" dynamodbav:"measurement_profiles,omitempty"`
	Wishlist            []string             `json:"wishlist" dynamodbav:"wishlist,omitempty"` // product ids, stored as a string set
	CreatedAt           time.Time            `json:"createdAt" dynamodbav:"created_at"`
	Version             int64                `json:"-" dynamodbav:"version"`
}

// AddressByID returns the matching address or nil.
func (u *User) AddressByID(id string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

// ProfileByID returns the matching measurement profile or nil.
func (u *User) ProfileByID(id string) *MeasurementProfile {
	for i := range u.MeasurementProfiles {
		if u.MeasurementProfiles[i].ID == id {
			return &u.MeasurementProfiles[i]
		}
	}
	return nil
}
