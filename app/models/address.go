package models

import "gorm.io/gorm"

// Address is a postal address owned by exactly one user.
type Address struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index" json:"userId"`
	LineOne string `gorm:"size:255;not null" json:"lineOne"`
	LineTwo string `gorm:"size:255" json:"lineTwo,omitempty"`
	City    string `gorm:"size:255;not null" json:"city"`
	Country string `gorm:"size:255;not null" json:"country"`
	Pincode string `gorm:"size:6;not null" json:"pincode"`
}

// Format renders the single-line form stored on orders:
// "lineOne[, lineTwo], city, country - pincode". The lineTwo segment is
// omitted entirely, separator included, when absent.
func (a Address) Format() string {
	out := a.LineOne
	if a.LineTwo != "" {
		out += ", " + a.LineTwo
	}
	return out + ", " + a.City + ", " + a.Country + " - " + a.Pincode
}
