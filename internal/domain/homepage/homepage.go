// Package homepage defines the storefront homepage content document,
// managed as a singleton by back-office staff.
package homepage

import (
	"errors"
	"time"
)

// SectionEntry points a homepage section at a category/subcategory pair.
type SectionEntry struct {
	FieldName   string `json:"field_name"`
	Category    int    `json:"category"`
	Subcategory int    `json:"sub_category"`
}

// Section is a named block of entries on the homepage.
type Section struct {
	Name string         `json:"name"`
	List []SectionEntry `json:"list"`
}

// Banner is a carousel slide.
type Banner struct {
	Sequence int    `json:"sequence"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Alt      string `json:"alt,omitempty"`
}

// Carousel holds per-device banner lists.
type Carousel struct {
	Mobile  []Banner `json:"mobile"`
	Desktop []Banner `json:"desktop"`
}

// Homepage is the singleton content document.
type Homepage struct {
	ID        string    `json:"id"`
	Sections  []Section `json:"sections"`
	Carousel  Carousel  `json:"carousel"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertRequest replaces the homepage content.
type UpsertRequest struct {
	Sections []Section `json:"sections"`
	Carousel Carousel  `json:"carousel"`
}

// Validate checks banner entries are well-formed.
func (r *UpsertRequest) Validate() error {
	for _, s := range r.Sections {
		if s.Name == "" {
			return errors.New("section name is required")
		}
	}
	for _, b := range append(r.Carousel.Mobile, r.Carousel.Desktop...) {
		if b.Image == "" || b.Link == "" {
			return errors.New("banner image and link are required")
		}
	}
	return nil
}
