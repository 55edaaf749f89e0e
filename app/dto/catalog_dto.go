package dto

// PhoneItem represents a catalog phone for API responses.
type PhoneItem struct {
	ID          uint   `json:"id"`
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	ReleaseDate string `json:"release_date"`
	LTEExists   bool   `json:"lte_exists"`
	Slug        string `json:"slug"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListPhonesResponse represents an ordered catalog listing. Ordering
// echoes the key that was actually applied, which may differ from the
// requested key when the request carried an unrecognized value.
type ListPhonesResponse struct {
	Ordering string      `json:"ordering"`
	Phones   []PhoneItem `json:"phones"`
}

// ImportSummary reports the outcome of one bulk import run.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
