package models

// Brand is the normalized form of a brand row plus its perfume count
// aggregate.
type Brand struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	LongDescription string `json:"long_description"`
	Logo            string `json:"logo,omitempty"`
	Banner          string `json:"banner,omitempty"`
	FoundedYear     int    `json:"founded_year,omitempty"`
	Headquarters    string `json:"headquarters,omitempty"`
	Category        string `json:"category,omitempty"`
	Featured        bool   `json:"featured"`
	PerfumeCount    int    `json:"perfume_count"`
}
