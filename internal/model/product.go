package model

type Product struct {
	BaseModel
	Name string `db:"name" json:"name"`
	// NormalizedName is the lookup/dedup key: lowercase, punctuation stripped,
	// whitespace collapsed. Not unique; free-text matching may alias products.
	NormalizedName string             `db:"normalized_name" json:"-"`
	Description    *string            `db:"description" json:"description"`
	Category       string             `db:"category" json:"category"`
	ImageURL       *string            `db:"image_url" json:"image_url"`
	Prices         []PriceObservation `db:"-" json:"prices,omitempty"`
}
