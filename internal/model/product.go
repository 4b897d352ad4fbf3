package model

type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	Discount      int64  `json:"discount"`
	ImageURL      string `json:"imageUrl"`
	SubcategoryID int64  `json:"subcategoryId"`
	Description   string `json:"description"`
	// Only set by the catalog listing.
	SubcategoryName string `json:"subcategoryName,omitempty"`
}

// CategoryPage is the composite browse view of one subcategory.
type CategoryPage struct {
	Category    *Category    `json:"category"`
	Subcategory *Subcategory `json:"subcategory"`
	Products    []Product    `json:"products"`
}

// StoredImage describes an uploaded product image and the row created for it.
type StoredImage struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	URL          string `json:"url"`
}
