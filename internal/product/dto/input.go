package dto

// Image is an uploaded file held in memory.
type Image struct {
	OriginalName string
	ContentType  string
	Data         []byte
}

type AddProductInput struct {
	SubcategoryID int64
	Name          string
	Price         int64
	Discount      int64
	Description   string
	Image         *Image
}

type UpdateProductInput struct {
	ID          int64
	Name        string
	Price       int64
	Discount    int64
	Description string
	// Nil keeps the current image and description.
	Image *Image
}
