package model

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Subcategory struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	ImageURL   string `db:"imageurl" json:"imageUrl"`
	CategoryID int64  `db:"categoryid" json:"categoryId"`
}
