package dto

type SearchInput struct {
	ProductName string `json:"product_name" binding:"required"`
}
