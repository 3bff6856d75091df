package dtos

import (
	"yourbuyer-api/models"
	"yourbuyer-api/utils"
)

// ProductImageView is a product image with its path resolved to an absolute
// URL for the storefront.
type ProductImageView struct {
	ID        uint   `json:"id"`
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// ProductView is the catalog representation of a product.
type ProductView struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"short_description"`
	Price            float64            `json:"price"`
	Discount         float64            `json:"discount"`
	Status           string             `json:"status"`
	CategoryID       *uint              `json:"category_id"`
	Category         *CategoryView      `json:"category,omitempty"`
	PrimaryImage     *ProductImageView  `json:"primary_image"`
	Images           []ProductImageView `json:"images,omitempty"`
}

type CategoryView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CartItemView struct {
	ID       uint        `json:"id"`
	Product  ProductView `json:"product"`
	Quantity int         `json:"quantity"`
	Subtotal float64     `json:"subtotal"`
}

type WishlistItemView struct {
	ID      uint        `json:"id"`
	Product ProductView `json:"product"`
}

// Pagination mirrors the page metadata the storefront paginates with.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewProductImageView resolves the stored relative path against the request
// base URL. Image URLs are built per request so the API works behind any
// host or proxy.
func NewProductImageView(baseURL string, img models.ProductImage) ProductImageView {
	return ProductImageView{
		ID:        img.ID,
		ImageURL:  utils.StorageURL(baseURL, img.ImagePath),
		IsPrimary: img.IsPrimary,
		SortOrder: img.SortOrder,
	}
}

// NewProductView builds the catalog view. withImages controls whether the
// full gallery is included alongside the primary image.
func NewProductView(baseURL string, p models.Product, withImages bool) ProductView {
	view := ProductView{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		Discount:         p.Discount,
		Status:           string(p.Status),
		CategoryID:       p.CategoryID,
	}

	if p.Category != nil {
		view.Category = &CategoryView{ID: p.Category.ID, Name: p.Category.Name}
	}

	if primary := p.PrimaryImage(); primary != nil {
		v := NewProductImageView(baseURL, *primary)
		view.PrimaryImage = &v
	}

	if withImages {
		view.Images = make([]ProductImageView, 0, len(p.Images))
		for _, img := range p.Images {
			view.Images = append(view.Images, NewProductImageView(baseURL, img))
		}
	}

	return view
}

func NewCartItemView(baseURL string, item models.CartItem) CartItemView {
	return CartItemView{
		ID:       item.ID,
		Product:  NewProductView(baseURL, item.Product, false),
		Quantity: item.Quantity,
		Subtotal: item.Product.Price * float64(item.Quantity),
	}
}

func NewWishlistItemView(baseURL string, item models.WishlistItem) WishlistItemView {
	return WishlistItemView{
		ID:      item.ID,
		Product: NewProductView(baseURL, item.Product, false),
	}
}

// NewPagination computes last_page from the total row count.
func NewPagination(page, perPage int, total int64) Pagination {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
