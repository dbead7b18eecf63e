package backend

import "time"

type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	NameEn string `json:"name_en"`
	NameAr string `json:"name_ar"`
	Slug   string `json:"slug"`
}

type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
}

type Product struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	NameEn        string         `json:"name_en"`
	NameAr        string         `json:"name_ar"`
	Description   string         `json:"description"`
	DescriptionEn string         `json:"description_en"`
	DescriptionAr string         `json:"description_ar"`
	Price         float64        `json:"price"`
	Stock         int            `json:"stock"`
	SKU           string         `json:"sku"`
	CategoryID    int64          `json:"category_id"`
	Category      *Category      `json:"category,omitempty"`
	Ingredients   string         `json:"ingredients,omitempty"`
	IngredientsEn string         `json:"ingredients_en,omitempty"`
	IngredientsAr string         `json:"ingredients_ar,omitempty"`
	Usage         string         `json:"usage,omitempty"`
	UsageEn       string         `json:"usage_en,omitempty"`
	UsageAr       string         `json:"usage_ar,omitempty"`
	IsFeatured    bool           `json:"is_featured"`
	Images        []ProductImage `json:"images"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
}

// ProductParams filters the public product listing. Zero values are omitted.
type ProductParams struct {
	Search   string
	Category int64
	MinPrice float64
	MaxPrice float64
	Sort     string
	Featured bool
}

// ProductPayload is the body of product create and update calls.
type ProductPayload struct {
	Name          string  `json:"name"`
	NameEn        string  `json:"name_en"`
	NameAr        string  `json:"name_ar"`
	Description   string  `json:"description"`
	DescriptionEn string  `json:"description_en"`
	DescriptionAr string  `json:"description_ar"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	SKU           string  `json:"sku"`
	CategoryID    int64   `json:"category_id"`
	Ingredients   string  `json:"ingredients,omitempty"`
	IngredientsEn string  `json:"ingredients_en,omitempty"`
	IngredientsAr string  `json:"ingredients_ar,omitempty"`
	Usage         string  `json:"usage,omitempty"`
	UsageEn       string  `json:"usage_en,omitempty"`
	UsageAr       string  `json:"usage_ar,omitempty"`
	IsFeatured    bool    `json:"is_featured"`
}

type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrderItem struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"order_id"`
	ProductID int64    `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	LineTotal float64  `json:"line_total"`
}

type Order struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"user_id"`
	Status         string      `json:"status"`
	Total          float64     `json:"total"`
	PaymentMethod  string      `json:"payment_method"`
	ShippingName   string      `json:"shipping_name"`
	ShippingPhone  string      `json:"shipping_phone"`
	ShippingCity   string      `json:"shipping_city"`
	ShippingStreet string      `json:"shipping_street"`
	ShippingNotes  string      `json:"shipping_notes,omitempty"`
	Items          []OrderItem `json:"items"`
	CreatedAt      time.Time   `json:"created_at"`
}

type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type Shipping struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
	Street string `json:"street"`
	Notes  string `json:"notes,omitempty"`
}

type CreateOrderRequest struct {
	Items         []OrderLine `json:"items"`
	Shipping      Shipping    `json:"shipping"`
	PaymentMethod string      `json:"payment_method"`
}
