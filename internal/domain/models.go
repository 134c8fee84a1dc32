package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID          string   `db:"id" json:"id"`
	CategoryID  string   `db:"category_id" json:"categoryId"`
	Name        string   `db:"name" json:"name"`
	Description string   `db:"description" json:"description"`
	Price       float64  `db:"price" json:"price"`
	ColorsJSON  string   `db:"colors_json" json:"-"`
	Colors      []string `db:"-" json:"colors"`
	IsDeleted   bool     `db:"is_deleted" json:"isDeleted"`
	CreatedAt   string   `db:"created_at" json:"createdAt"`
	UpdatedAt   string   `db:"updated_at" json:"updatedAt,omitempty"`
}

// ProductDetail is a product with its category and inventory joined in.
type ProductDetail struct {
	Product
	Category  *Category  `db:"-" json:"category"`
	Inventory *Inventory `db:"-" json:"inventory"`
}

type Inventory struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Stock     int    `db:"stock" json:"stock"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

// InventoryRow is the admin listing shape.
type InventoryRow struct {
	Inventory
	Product struct {
		ID       string  `db:"id" json:"id"`
		Name     string  `db:"name" json:"name"`
		Price    float64 `db:"price" json:"price"`
		Category struct {
			Name string `db:"name" json:"name"`
		} `db:"category" json:"category"`
	} `db:"product" json:"product"`
}

type Cart struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"userId"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type CartItem struct {
	ID        string `db:"id" json:"id"`
	CartID    string `db:"cart_id" json:"cartId"`
	ProductID string `db:"product_id" json:"productId"`
	Quantity  int    `db:"quantity" json:"quantity"`
	CreatedAt string `db:"created_at" json:"createdAt,omitempty"`
}

type ProductRef struct {
	ID    string  `db:"id" json:"id"`
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
}

// CartLine is a cart item with the current product data joined in.
type CartLine struct {
	CartItem
	Product ProductRef `db:"product" json:"product"`
}

// CartView is the Get cart response; ID is empty when the user has no cart row.
type CartView struct {
	ID     string     `json:"id,omitempty"`
	UserID string     `json:"userId,omitempty"`
	Items  []CartLine `json:"items"`
}
