package domain

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"userId"`
	Total       float64     `db:"total" json:"total"`
	ShippingFee float64     `db:"shipping_fee" json:"shippingFee"`
	Status      OrderStatus `db:"status" json:"status"`
	CreatedAt   string      `db:"created_at" json:"createdAt"`
	UpdatedAt   string      `db:"updated_at" json:"updatedAt,omitempty"`
	UpdatedBy   string      `db:"updated_by" json:"updatedBy,omitempty"`
	IsDeleted   bool        `db:"is_deleted" json:"-"`

	Items []OrderItem `db:"-" json:"items"`
	User  *UserRef    `db:"-" json:"user,omitempty"`
}

type OrderItem struct {
	ID        string  `db:"id" json:"id"`
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	Product   struct {
		Name string `db:"name" json:"name"`
	} `db:"product" json:"product"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DailyRevenue struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type Stats struct {
	ProductCount  int            `json:"productCount"`
	CategoryCount int            `json:"categoryCount"`
	OrderCount    int            `json:"orderCount"`
	TotalRevenue  float64        `json:"totalRevenue"`
	PendingOrders int            `json:"pendingOrders"`
	DailyRevenue  []DailyRevenue `json:"dailyRevenue"`
	RangeLabel    string         `json:"rangeLabel"`
}
