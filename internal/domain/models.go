package domain

import "time"

// StatusPending is the only order status; orders never leave it.
const StatusPending = "pendiente"

type Product struct {
	ID     int      `json:"id"`
	Brand  string   `json:"marca"`
	Name   string   `json:"nombre"`
	Price  float64  `json:"precio"`
	Images []string `json:"imagenes"`
}

// PrimaryImage is the first image reference, or "" for a product without images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CartLine snapshots the product's display fields at add time.
type CartLine struct {
	ProductID int     `json:"id"`
	Name      string  `json:"nombre"`
	Brand     string  `json:"marca"`
	Price     float64 `json:"precio"`
	Image     string  `json:"imagen"`
	Qty       int     `json:"cantidad"`
}

type Customer struct {
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`
	City  string `json:"ciudad"`
}

type OrderLine struct {
	ProductID int     `json:"id_producto"`
	Qty       int     `json:"cantidad"`
	UnitPrice float64 `json:"precio_unitario"`
}

type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"fecha"`
	Customer  Customer    `json:"cliente"`
	Lines     []OrderLine `json:"productos"`
	Status    string      `json:"estado"` // always StatusPending
}

// Document is the catalog source as served from data.json.
type Document struct {
	Products []Product `json:"productos"`
	Orders   []Order   `json:"pedidos"`
}
