package entity

import "time"

// Product representa un producto del ciclo de vida PLM.
// ID es interno (uuid); ProductCode es la llave de negocio única que ve el cliente.
type Product struct {
	ID          string        `db:"id"`
	ProductCode string        `db:"product_id"`
	Name        string        `db:"name"`
	Description string        `db:"description"`
	Category    string        `db:"category"`
	Status      ProductStatus `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// ProductFilter filtros opcionales para el listado de productos.
type ProductFilter struct {
	Category string // coincidencia exacta
	Search   string // subcadena en nombre o descripción, sin distinguir mayúsculas
}
