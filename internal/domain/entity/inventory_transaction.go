package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeIn         = "in"         // entrada (recepción)
	TransactionTypeOut        = "out"        // salida (emisión)
	TransactionTypeTransfer   = "transfer"   // traslado entre ubicaciones
	TransactionTypeAdjustment = "adjustment" // ajuste por conteo cíclico
)

// Direcciones para ajustes. Para in/out/transfer la dirección está implícita en el tipo.
const (
	DirectionIncrease int16 = 1
	DirectionDecrease int16 = -1
)

// InventoryTransaction es una entrada del ledger: inmutable una vez escrita,
// sin camino de UPDATE ni DELETE. Quantity es siempre una magnitud positiva;
// el signo efectivo lo dan el tipo y, en ajustes, Direction.
// Un traslado produce UNA sola fila con LocationID (origen) y ToLocationID (destino).
type InventoryTransaction struct {
	ID           string
	Type         string
	PartID       string
	LocationID   string
	ToLocationID *string // solo para transfer
	Quantity     int64
	Direction    int16 // -1 solo en ajustes que restan; +1 en el resto
	Reference    string
	WorkOrderID  *string // solo cuando el movimiento consume contra una orden
	CreatedByID  string
	CreatedAt    time.Time
}

// SignedQuantity devuelve el efecto de la transacción sobre su ubicación primaria
// (origen en traslados). Usado para reconstruir saldos desde el ledger.
func (t *InventoryTransaction) SignedQuantity() int64 {
	switch t.Type {
	case TransactionTypeIn:
		return t.Quantity
	case TransactionTypeOut, TransactionTypeTransfer:
		return -t.Quantity
	case TransactionTypeAdjustment:
		return int64(t.Direction) * t.Quantity
	}
	return 0
}
