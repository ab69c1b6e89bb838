package models

// OrderRecord is the wire shape returned by the production-order provider.
// The provider returns the entire current collection on each call, in no
// guaranteed order.
type OrderRecord struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	DueDate string       `json:"due_date"`
	Status  string       `json:"status"`
	Client  *OrderClient `json:"client,omitempty"`
}

// OrderClient carries the display name of the ordering client.
type OrderClient struct {
	Name string `json:"name"`
}
