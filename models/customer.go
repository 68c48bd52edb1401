package models

// Customer maps to the `Customer` table. Refers holds the id of the customer
// who referred this one.
type Customer struct {
	ID      int64  `db:"CustomerID" json:"customer_id"`
	Name    string `db:"Cname" json:"name"`
	Email   string `db:"Email" json:"email"`
	State   string `db:"State" json:"state"`
	City    string `db:"City" json:"city"`
	Country string `db:"Country" json:"country"`
	Refers  int64  `db:"Refers" json:"refers"`
}

// CustomerRef is the id/name pair used to populate customer pickers.
type CustomerRef struct {
	ID   int64  `json:"customer_id"`
	Name string `json:"name"`
}

// Dependent is a person travelling with a customer (`TravelDependent`).
type Dependent struct {
	ID         int64  `db:"DependentID" json:"dependent_id"`
	Name       string `db:"DependentName" json:"dependent_name"`
	Age        int64  `db:"Age" json:"age"`
	Relation   string `db:"Relation" json:"relation"`
	CustomerID int64  `db:"CustomerID" json:"customer_id"`
}
