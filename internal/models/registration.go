package models

// Registration carries the inputs of the register operation. Password is
// optional; the service substitutes the default demo credential when empty.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Password  string `json:"password,omitempty"`
}
