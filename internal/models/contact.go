package models

// ContactType distinguishes contacts, e.g. "Customer" or "Vendor".
type ContactType struct {
	Base
	Name string `gorm:"not null;index" json:"name"`
}

// Contact is a customer or vendor associated with transactions.
type Contact struct {
	Base
	Name          string `gorm:"not null;index" json:"name"`
	BusinessName  string `gorm:"index" json:"business_name"`
	Phone         string `gorm:"index" json:"phone"`
	Description   string `json:"description,omitempty"`
	ContactTypeID uint   `gorm:"not null;index" json:"contact_type_id"`
}
