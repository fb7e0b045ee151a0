package models

// Customer is a soft-deduped identity: looked up by canonical phone before
// insert, created on first unseen phone. Uniqueness is best-effort only:
// there is no DB constraint, so concurrent intakes can still create twins.
type Customer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:200;not null" json:"name"`
	Phone   string `gorm:"size:50;index" json:"phone,omitempty"`
	Address string `gorm:"type:text" json:"address,omitempty"`
}

func (Customer) TableName() string { return "customers" }
