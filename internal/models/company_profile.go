package models

// CompanyProfile is a singleton (id=1) used only when rendering documents.
type CompanyProfile struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	CompanyName     string  `gorm:"size:255" json:"company_name"`
	RegistrationNo  string  `gorm:"size:100" json:"registration_no,omitempty"`
	Address         string  `gorm:"type:text" json:"address,omitempty"`
	Phone           string  `gorm:"size:100" json:"phone,omitempty"`
	Email           string  `gorm:"size:200" json:"email,omitempty"`
	LogoURL         string  `gorm:"type:text" json:"logo_url,omitempty"`
	BankName        string  `gorm:"size:120" json:"bank_name,omitempty"`
	BankAccountName string  `gorm:"size:160" json:"bank_account_name,omitempty"`
	BankAccountNo   string  `gorm:"size:80" json:"bank_account_no,omitempty"`
	FooterNote      string  `gorm:"type:text" json:"footer_note,omitempty"`
	TaxLabel        string  `gorm:"size:50" json:"tax_label,omitempty"`
	TaxPercent      float64 `gorm:"type:numeric(5,2)" json:"tax_percent,omitempty"`
}

func (CompanyProfile) TableName() string { return "company_profile" }
