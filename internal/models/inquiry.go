package models

type ContactInquiry struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type ExportInquiry struct {
	CompanyName string `json:"company_name" binding:"required"`
	ContactName string `json:"contact_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Products    string `json:"products" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	Message     string `json:"message"`
}

type DistributorInquiry struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Location     string `json:"location" binding:"required"`
	BusinessType string `json:"business_type" binding:"required"`
	Message      string `json:"message"`
}
