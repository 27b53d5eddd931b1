// Package tenant defines the corporate tenant model: the unit of credit
// and cart ownership.
package tenant

import (
	"errors"
	"net/mail"
	"regexp"
	"time"
)

// Address is a postal address attached to a tenant.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// Tenant is a corporate organization account. CreditLimit and CreditUsed
// are in minor currency units; CreditUsed <= CreditLimit must hold after
// every committed mutation.
type Tenant struct {
	ID                string    `json:"id"`
	CompanyLegalName  string    `json:"company_legal_name"`
	EmployeeCount     string    `json:"employee_count"`
	AdminName         string    `json:"admin_name"`
	AdminEmail        string    `json:"admin_email"`
	AdminContact      string    `json:"admin_contact"`
	Address           Address   `json:"address"`
	BillingAddresses  []Address `json:"billing_addresses"`
	DeliveryAddresses []Address `json:"delivery_addresses"`
	CreditLimit       int64     `json:"credit_limit"`
	CreditUsed        int64     `json:"credit_used"`
	Verified          bool      `json:"verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreditAvailable returns the remaining spending headroom.
func (t *Tenant) CreditAvailable() int64 {
	return t.CreditLimit - t.CreditUsed
}

// RegisterRequest holds the fields required to register a corporate tenant
// together with its admin user.
type RegisterRequest struct {
	CompanyLegalName  string    `json:"company_legal_name"`
	EmployeeCount     string    `json:"employee_count"`
	AdminName         string    `json:"admin_name"`
	AdminEmail        string    `json:"admin_email"`
	AdminContact      string    `json:"admin_contact"`
	Address           Address   `json:"address"`
	BillingAddresses  []Address `json:"billing_addresses"`
	DeliveryAddresses []Address `json:"delivery_addresses"`
}

var contactRegex = regexp.MustCompile(`^\d{10}$`)

// Validate checks that the RegisterRequest has all required fields.
func (r *RegisterRequest) Validate() error {
	if r.CompanyLegalName == "" {
		return errors.New("company_legal_name is required")
	}
	if r.EmployeeCount == "" {
		return errors.New("employee_count is required")
	}
	if r.AdminName == "" {
		return errors.New("admin_name is required")
	}
	if _, err := mail.ParseAddress(r.AdminEmail); err != nil {
		return errors.New("invalid admin_email format")
	}
	if !contactRegex.MatchString(r.AdminContact) {
		return errors.New("admin_contact must be a 10-digit number")
	}
	if r.Address.Line1 == "" {
		return errors.New("address.line1 is required")
	}
	if len(r.BillingAddresses) == 0 {
		return errors.New("at least one billing address is required")
	}
	if len(r.DeliveryAddresses) == 0 {
		return errors.New("at least one delivery address is required")
	}
	return nil
}
