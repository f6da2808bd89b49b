package models

import (
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

// Customer is a Dwolla customer record.
type Customer struct {
	hal.Resource
	ID                     string              `json:"id"`
	FirstName              string              `json:"firstName"`
	LastName               string              `json:"lastName"`
	Email                  string              `json:"email,omitempty"`
	Type                   CustomerType        `json:"type"`
	Status                 CustomerStatus      `json:"status"`
	Created                time.Time           `json:"created"`
	Address1               string              `json:"address1,omitempty"`
	Address2               string              `json:"address2,omitempty"`
	City                   string              `json:"city,omitempty"`
	State                  USState             `json:"state,omitempty"`
	PostalCode             string              `json:"postalCode,omitempty"`
	Phone                  string              `json:"phone,omitempty"`
	BusinessName           string              `json:"businessName,omitempty"`
	DoingBusinessAs        string              `json:"doingBusinessAs,omitempty"`
	Website                string              `json:"website,omitempty"`
	CorrelationID          string              `json:"correlationId,omitempty"`
	Controller             *CustomerController `json:"controller,omitempty"`
	BusinessType           BusinessType        `json:"businessType,omitempty"`
	BusinessClassification string              `json:"businessClassification,omitempty"`
}

// CustomerController is the controller of a verified business.
type CustomerController struct {
	FirstName string                `json:"firstName"`
	LastName  string                `json:"lastName"`
	Title     string                `json:"title"`
	Address   *InternationalAddress `json:"address,omitempty"`
}

var customerControllerSchema = hal.Schema{
	"firstName": hal.Copy(),
	"lastName":  hal.Copy(),
	"title":     hal.Copy(),
	"address":   hal.Nested(internationalAddressSchema),
}

func (Customer) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":                     hal.Copy(),
		"firstName":              hal.Copy(),
		"lastName":               hal.Copy(),
		"email":                  hal.Copy(),
		"type":                   hal.Enum(customerTypes...),
		"status":                 hal.Enum(customerStatuses...),
		"created":                hal.Time(),
		"address1":               hal.Copy(),
		"address2":               hal.Copy(),
		"city":                   hal.Copy(),
		"state":                  hal.Enum(usStates...),
		"postalCode":             hal.Copy(),
		"phone":                  hal.Copy(),
		"businessName":           hal.Copy(),
		"doingBusinessAs":        hal.Copy(),
		"website":                hal.Copy(),
		"correlationId":          hal.Copy(),
		"controller":             hal.Nested(customerControllerSchema),
		"businessType":           hal.Enum(businessTypes...),
		"businessClassification": hal.Copy(),
	})
}

// Customers is a page of customers.
type Customers struct {
	hal.Resource
	Embedded struct {
		Customers []Customer `json:"customers"`
	} `json:"_embedded"`
	Total int `json:"total"`
}

func (Customers) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"customers": hal.Each(Customer{}.Schema())}),
		"total":     hal.Copy(),
	})
}

// ============================================================================
// Request bodies
// ============================================================================

// CreateUnverifiedCustomer creates an unverified or receive-only customer.
type CreateUnverifiedCustomer struct {
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Email         string       `json:"email"`
	Type          CustomerType `json:"type,omitempty"`
	BusinessName  string       `json:"businessName,omitempty"`
	IPAddress     string       `json:"ipAddress,omitempty"`
	CorrelationID string       `json:"correlationId,omitempty"`
}

// CreateVerifiedPersonalCustomer creates a verified personal customer.
type CreateVerifiedPersonalCustomer struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	Type        CustomerType `json:"type"`
	Address1    string       `json:"address1"`
	Address2    string       `json:"address2,omitempty"`
	City        string       `json:"city"`
	State       USState      `json:"state"`
	PostalCode  string       `json:"postalCode"`
	DateOfBirth DateOfBirth  `json:"dateOfBirth"`
	SSN         string       `json:"ssn"`
	Phone       string       `json:"phone,omitempty"`
	IPAddress   string       `json:"ipAddress,omitempty"`
}

// ControllerInput describes the controller of a verified business.
type ControllerInput struct {
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	Title       string               `json:"title"`
	Address     InternationalAddress `json:"address"`
	DateOfBirth DateOfBirth          `json:"dateOfBirth"`
	SSN         string               `json:"ssn,omitempty"`
	Passport    *Passport            `json:"passport,omitempty"`
}

// CreateVerifiedBusinessCustomer creates a verified business customer.
type CreateVerifiedBusinessCustomer struct {
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	Email                  string          `json:"email"`
	Type                   CustomerType    `json:"type"`
	Address1               string          `json:"address1"`
	Address2               string          `json:"address2,omitempty"`
	City                   string          `json:"city"`
	State                  USState         `json:"state"`
	PostalCode             string          `json:"postalCode"`
	BusinessType           BusinessType    `json:"businessType"`
	BusinessClassification string          `json:"businessClassification"`
	BusinessName           string          `json:"businessName"`
	DoingBusinessAs        string          `json:"doingBusinessAs,omitempty"`
	EIN                    string          `json:"ein"`
	Controller             ControllerInput `json:"controller"`
	IPAddress              string          `json:"ipAddress,omitempty"`
	Phone                  string          `json:"phone,omitempty"`
	Website                string          `json:"website,omitempty"`
}

// CreateVerifiedSolePropCustomer creates a verified sole proprietorship.
type CreateVerifiedSolePropCustomer struct {
	FirstName              string       `json:"firstName"`
	LastName               string       `json:"lastName"`
	Email                  string       `json:"email"`
	Type                   CustomerType `json:"type"`
	Address1               string       `json:"address1"`
	Address2               string       `json:"address2,omitempty"`
	City                   string       `json:"city"`
	State                  USState      `json:"state"`
	PostalCode             string       `json:"postalCode"`
	DateOfBirth            DateOfBirth  `json:"dateOfBirth"`
	SSN                    string       `json:"ssn"`
	BusinessType           BusinessType `json:"businessType"`
	BusinessClassification string       `json:"businessClassification"`
	BusinessName           string       `json:"businessName"`
	DoingBusinessAs        string       `json:"doingBusinessAs,omitempty"`
	EIN                    string       `json:"ein,omitempty"`
	IPAddress              string       `json:"ipAddress,omitempty"`
	Phone                  string       `json:"phone,omitempty"`
	Website                string       `json:"website,omitempty"`
}

// UpdateCustomer carries the fields that may change on an existing
// customer. Empty fields are not sent.
type UpdateCustomer struct {
	Email      string         `json:"email,omitempty"`
	Address1   string         `json:"address1,omitempty"`
	Address2   string         `json:"address2,omitempty"`
	City       string         `json:"city,omitempty"`
	State      USState        `json:"state,omitempty"`
	PostalCode string         `json:"postalCode,omitempty"`
	Phone      string         `json:"phone,omitempty"`
	Status     CustomerStatus `json:"status,omitempty"`
}

// ListCustomersQuery filters a customer listing.
type ListCustomersQuery struct {
	Limit  int
	Offset int
	Search string
	Status []CustomerStatus
}
