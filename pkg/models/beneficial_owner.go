package models

import "github.com/aussiebroadwan/dwolla/pkg/hal"

// BeneficialOwner is an owner of a verified business customer.
type BeneficialOwner struct {
	hal.Resource
	ID                 string                `json:"id"`
	FirstName          string                `json:"firstName"`
	LastName           string                `json:"lastName"`
	Address            *InternationalAddress `json:"address,omitempty"`
	VerificationStatus VerificationStatus    `json:"verificationStatus"`
}

func (BeneficialOwner) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":                 hal.Copy(),
		"firstName":          hal.Copy(),
		"lastName":           hal.Copy(),
		"address":            hal.Nested(internationalAddressSchema),
		"verificationStatus": hal.Enum(verificationStatuses...),
	})
}

type BeneficialOwners struct {
	hal.Resource
	Embedded struct {
		BeneficialOwners []BeneficialOwner `json:"beneficial-owners"`
	} `json:"_embedded"`
	Total int `json:"total"`
}

func (BeneficialOwners) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"beneficial-owners": hal.Each(BeneficialOwner{}.Schema())}),
		"total":     hal.Copy(),
	})
}

// CreateBeneficialOwner is the body for adding an owner to a customer.
type CreateBeneficialOwner struct {
	FirstName   string               `json:"firstName"`
	LastName    string               `json:"lastName"`
	SSN         string               `json:"ssn,omitempty"`
	DateOfBirth DateOfBirth          `json:"dateOfBirth"`
	Address     InternationalAddress `json:"address"`
	Passport    *Passport            `json:"passport,omitempty"`
}

// UpdateBeneficialOwner is a partial update; nil and empty fields are not sent.
type UpdateBeneficialOwner struct {
	FirstName   string                `json:"firstName,omitempty"`
	LastName    string                `json:"lastName,omitempty"`
	SSN         string                `json:"ssn,omitempty"`
	DateOfBirth *DateOfBirth          `json:"dateOfBirth,omitempty"`
	Address     *InternationalAddress `json:"address,omitempty"`
	Passport    *Passport             `json:"passport,omitempty"`
}
