package models

import (
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

// Account is a Dwolla master account.
type Account struct {
	hal.Resource
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Address        *USAddress  `json:"address,omitempty"`
	TimezoneOffset float64     `json:"timezoneOffset,omitempty"`
	Type           AccountType `json:"type,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Website        string      `json:"website,omitempty"`
	AuthorizedRep  string      `json:"authorizedRep,omitempty"`
	Created        time.Time   `json:"created"`
}

func (Account) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":             hal.Copy(),
		"name":           hal.Copy(),
		"address":        hal.Nested(usAddressSchema),
		"timezoneOffset": hal.Copy(),
		"type":           hal.Enum(accountTypes...),
		"phone":          hal.Copy(),
		"website":        hal.Copy(),
		"authorizedRep":  hal.Copy(),
		"created":        hal.Time(),
	})
}
