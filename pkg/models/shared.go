package models

import (
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

// Money is an amount as a decimal string, e.g. {"value": "10.00", "currency": "USD"}.
type Money struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// USD returns a Money in US dollars.
func USD(value string) Money {
	return Money{Value: value, Currency: "USD"}
}

var moneySchema = hal.Schema{
	"value":    hal.Copy(),
	"currency": hal.Copy(),
}

type USAddress struct {
	Address1   string  `json:"address1"`
	Address2   string  `json:"address2,omitempty"`
	City       string  `json:"city"`
	State      USState `json:"state"`
	PostalCode string  `json:"postalCode"`
}

var usAddressSchema = hal.Schema{
	"address1":   hal.Copy(),
	"address2":   hal.Copy(),
	"city":       hal.Copy(),
	"state":      hal.Enum(usStates...),
	"postalCode": hal.Copy(),
}

// InternationalAddress is used for controllers and beneficial owners.
type InternationalAddress struct {
	Address1            string `json:"address1"`
	Address2            string `json:"address2,omitempty"`
	Address3            string `json:"address3,omitempty"`
	City                string `json:"city"`
	StateProvinceRegion string `json:"stateProvinceRegion"`
	PostalCode          string `json:"postalCode,omitempty"`
	Country             string `json:"country"`
}

var internationalAddressSchema = hal.Schema{
	"address1":            hal.Copy(),
	"address2":            hal.Copy(),
	"address3":            hal.Copy(),
	"city":                hal.Copy(),
	"stateProvinceRegion": hal.Copy(),
	"postalCode":          hal.Copy(),
	"country":             hal.Copy(),
}

type Passport struct {
	Number  string `json:"number,omitempty"`
	Country string `json:"country,omitempty"`
}

// DateOfBirth is sent as YYYY-MM-DD.
type DateOfBirth struct {
	Year  int
	Month int
	Day   int
}

func (d DateOfBirth) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d DateOfBirth) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateOfBirth) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	_, err := fmt.Sscanf(s, "%4d-%2d-%2d", &d.Year, &d.Month, &d.Day)
	return err
}
