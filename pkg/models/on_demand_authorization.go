package models

import "github.com/aussiebroadwan/dwolla/pkg/hal"

// OnDemandAuthorization holds the text to show a user before creating a
// bank funding source with on-demand transfers.
type OnDemandAuthorization struct {
	hal.Resource
	BodyText   string `json:"bodyText"`
	ButtonText string `json:"buttonText"`
}

func (OnDemandAuthorization) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"bodyText":   hal.Copy(),
		"buttonText": hal.Copy(),
	})
}
