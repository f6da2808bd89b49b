package models

import "github.com/aussiebroadwan/dwolla/pkg/hal"

type IndustryClassification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var industryClassificationSchema = hal.Schema{
	"id":   hal.Copy(),
	"name": hal.Copy(),
}

// BusinessClassification groups industry classifications. The id of an
// industry classification is what customers are created with.
type BusinessClassification struct {
	hal.Resource
	Embedded struct {
		IndustryClassifications []IndustryClassification `json:"industry-classifications"`
	} `json:"_embedded"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (BusinessClassification) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"industry-classifications": hal.Each(industryClassificationSchema)}),
		"id":        hal.Copy(),
		"name":      hal.Copy(),
	})
}

type BusinessClassifications struct {
	hal.Resource
	Embedded struct {
		BusinessClassifications []BusinessClassification `json:"business-classifications"`
	} `json:"_embedded"`
	Total int `json:"total"`
}

func (BusinessClassifications) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"business-classifications": hal.Each(BusinessClassification{}.Schema())}),
		"total":     hal.Copy(),
	})
}
