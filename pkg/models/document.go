package models

import (
	"io"
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

// Document is an identity document uploaded for a customer or beneficial owner.
type Document struct {
	hal.Resource
	ID                         string                     `json:"id"`
	Type                       DocumentType               `json:"type"`
	Status                     DocumentStatus             `json:"status"`
	DocumentVerificationStatus DocumentVerificationStatus `json:"documentVerificationStatus"`
	Created                    time.Time                  `json:"created"`
	FailureReason              string                     `json:"failureReason,omitempty"`
	AllFailureReasons          []DocumentFailure          `json:"allFailureReasons,omitempty"`
}

type DocumentFailure struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

func (Document) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":                         hal.Copy(),
		"type":                       hal.Enum(documentTypes...),
		"status":                     hal.Enum(documentStatuses...),
		"documentVerificationStatus": hal.Enum(documentVerificationStatuses...),
		"created":                    hal.Time(),
		"failureReason":              hal.Copy(),
		"allFailureReasons": hal.Each(hal.Schema{
			"reason":      hal.Copy(),
			"description": hal.Copy(),
		}),
	})
}

type Documents struct {
	hal.Resource
	Embedded struct {
		Documents []Document `json:"documents"`
	} `json:"_embedded"`
	Total int `json:"total"`
}

func (Documents) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"documents": hal.Each(Document{}.Schema())}),
		"total":     hal.Copy(),
	})
}

// CreateDocument is uploaded as multipart form data.
type CreateDocument struct {
	DocumentType DocumentType
	Filename     string
	File         io.Reader
}
