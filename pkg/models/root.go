package models

import "github.com/aussiebroadwan/dwolla/pkg/hal"

// Root is the API entry point; it only carries links (account, customers, ...).
type Root struct {
	hal.Resource
}

func (Root) Schema() hal.Schema { return hal.WithLinks(hal.Schema{}) }

// Created is the body of a 201 response when Location is not followed.
type Created struct {
	hal.Resource
}

func (Created) Schema() hal.Schema { return hal.WithLinks(hal.Schema{}) }
