// Package models holds the Dwolla resources returned by the API, each with
// the hal.Schema used to project raw bodies into it, plus the request bodies
// accepted by the endpoint wrappers in package api.
package models
