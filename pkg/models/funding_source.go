package models

import (
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

type FundingSource struct {
	hal.Resource
	ID              string              `json:"id"`
	Status          FundingSourceStatus `json:"status"`
	Type            FundingSourceType   `json:"type"`
	BankAccountType BankAccountType     `json:"bankAccountType,omitempty"`
	Name            string              `json:"name"`
	Created         time.Time           `json:"created"`
	Balance         *Money              `json:"balance,omitempty"`
	Removed         bool                `json:"removed"`
	Channels        []ProcessingChannel `json:"channels,omitempty"`
	BankName        string              `json:"bankName,omitempty"`
	Fingerprint     string              `json:"fingerprint,omitempty"`
	CardDetails     *CardDetails        `json:"cardDetails,omitempty"`
}

type CardDetails struct {
	Brand           string `json:"brand"`
	LastFour        string `json:"lastFour"`
	ExpirationMonth int    `json:"expirationMonth"`
	ExpirationYear  int    `json:"expirationYear"`
	NameOnCard      string `json:"nameOnCard"`
}

func (FundingSource) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":              hal.Copy(),
		"status":          hal.Enum(fundingSourceStatuses...),
		"type":            hal.Enum(fundingSourceTypes...),
		"bankAccountType": hal.Enum(bankAccountTypes...),
		"name":            hal.Copy(),
		"created":         hal.Time(),
		"balance":         hal.Nested(moneySchema),
		"removed":         hal.Copy(),
		"channels":        hal.Transform(knownChannels),
		"bankName":        hal.Copy(),
		"fingerprint":     hal.Copy(),
		"cardDetails": hal.Nested(hal.Schema{
			"brand":           hal.Copy(),
			"lastFour":        hal.Copy(),
			"expirationMonth": hal.Copy(),
			"expirationYear":  hal.Copy(),
			"nameOnCard":      hal.Copy(),
		}),
	})
}

// knownChannels keeps the channel names this client understands.
func knownChannels(v any) any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && ProcessingChannel(s).Valid() {
			out = append(out, s)
		}
	}
	return out
}

type FundingSources struct {
	hal.Resource
	Embedded struct {
		FundingSources []FundingSource `json:"funding-sources"`
	} `json:"_embedded"`
}

func (FundingSources) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"funding-sources": hal.Each(FundingSource{}.Schema())}),
	})
}

type FundingSourceBalance struct {
	hal.Resource
	Balance     *Money    `json:"balance,omitempty"`
	Total       *Money    `json:"total,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (FundingSourceBalance) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"balance":     hal.Nested(moneySchema),
		"total":       hal.Nested(moneySchema),
		"lastUpdated": hal.Time(),
	})
}

// ACHRouting exposes the account and routing numbers of a balance.
type ACHRouting struct {
	hal.Resource
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
}

func (ACHRouting) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"accountNumber": hal.Copy(),
		"routingNumber": hal.Copy(),
	})
}

// FundingSourceToken is a single-use token for the drop-in UI components.
type FundingSourceToken struct {
	hal.Resource
	Token string `json:"token"`
}

func (FundingSourceToken) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{"token": hal.Copy()})
}

type MicroDeposits struct {
	hal.Resource
	Created time.Time           `json:"created"`
	Status  MicroDepositsStatus `json:"status"`
	Failure *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"failure,omitempty"`
}

func (MicroDeposits) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"created": hal.Time(),
		"status":  hal.Enum(microDepositsStatuses...),
		"failure": hal.Nested(hal.Schema{"code": hal.Copy(), "description": hal.Copy()}),
	})
}

// ============================================================================
// Request bodies
// ============================================================================

type CreateBankFundingSource struct {
	Links           map[string]hal.Link `json:"_links,omitempty"`
	RoutingNumber   string              `json:"routingNumber"`
	AccountNumber   string              `json:"accountNumber"`
	BankAccountType BankAccountType     `json:"bankAccountType"`
	Name            string              `json:"name"`
	PlaidToken      string              `json:"plaidToken,omitempty"`
	Channels        []ProcessingChannel `json:"channels,omitempty"`
}

type CreateVirtualFundingSource struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	BankAccountType BankAccountType `json:"bankAccountType"`
}

type UpdateFundingSource struct {
	Name            string          `json:"name,omitempty"`
	BankAccountType BankAccountType `json:"bankAccountType,omitempty"`
	RoutingNumber   string          `json:"routingNumber,omitempty"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
}

type VerifyMicroDeposits struct {
	Amount1 Money `json:"amount1"`
	Amount2 Money `json:"amount2"`
}
