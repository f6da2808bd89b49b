package models

import (
	"time"

	"github.com/aussiebroadwan/dwolla/pkg/hal"
)

type Transfer struct {
	hal.Resource
	ID                string            `json:"id"`
	Status            TransferStatus    `json:"status"`
	Amount            Money             `json:"amount"`
	Created           time.Time         `json:"created"`
	Clearing          *Clearing         `json:"clearing,omitempty"`
	ACHDetails        *ACHDetails       `json:"achDetails,omitempty"`
	RTPDetails        *RTPDetails       `json:"rtpDetails,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CorrelationID     string            `json:"correlationId,omitempty"`
	IndividualACHID   string            `json:"individualAchId,omitempty"`
	ProcessingChannel *struct {
		Destination string `json:"destination,omitempty"`
	} `json:"processingChannel,omitempty"`
}

type Clearing struct {
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// ACHParty carries addenda and trace data for one side of an ACH transfer.
type ACHParty struct {
	Addenda *struct {
		Values []string `json:"values"`
	} `json:"addenda,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

type ACHDetails struct {
	Source      *ACHParty `json:"source,omitempty"`
	Destination *ACHParty `json:"destination,omitempty"`
}

type RTPDetails struct {
	Destination *struct {
		RemittanceData string `json:"remittanceData,omitempty"`
	} `json:"destination,omitempty"`
}

var achPartySchema = hal.Schema{
	"addenda": hal.Nested(hal.Schema{"values": hal.Copy()}),
	"traceId": hal.Copy(),
}

func (Transfer) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"id":       hal.Copy(),
		"status":   hal.Enum(transferStatuses...),
		"amount":   hal.Nested(moneySchema),
		"created":  hal.Time(),
		"clearing": hal.Nested(hal.Schema{"source": hal.Copy(), "destination": hal.Copy()}),
		"achDetails": hal.Nested(hal.Schema{
			"source":      hal.Nested(achPartySchema),
			"destination": hal.Nested(achPartySchema),
		}),
		"rtpDetails": hal.Nested(hal.Schema{
			"destination": hal.Nested(hal.Schema{"remittanceData": hal.Copy()}),
		}),
		"metadata":          hal.Copy(),
		"correlationId":     hal.Copy(),
		"individualAchId":   hal.Copy(),
		"processingChannel": hal.Nested(hal.Schema{"destination": hal.Copy()}),
	})
}

type Transfers struct {
	hal.Resource
	Embedded struct {
		Transfers []Transfer `json:"transfers"`
	} `json:"_embedded"`
	Total int `json:"total"`
}

func (Transfers) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"_embedded": hal.Nested(hal.Schema{"transfers": hal.Each(Transfer{}.Schema())}),
		"total":     hal.Copy(),
	})
}

// FailureReason explains a failed transfer, e.g. code R01.
type FailureReason struct {
	hal.Resource
	Code        string `json:"code"`
	Description string `json:"description"`
	Explanation string `json:"explanation"`
}

func (FailureReason) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"code":        hal.Copy(),
		"description": hal.Copy(),
		"explanation": hal.Copy(),
	})
}

type FacilitatorFee struct {
	hal.Resource
	ID      string         `json:"id"`
	Status  TransferStatus `json:"status"`
	Amount  Money          `json:"amount"`
	Created time.Time      `json:"created"`
}

type FacilitatorFees struct {
	hal.Resource
	Transactions []FacilitatorFee `json:"transactions"`
	Total        int              `json:"total"`
}

func (FacilitatorFees) Schema() hal.Schema {
	return hal.WithLinks(hal.Schema{
		"transactions": hal.Each(hal.WithLinks(hal.Schema{
			"id":      hal.Copy(),
			"status":  hal.Enum(transferStatuses...),
			"amount":  hal.Nested(moneySchema),
			"created": hal.Time(),
		})),
		"total": hal.Copy(),
	})
}

// ============================================================================
// Request bodies
// ============================================================================

type TransferFee struct {
	Links  map[string]hal.Link `json:"_links"`
	Amount Money               `json:"amount"`
}

type InitiateTransfer struct {
	Links             map[string]hal.Link `json:"_links"`
	Amount            Money               `json:"amount"`
	Metadata          map[string]string   `json:"metadata,omitempty"`
	Fees              []TransferFee       `json:"fees,omitempty"`
	Clearing          *Clearing           `json:"clearing,omitempty"`
	ACHDetails        *ACHDetails         `json:"achDetails,omitempty"`
	RTPDetails        *RTPDetails         `json:"rtpDetails,omitempty"`
	CorrelationID     string              `json:"correlationId,omitempty"`
	ProcessingChannel map[string]string   `json:"processingChannel,omitempty"`
}

// NewTransfer builds the minimal transfer body between two funding sources.
func NewTransfer(sourceHref, destinationHref string, amount Money) InitiateTransfer {
	return InitiateTransfer{
		Links: map[string]hal.Link{
			"source":      {Href: sourceHref},
			"destination": {Href: destinationHref},
		},
		Amount: amount,
	}
}

// ListTransfersQuery filters a customer's transfers.
type ListTransfersQuery struct {
	Search        string
	StartAmount   string
	EndAmount     string
	StartDate     string
	EndDate       string
	Status        TransferStatus
	CorrelationID string
	Limit         int
	Offset        int
}
