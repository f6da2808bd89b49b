package models

import "slices"

type CustomerType string

const (
	CustomerTypeBusiness          CustomerType = "business"
	CustomerTypeBusinessNoBalance CustomerType = "business-no-balance"
	CustomerTypePersonal          CustomerType = "personal"
	CustomerTypePersonalNoBalance CustomerType = "personal-no-balance"
	CustomerTypeReceiveOnly       CustomerType = "receive-only"
	CustomerTypeUnverified        CustomerType = "unverified"
)

var customerTypes = []CustomerType{
	CustomerTypeBusiness, CustomerTypeBusinessNoBalance, CustomerTypePersonal,
	CustomerTypePersonalNoBalance, CustomerTypeReceiveOnly, CustomerTypeUnverified,
}

func (t CustomerType) Valid() bool { return slices.Contains(customerTypes, t) }

type CustomerStatus string

const (
	CustomerStatusDeactivated CustomerStatus = "deactivated"
	CustomerStatusDocument    CustomerStatus = "document"
	CustomerStatusRetry       CustomerStatus = "retry"
	CustomerStatusSuspended   CustomerStatus = "suspended"
	CustomerStatusUnverified  CustomerStatus = "unverified"
	CustomerStatusVerified    CustomerStatus = "verified"
)

var customerStatuses = []CustomerStatus{
	CustomerStatusDeactivated, CustomerStatusDocument, CustomerStatusRetry,
	CustomerStatusSuspended, CustomerStatusUnverified, CustomerStatusVerified,
}

func (s CustomerStatus) Valid() bool { return slices.Contains(customerStatuses, s) }

type BusinessType string

const (
	BusinessTypeCorporation        BusinessType = "CORPORATION"
	BusinessTypeLLC                BusinessType = "LLC"
	BusinessTypePartnership        BusinessType = "PARTNERSHIP"
	BusinessTypeSoleProprietorship BusinessType = "SOLE_PROPRIETORSHIP"
)

var businessTypes = []BusinessType{
	BusinessTypeCorporation, BusinessTypeLLC, BusinessTypePartnership, BusinessTypeSoleProprietorship,
}

func (t BusinessType) Valid() bool { return slices.Contains(businessTypes, t) }

// AccountType is the kind of organization behind a master account.
type AccountType string

const (
	AccountTypeCommercial AccountType = "Commercial"
	AccountTypeGovernment AccountType = "Government"
	AccountTypePersonal   AccountType = "Personal"
	AccountTypeNonProfit  AccountType = "NonProfit"
)

var accountTypes = []AccountType{
	AccountTypeCommercial, AccountTypeGovernment, AccountTypePersonal, AccountTypeNonProfit,
}

func (t AccountType) Valid() bool { return slices.Contains(accountTypes, t) }

// VerificationStatus applies to beneficial owners.
type VerificationStatus string

const (
	VerificationStatusDocument   VerificationStatus = "document"
	VerificationStatusIncomplete VerificationStatus = "incomplete"
	VerificationStatusVerified   VerificationStatus = "verified"
)

var verificationStatuses = []VerificationStatus{
	VerificationStatusDocument, VerificationStatusIncomplete, VerificationStatusVerified,
}

func (s VerificationStatus) Valid() bool { return slices.Contains(verificationStatuses, s) }

type DocumentType string

const (
	DocumentTypeIDCard   DocumentType = "idCard"
	DocumentTypeLicense  DocumentType = "license"
	DocumentTypeOther    DocumentType = "other"
	DocumentTypePassport DocumentType = "passport"
)

var documentTypes = []DocumentType{
	DocumentTypeIDCard, DocumentTypeLicense, DocumentTypeOther, DocumentTypePassport,
}

func (t DocumentType) Valid() bool { return slices.Contains(documentTypes, t) }

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusReviewed DocumentStatus = "reviewed"
)

var documentStatuses = []DocumentStatus{DocumentStatusPending, DocumentStatusReviewed}

func (s DocumentStatus) Valid() bool { return slices.Contains(documentStatuses, s) }

type DocumentVerificationStatus string

const (
	DocumentVerificationAccepted DocumentVerificationStatus = "accepted"
	DocumentVerificationPending  DocumentVerificationStatus = "pending"
	DocumentVerificationRejected DocumentVerificationStatus = "rejected"
)

var documentVerificationStatuses = []DocumentVerificationStatus{
	DocumentVerificationAccepted, DocumentVerificationPending, DocumentVerificationRejected,
}

func (s DocumentVerificationStatus) Valid() bool {
	return slices.Contains(documentVerificationStatuses, s)
}

type FundingSourceType string

const (
	FundingSourceTypeBalance FundingSourceType = "balance"
	FundingSourceTypeBank    FundingSourceType = "bank"
	FundingSourceTypeCard    FundingSourceType = "card"
	FundingSourceTypeVirtual FundingSourceType = "virtual"
)

var fundingSourceTypes = []FundingSourceType{
	FundingSourceTypeBalance, FundingSourceTypeBank, FundingSourceTypeCard, FundingSourceTypeVirtual,
}

func (t FundingSourceType) Valid() bool { return slices.Contains(fundingSourceTypes, t) }

type FundingSourceStatus string

const (
	FundingSourceStatusUnverified FundingSourceStatus = "unverified"
	FundingSourceStatusVerified   FundingSourceStatus = "verified"
)

var fundingSourceStatuses = []FundingSourceStatus{FundingSourceStatusUnverified, FundingSourceStatusVerified}

func (s FundingSourceStatus) Valid() bool { return slices.Contains(fundingSourceStatuses, s) }

type BankAccountType string

const (
	BankAccountChecking      BankAccountType = "checking"
	BankAccountGeneralLedger BankAccountType = "general-ledger"
	BankAccountLoan          BankAccountType = "loan"
	BankAccountSavings       BankAccountType = "savings"
)

var bankAccountTypes = []BankAccountType{
	BankAccountChecking, BankAccountGeneralLedger, BankAccountLoan, BankAccountSavings,
}

func (t BankAccountType) Valid() bool { return slices.Contains(bankAccountTypes, t) }

type ProcessingChannel string

const (
	ChannelACH              ProcessingChannel = "ach"
	ChannelRealTimePayments ProcessingChannel = "real-time-payments"
	ChannelWire             ProcessingChannel = "wire"
)

var processingChannels = []ProcessingChannel{ChannelACH, ChannelRealTimePayments, ChannelWire}

func (c ProcessingChannel) Valid() bool { return slices.Contains(processingChannels, c) }

type MicroDepositsStatus string

const (
	MicroDepositsFailed    MicroDepositsStatus = "failed"
	MicroDepositsPending   MicroDepositsStatus = "pending"
	MicroDepositsProcessed MicroDepositsStatus = "processed"
)

var microDepositsStatuses = []MicroDepositsStatus{MicroDepositsFailed, MicroDepositsPending, MicroDepositsProcessed}

func (s MicroDepositsStatus) Valid() bool { return slices.Contains(microDepositsStatuses, s) }

type TransferStatus string

const (
	TransferStatusCancelled TransferStatus = "cancelled"
	TransferStatusFailed    TransferStatus = "failed"
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusProcessed TransferStatus = "processed"
)

var transferStatuses = []TransferStatus{
	TransferStatusCancelled, TransferStatusFailed, TransferStatusPending, TransferStatusProcessed,
}

func (s TransferStatus) Valid() bool { return slices.Contains(transferStatuses, s) }

// USState is a two letter state or territory code.
type USState string

var usStates = []USState{
	"AL", "AK", "AS", "AZ", "AR", "CA", "CO", "CT", "DC", "DE", "FL", "GA", "GU", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "MP", "OH", "OK", "OR", "PA",
	"PR", "RI", "SC", "SD", "TN", "TX", "UM", "UT", "VT", "VI", "VA", "WA", "WV", "WI", "WY",
}

func (s USState) Valid() bool { return slices.Contains(usStates, s) }
