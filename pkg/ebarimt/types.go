package ebarimt

import (
	"github.com/zolbooo/ebarimt/internal/domain"
)

type (
	ServiceStatus    = domain.ServiceStatus
	CheckAPIResult   = domain.CheckAPIResult
	InitOutcome      = domain.InitOutcome
	InitFailureCause = domain.InitFailureCause

	ErrorCode        = domain.ErrorCode
	SendDataResult   = domain.SendDataResult
	ReturnBillResult = domain.ReturnBillResult
	PutResult        = domain.PutResult
	Receipt          = domain.Receipt

	BillPayload       = domain.BillPayload
	Bill              = domain.Bill
	BatchBill         = domain.BatchBill
	RawBill           = domain.RawBill
	Stock             = domain.Stock
	BankTransaction   = domain.BankTransaction
	BillType          = domain.BillType
	TaxType           = domain.TaxType
	BillDate          = domain.BillDate
	ReturnBillRequest = domain.ReturnBillRequest

	PosInformation = domain.PosInformation
	ExtraInfo      = domain.ExtraInfo
	MerchantInfo   = domain.MerchantInfo

	TransportError = domain.TransportError
)

const (
	CauseNone         = domain.CauseNone
	CauseInitialCheck = domain.CauseInitialCheck
	CauseResync       = domain.CauseResync

	BillTypeCitizen      = domain.BillTypeCitizen
	BillTypeOrganization = domain.BillTypeOrganization

	TaxTypeVATAble  = domain.TaxTypeVATAble
	TaxTypeVATFree  = domain.TaxTypeVATFree
	TaxTypeZeroRate = domain.TaxTypeZeroRate

	BillDateLayout = domain.BillDateLayout
)

var (
	ErrTransport       = domain.ErrTransport
	ErrCircuitOpen     = domain.ErrCircuitOpen
	ErrMalformedReply  = domain.ErrMalformedReply
	ErrInvalidPayload  = domain.ErrInvalidPayload
	ErrInvalidArgument = domain.ErrInvalidArgument
)

var (
	NewBillDate   = domain.NewBillDate
	ParseBillDate = domain.ParseBillDate
)
