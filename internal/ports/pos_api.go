package ports

import (
	"context"

	"github.com/zolbooo/ebarimt/internal/domain"
)

// PosAPI is the transport to the local fiscal service. Every method performs exactly one
// network call. A returned error is always a transport failure; service-reported failures
// come back as data with Success=false.
type PosAPI interface {
	CheckAPI(ctx context.Context) (domain.CheckAPIResult, error)
	SendData(ctx context.Context) (domain.SendDataResult, error)
	GetInformation(ctx context.Context) (domain.PosInformation, error)
	Put(ctx context.Context, bill domain.BillPayload) (domain.PutResult, error)
	ReturnBill(ctx context.Context, req domain.ReturnBillRequest) (domain.ReturnBillResult, error)
	CallFunction(ctx context.Context, functionName string, data any) (string, error)
}
