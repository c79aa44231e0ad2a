package domain

import (
	"encoding/json"
)

const (
	BillTypeCitizen      BillType = "1"
	BillTypeOrganization BillType = "3"
)

const (
	TaxTypeVATAble  TaxType = "1"
	TaxTypeVATFree  TaxType = "2"
	TaxTypeZeroRate TaxType = "3"
)

type (
	BillType string

	TaxType string

	// BillPayload is a payload accepted by the /put endpoint. It is sent as is.
	BillPayload interface {
		isBillPayload()
	}

	Stock struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		MeasureUnit string `json:"measureUnit"`
		Qty         string `json:"qty"`
		UnitPrice   string `json:"unitPrice"`
		TotalAmount string `json:"totalAmount"`
		CityTax     string `json:"cityTax"`
		VAT         string `json:"vat"`
		BarCode     string `json:"barCode,omitempty"`
	}

	BankTransaction struct {
		RRN          string `json:"rrn"`
		BankID       string `json:"bankId"`
		TerminalID   string `json:"terminalId"`
		ApprovalCode string `json:"approvalCode"`
		Amount       string `json:"amount"`
	}

	Bill struct {
		Amount           string            `json:"amount"`
		VAT              string            `json:"vat"`
		CashAmount       string            `json:"cashAmount"`
		NonCashAmount    string            `json:"nonCashAmount"`
		CityTax          string            `json:"cityTax"`
		DistrictCode     string            `json:"districtCode"`
		PosNo            string            `json:"posNo,omitempty"`
		CustomerNo       string            `json:"customerNo,omitempty"`
		BillType         BillType          `json:"billType"`
		BillIDSuffix     string            `json:"billIdSuffix,omitempty"`
		ReturnBillID     string            `json:"returnBillId,omitempty"`
		TaxType          TaxType           `json:"taxType,omitempty"`
		InvoiceID        string            `json:"invoiceId,omitempty"`
		ReportMonth      string            `json:"reportMonth,omitempty"`
		BranchNo         string            `json:"branchNo,omitempty"`
		Stocks           []Stock           `json:"stocks"`
		BankTransactions []BankTransaction `json:"bankTransactions,omitempty"`
	}

	// BatchBill groups several bills into one registration. It always marshals with group=true.
	BatchBill struct {
		Amount        string   `json:"amount"`
		VAT           string   `json:"vat"`
		CashAmount    string   `json:"cashAmount"`
		NonCashAmount string   `json:"nonCashAmount"`
		CityTax       string   `json:"cityTax"`
		DistrictCode  string   `json:"districtCode"`
		PosNo         string   `json:"posNo,omitempty"`
		CustomerNo    string   `json:"customerNo,omitempty"`
		BillType      BillType `json:"billType"`
		BranchNo      string   `json:"branchNo,omitempty"`
		Bills         []Bill   `json:"bills"`
	}

	// RawBill is a pre-encoded JSON bill, forwarded byte for byte.
	RawBill json.RawMessage
)

func (Bill) isBillPayload() {}

func (BatchBill) isBillPayload() {}

func (RawBill) isBillPayload() {}

func (b BatchBill) MarshalJSON() ([]byte, error) {
	type batchBill BatchBill

	return json.Marshal(struct {
		Group bool `json:"group"`
		batchBill
	}{
		Group:     true,
		batchBill: batchBill(b),
	})
}

func (b RawBill) MarshalJSON() ([]byte, error) {
	if len(b) == 0 {
		return []byte("null"), nil
	}

	return b, nil
}
