package domain

import (
	"encoding/json"
	"fmt"
)

type (
	// ErrorCode is an endpoint specific error code. PosAPI endpoints disagree on whether the
	// code is a JSON string or number, so both decode into the textual form.
	ErrorCode string

	// OperationResult is the shape of /sendData and /returnBill responses.
	OperationResult struct {
		Success   bool      `json:"success"`
		ErrorCode ErrorCode `json:"errorCode,omitempty"`
		Message   string    `json:"message,omitempty"`
	}

	SendDataResult = OperationResult

	ReturnBillResult = OperationResult

	// Receipt is the accepted bill as registered by the PosAPI.
	Receipt struct {
		Success               bool     `json:"success"`
		RegisterNo            string   `json:"registerNo"`
		BillID                string   `json:"billId"`
		Date                  string   `json:"date"`
		MacAddress            string   `json:"macAddress,omitempty"`
		InternalCode          string   `json:"internalCode,omitempty"`
		BillType              BillType `json:"billType,omitempty"`
		QRData                string   `json:"qrData"`
		Lottery               string   `json:"lottery"`
		LotteryWarningMessage string   `json:"lotteryWarningMsg,omitempty"`
	}

	// PutResult is either an accepted Receipt or a service-reported failure.
	PutResult struct {
		Success   bool      `json:"success"`
		Receipt   *Receipt  `json:"receipt,omitempty"`
		ErrorCode ErrorCode `json:"errorCode,omitempty"`
		Message   string    `json:"message,omitempty"`
	}

	ExtraInfo struct {
		CountBill int `json:"countBill"`
	}

	// PosInformation identifies the register behind the PosAPI.
	PosInformation struct {
		RegisterNo string    `json:"registerNo"`
		BranchNo   string    `json:"branchNo"`
		PosID      string    `json:"posId"`
		DBDirPath  string    `json:"dbDirPath"`
		ExtraInfo  ExtraInfo `json:"extraInfo"`
	}

	// MerchantInfo is the organization metadata held by the merchant registry.
	MerchantInfo struct {
		Name        string `json:"name"`
		VATPayer    bool   `json:"vatPayer"`
		CityPayer   bool   `json:"cityPayer"`
		FreeProject bool   `json:"freeProject"`
	}
)

func (c *ErrorCode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*c = ErrorCode(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("error code must be a string or a number, got %s", string(data))
	}

	*c = ErrorCode(n.String())

	return nil
}

func (c ErrorCode) String() string {
	return string(c)
}

func AcceptedBill(receipt Receipt) PutResult {
	return PutResult{Success: true, Receipt: &receipt}
}

func RejectedBill(code ErrorCode, message string) PutResult {
	return PutResult{ErrorCode: code, Message: message}
}

// HasLotteryWarning reports whether an accepted bill asks for a ledger resync.
func (r PutResult) HasLotteryWarning() bool {
	return r.Success && r.Receipt != nil && r.Receipt.LotteryWarningMessage != ""
}
