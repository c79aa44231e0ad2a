package adapters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zolbooo/ebarimt/internal/domain"
)

// envelopeHeader is the discriminant every PosAPI reply carries at its top level.
type envelopeHeader struct {
	Success   *bool            `json:"success"`
	Message   string           `json:"message"`
	ErrorCode domain.ErrorCode `json:"errorCode"`
}

func decodeEnvelope(body []byte) (envelopeHeader, error) {
	var header envelopeHeader

	if err := json.Unmarshal(body, &header); err != nil {
		return envelopeHeader{}, fmt.Errorf("%w: %w", domain.ErrMalformedReply, err)
	}

	if header.Success == nil {
		return envelopeHeader{}, fmt.Errorf("%w: missing success field", domain.ErrMalformedReply)
	}

	return header, nil
}

func (h envelopeHeader) succeeded() bool {
	return h.Success != nil && *h.Success
}

func decodeCheckAPI(body []byte) (domain.CheckAPIResult, error) {
	header, err := decodeEnvelope(body)
	if err != nil {
		return domain.CheckAPIResult{}, err
	}

	var result domain.CheckAPIResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.CheckAPIResult{}, fmt.Errorf("%w: %w", domain.ErrMalformedReply, err)
	}

	result.Success = header.succeeded()

	return result, nil
}

func decodeOperationResult(body []byte) (domain.OperationResult, error) {
	header, err := decodeEnvelope(body)
	if err != nil {
		return domain.OperationResult{}, err
	}

	return domain.OperationResult{
		Success:   header.succeeded(),
		ErrorCode: header.ErrorCode,
		Message:   header.Message,
	}, nil
}

func decodePutResult(body []byte) (domain.PutResult, error) {
	header, err := decodeEnvelope(body)
	if err != nil {
		return domain.PutResult{}, err
	}

	if !header.succeeded() {
		return domain.RejectedBill(header.ErrorCode, header.Message), nil
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return domain.PutResult{}, fmt.Errorf("%w: %w", domain.ErrMalformedReply, err)
	}

	return domain.AcceptedBill(receipt), nil
}

func decodePosInformation(body []byte) (domain.PosInformation, error) {
	var info domain.PosInformation
	if err := json.Unmarshal(body, &info); err != nil {
		return domain.PosInformation{}, fmt.Errorf("%w: %w", domain.ErrMalformedReply, err)
	}

	return info, nil
}

// decodeFunctionResult accepts either a JSON string or a bare text body.
func decodeFunctionResult(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty function result", domain.ErrMalformedReply)
	}

	if strings.HasPrefix(trimmed, `"`) {
		var value string
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrMalformedReply, err)
		}

		return value, nil
	}

	return trimmed, nil
}
