package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zolbooo/ebarimt/internal/domain"
)

// LoadBillFile reads a bill payload from a JSON or YAML file. JSON documents are forwarded
// byte for byte; YAML documents are converted to JSON.
func LoadBillFile(path string) (domain.RawBill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill file: %w", err)
	}

	return ParseBill(data)
}

func ParseBill(data []byte) (domain.RawBill, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidPayload)
	}

	if trimmed[0] == '{' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: malformed JSON document", domain.ErrInvalidPayload)
		}

		return domain.RawBill(trimmed), nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}

	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: document is not a mapping", domain.ErrInvalidPayload)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}

	return domain.RawBill(encoded), nil
}
