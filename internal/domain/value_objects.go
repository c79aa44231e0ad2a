package domain

import (
	"fmt"
	"strings"
	"time"
)

// BillDateLayout is the timestamp layout the PosAPI uses for bill dates.
const BillDateLayout = "2006-01-02 15:04:05"

type (
	// BillDate is a bill registration timestamp in the PosAPI layout.
	BillDate struct {
		time.Time
	}

	// ReturnBillRequest identifies a previously registered bill to reverse.
	ReturnBillRequest struct {
		ReturnBillID string   `json:"returnBillId"`
		Date         BillDate `json:"date"`
	}
)

func NewBillDate(t time.Time) BillDate {
	return BillDate{Time: t.Truncate(time.Second)}
}

func ParseBillDate(value string) (BillDate, error) {
	t, err := time.ParseInLocation(BillDateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return BillDate{}, fmt.Errorf("invalid bill date %q, expected layout %q: %w", value, BillDateLayout, err)
	}

	return BillDate{Time: t}, nil
}

func (d BillDate) String() string {
	return d.Format(BillDateLayout)
}

func (d BillDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *BillDate) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)

	parsed, err := ParseBillDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
