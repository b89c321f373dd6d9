package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date on the wire. It accepts both "2006-01-02" and full
// RFC3339 timestamps on input and always emits "2006-01-02".
type Date struct {
	time.Time
}

// UnmarshalJSON parses a date-only or RFC3339 value.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON emits the date-only form.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// SaveOrderRequest is the POST and PUT body: invoice fields plus the full
// line-item collection. Submitted lines never carry prices or amounts; the
// server re-resolves catalog prices and recomputes everything.
type SaveOrderRequest struct {
	ClientID    int64                  `json:"clientId" validate:"required,gt=0"`
	InvoiceNo   string                 `json:"invoiceNo"`
	InvoiceDate Date                   `json:"invoiceDate"`
	ReferenceNo string                 `json:"referenceNo"`
	Note        string                 `json:"note"`
	OrderItems  []SaveOrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

// SaveOrderItemRequest is one submitted line. Quantity and tax are not
// range-validated; negative values flow through the calculator unchanged.
type SaveOrderItemRequest struct {
	ItemID   int64           `json:"itemId" validate:"required,gt=0"`
	Note     string          `json:"note"`
	Quantity int64           `json:"quantity"`
	Tax      decimal.Decimal `json:"tax"`
}

// CreatedResponse returns the generated order id so the caller can follow up
// immediately, e.g. to open the print view.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// SummaryResponse is one row of GET /salesorders.
type SummaryResponse struct {
	ID           int64           `json:"id"`
	InvoiceNo    string          `json:"invoiceNo"`
	InvoiceDate  Date            `json:"invoiceDate"`
	CustomerName string          `json:"customerName"`
	TotalIncl    decimal.Decimal `json:"totalIncl"`
}

// DetailResponse is the GET /salesorders/{id} body.
type DetailResponse struct {
	ID          int64                `json:"id"`
	ClientID    int64                `json:"clientId"`
	InvoiceNo   string               `json:"invoiceNo"`
	InvoiceDate Date                 `json:"invoiceDate"`
	ReferenceNo string               `json:"referenceNo"`
	Note        string               `json:"note"`
	TotalExcl   decimal.Decimal      `json:"totalExcl"`
	TotalTax    decimal.Decimal      `json:"totalTax"`
	TotalIncl   decimal.Decimal      `json:"totalIncl"`
	OrderItems  []DetailItemResponse `json:"orderItems"`
}

// DetailItemResponse is one detail line with catalog display fields.
type DetailItemResponse struct {
	ID          int64           `json:"id"`
	ItemID      int64           `json:"itemId"`
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Note        string          `json:"note"`
	Quantity    int64           `json:"quantity"`
	Tax         decimal.Decimal `json:"tax"`
	ExclAmount  decimal.Decimal `json:"exclAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	InclAmount  decimal.Decimal `json:"inclAmount"`
}

func toSummaryResponse(s SalesOrderSummary) SummaryResponse {
	return SummaryResponse{
		ID:           s.ID,
		InvoiceNo:    s.InvoiceNo,
		InvoiceDate:  Date{s.InvoiceDate},
		CustomerName: s.CustomerName,
		TotalIncl:    s.TotalIncl,
	}
}

func toDetailResponse(d *SalesOrderDetail) DetailResponse {
	resp := DetailResponse{
		ID:          d.Order.ID,
		ClientID:    d.Order.ClientID,
		InvoiceNo:   d.Order.InvoiceNo,
		InvoiceDate: Date{d.Order.InvoiceDate},
		ReferenceNo: d.Order.ReferenceNo,
		Note:        d.Order.Note,
		TotalExcl:   d.Order.TotalExcl,
		TotalTax:    d.Order.TotalTax,
		TotalIncl:   d.Order.TotalIncl,
		OrderItems:  make([]DetailItemResponse, 0, len(d.Items)),
	}
	for _, item := range d.Items {
		resp.OrderItems = append(resp.OrderItems, DetailItemResponse{
			ID:          item.ID,
			ItemID:      item.ItemID,
			ItemCode:    item.ItemCode,
			Description: item.Description,
			Price:       item.Price,
			Note:        item.Note,
			Quantity:    item.Quantity,
			Tax:         item.Tax,
			ExclAmount:  item.ExclAmount,
			TaxAmount:   item.TaxAmount,
			InclAmount:  item.InclAmount,
		})
	}
	return resp
}
