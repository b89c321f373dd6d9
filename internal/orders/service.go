package orders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/orderdesk/orderdesk/internal/catalog"
	"github.com/orderdesk/orderdesk/internal/platform/httpx"
	"github.com/orderdesk/orderdesk/internal/pricing"
)

// Service orchestrates the order aggregate: it resolves catalog prices,
// runs the pricing calculator and persists the result transactionally.
// Client-sent prices or amounts are never trusted; every save re-prices
// from the catalog.
type Service struct {
	repo     Repository
	catalog  catalog.Repository
	validate *validator.Validate
}

// NewService constructs the order service.
func NewService(repo Repository, catalogRepo catalog.Repository) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalogRepo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create builds and persists a new order in one transaction and returns the
// generated id. Any unknown item id aborts the whole operation.
func (s *Service) Create(ctx context.Context, req SaveOrderRequest) (int64, error) {
	if err := s.validateRequest(req); err != nil {
		return 0, err
	}

	order, err := s.buildOrder(ctx, req)
	if err != nil {
		return 0, err
	}

	var orderID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		for _, item := range order.Items {
			item.SalesOrderID = orderID
			if _, err := repo.InsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// Update replaces the stored order wholesale: header fields are overwritten
// and the entire line collection is deleted and rebuilt from the request.
// There is no per-line patching; old line identities do not survive an edit.
func (s *Service) Update(ctx context.Context, id int64, req SaveOrderRequest) error {
	if err := s.validateRequest(req); err != nil {
		return err
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	order, err := s.buildOrder(ctx, req)
	if err != nil {
		return err
	}
	order.ID = id
	for i := range order.Items {
		order.Items[i].SalesOrderID = id
	}

	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.UpdateHeader(ctx, order); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		for _, item := range order.Items {
			if _, err := repo.InsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the full order with lines enriched from the catalog.
func (s *Service) Get(ctx context.Context, id int64) (*SalesOrderDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

// List returns one summary row per order.
func (s *Service) List(ctx context.Context) ([]SalesOrderSummary, error) {
	return s.repo.List(ctx)
}

// buildOrder resolves every submitted line against the catalog, prices it,
// and assembles the aggregate with derived totals. Missing items fail the
// whole build before anything is persisted.
func (s *Service) buildOrder(ctx context.Context, req SaveOrderRequest) (SalesOrder, error) {
	ids := make([]int64, 0, len(req.OrderItems))
	for _, line := range req.OrderItems {
		ids = append(ids, line.ItemID)
	}

	catalogItems, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return SalesOrder{}, err
	}

	items := make([]SalesOrderItem, 0, len(req.OrderItems))
	amounts := make([]pricing.LineAmounts, 0, len(req.OrderItems))
	for i, line := range req.OrderItems {
		catalogItem, ok := catalogItems[line.ItemID]
		if !ok {
			return SalesOrder{}, fmt.Errorf("%w: item %d", httpx.ErrNotFound, line.ItemID)
		}

		priced := pricing.PriceLine(line.Quantity, line.Tax, catalogItem.Price)
		amounts = append(amounts, priced)
		items = append(items, SalesOrderItem{
			ItemID:     line.ItemID,
			Note:       line.Note,
			Quantity:   line.Quantity,
			Tax:        line.Tax,
			ExclAmount: priced.Excl,
			TaxAmount:  priced.Tax,
			InclAmount: priced.Incl,
			Position:   i + 1,
		})
	}

	totals := pricing.SumTotals(amounts)
	return SalesOrder{
		ClientID:    req.ClientID,
		InvoiceNo:   req.InvoiceNo,
		InvoiceDate: req.InvoiceDate.Time,
		ReferenceNo: req.ReferenceNo,
		Note:        req.Note,
		TotalExcl:   totals.Excl,
		TotalTax:    totals.Tax,
		TotalIncl:   totals.Incl,
		Items:       items,
	}, nil
}

// validateRequest rejects structurally invalid requests before any catalog
// or store access. Quantity and tax are deliberately not range-checked.
func (s *Service) validateRequest(req SaveOrderRequest) error {
	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed rule %s", httpx.ErrValidation, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return nil
}
