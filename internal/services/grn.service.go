package services

import (
	"context"
	"fmt"
	"time"

	"github.com/possxc/ledger/internal/model"
)

type GRNRepository interface {
	Create(ctx context.Context, g *model.GRN) (*model.GRN, error)
	Get(ctx context.Context, id int64) (*model.GRN, error)
	List(ctx context.Context) ([]*model.GRN, error)
	CreateItem(ctx context.Context, grnID int64, line model.GRNLine) error
	ItemsByGRN(ctx context.Context, grnID int64) ([]*model.GRNItem, error)
	DeleteItems(ctx context.Context, grnID int64) error
	Delete(ctx context.Context, grnID int64) error
	UpdateTotal(ctx context.Context, grnID int64, total float64) error
	Details(ctx context.Context, grnID int64) (*model.GRNDetails, error)
}

// GRNService manages goods-received batches. Every mutation runs in a
// single transaction so the stock ledger and the batch rows never
// drift apart.
type GRNService struct {
	grnRepo     GRNRepository
	productRepo ProductRepository
	tx          Transactor
}

func NewGRNService(grnRepo GRNRepository, productRepo ProductRepository, tx Transactor) *GRNService {
	return &GRNService{
		grnRepo:     grnRepo,
		productRepo: productRepo,
		tx:          tx,
	}
}

func batchTotal(lines []model.GRNLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Save records a stock intake: the batch header, one line per product,
// and a stock increment per line.
func (s *GRNService) Save(ctx context.Context, date time.Time, lines []model.GRNLine) (*model.GRN, error) {
	if err := model.ValidateGRNLines(lines); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var created *model.GRN
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		grn, err := s.grnRepo.Create(ctx, &model.GRN{
			Date:  date,
			Total: batchTotal(lines),
		})
		if err != nil {
			return fmt.Errorf("create grn: %w", err)
		}

		for _, line := range lines {
			if err := s.grnRepo.CreateItem(ctx, grn.ID, line); err != nil {
				return fmt.Errorf("create grn item: %w", err)
			}
			if err := s.productRepo.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
		}

		created = grn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the lines of an existing batch. The old lines' stock
// contribution is rolled back first, then the new lines are applied as
// in Save, all inside one transaction.
func (s *GRNService) Update(ctx context.Context, grnID int64, lines []model.GRNLine) error {
	if err := model.ValidateGRNLines(lines); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.grnRepo.Get(ctx, grnID); err != nil {
			return err
		}

		// old quantities must be read before the lines are deleted
		old, err := s.grnRepo.ItemsByGRN(ctx, grnID)
		if err != nil {
			return fmt.Errorf("read grn items: %w", err)
		}
		for _, item := range old {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("roll back stock: %w", err)
			}
		}

		if err := s.grnRepo.DeleteItems(ctx, grnID); err != nil {
			return fmt.Errorf("delete grn items: %w", err)
		}

		for _, line := range lines {
			if err := s.grnRepo.CreateItem(ctx, grnID, line); err != nil {
				return fmt.Errorf("create grn item: %w", err)
			}
			if err := s.productRepo.AdjustStock(ctx, line.ProductID, line.Quantity); err != nil {
				return fmt.Errorf("adjust stock: %w", err)
			}
		}

		return s.grnRepo.UpdateTotal(ctx, grnID, batchTotal(lines))
	})
}

// Delete removes a batch and takes its stock contribution back out.
func (s *GRNService) Delete(ctx context.Context, grnID int64) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.grnRepo.Get(ctx, grnID); err != nil {
			return err
		}

		items, err := s.grnRepo.ItemsByGRN(ctx, grnID)
		if err != nil {
			return fmt.Errorf("read grn items: %w", err)
		}
		for _, item := range items {
			if err := s.productRepo.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("roll back stock: %w", err)
			}
		}

		if err := s.grnRepo.DeleteItems(ctx, grnID); err != nil {
			return fmt.Errorf("delete grn items: %w", err)
		}
		return s.grnRepo.Delete(ctx, grnID)
	})
}

func (s *GRNService) List(ctx context.Context) ([]*model.GRN, error) {
	return s.grnRepo.List(ctx)
}

func (s *GRNService) Details(ctx context.Context, grnID int64) (*model.GRNDetails, error) {
	return s.grnRepo.Details(ctx, grnID)
}
