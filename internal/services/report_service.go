// Package services orchestrates stores, the report engine and the event
// pipeline. Services hold no per-request state; every method takes the
// principal explicitly.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/reports"
	"fintrack/internal/store"
)

// ReportService gathers the principal's snapshot and dispatches to the
// report engine.
type ReportService struct {
	store store.Store
}

func NewReportService(st store.Store) *ReportService {
	return &ReportService{store: st}
}

// Generate fetches the four collections concurrently, then runs the pure
// generator over the assembled snapshot.
func (s *ReportService) Generate(ctx context.Context, owner store.Principal, typ reports.ReportType, start, end core.Date) (reports.Report, error) {
	in := reports.Inputs{Start: start, End: end}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if in.Transactions, err = s.store.ListTransactions(ctx, owner); err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Cards, err = s.store.ListCards(ctx, owner); err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Items, err = s.store.ListItems(ctx, owner); err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if in.Goals, err = s.store.ListGoals(ctx, owner, start.Year()); err != nil {
			return fmt.Errorf("list goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("gather report inputs: %w", err)
	}

	return reports.Generate(typ, in)
}
