package services

import (
	"context"
	"strings"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/csvio"
	"fintrack/internal/reports"
	"fintrack/internal/store"
	"fintrack/internal/store/memory"
)

const owner = store.Principal("user-1")

func TestGoalServiceRecurringPropagation(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewGoalService(st)

	err := svc.SetGoal(ctx, owner, core.BudgetGoal{
		Category: core.CategoryGroceries, Year: 2024, Month: 3,
		Amount: core.Money{Cents: 10000}, IsRecurring: true,
	})
	if err != nil {
		t.Fatalf("SetGoal recurring: %v", err)
	}

	goals, err := st.ListGoals(ctx, owner, 2024)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 10 {
		t.Fatalf("got %d goals, want 10 (months 3..12)", len(goals))
	}
	for i, g := range goals {
		if g.Month != i+3 || g.Amount.Cents != 10000 {
			t.Errorf("goal[%d] = %+v", i, g)
		}
	}

	// Switching the same month off keeps it and clears the tail.
	err = svc.SetGoal(ctx, owner, core.BudgetGoal{
		Category: core.CategoryGroceries, Year: 2024, Month: 3,
		Amount: core.Money{Cents: 5000}, IsRecurring: false,
	})
	if err != nil {
		t.Fatalf("SetGoal non-recurring: %v", err)
	}

	goals, err = st.ListGoals(ctx, owner, 2024)
	if err != nil {
		t.Fatalf("ListGoals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1: %+v", len(goals), goals)
	}
	if goals[0].Month != 3 || goals[0].Amount.Cents != 5000 {
		t.Errorf("surviving goal = %+v", goals[0])
	}
}

func TestGoalServicePropagationLeavesOtherCategories(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewGoalService(st)

	if err := svc.SetGoal(ctx, owner, core.BudgetGoal{
		Category: core.CategoryRent, Year: 2024, Month: 6,
		Amount: core.Money{Cents: 90000},
	}); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if err := svc.SetGoal(ctx, owner, core.BudgetGoal{
		Category: core.CategoryGroceries, Year: 2024, Month: 4,
		Amount: core.Money{Cents: 10000}, IsRecurring: false,
	}); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}

	goals, _ := st.ListGoals(ctx, owner, 2024)
	if len(goals) != 2 {
		t.Errorf("got %d goals, want 2 (rent untouched): %+v", len(goals), goals)
	}
}

func TestGoalServiceRejectsIncomeCategory(t *testing.T) {
	svc := NewGoalService(memory.New())
	err := svc.SetGoal(context.Background(), owner, core.BudgetGoal{
		Category: core.CategorySalary, Year: 2024, Month: 1,
		Amount: core.Money{Cents: 100},
	})
	if err == nil {
		t.Error("goals for income categories must be rejected")
	}
}

type capturingPublisher struct {
	events []*amqp.LedgerEventMessage
}

func (p *capturingPublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func TestLedgerServiceCreatePublishesEvent(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	pub := &capturingPublisher{}
	svc := NewLedgerService(st, pub, NewBalanceService(st))

	created, err := svc.CreateTransaction(ctx, owner, core.Transaction{
		Amount:   core.Money{Cents: 5000},
		Category: core.CategoryGroceries,
		Date:     core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if created.ID == "" {
		t.Error("id should be assigned")
	}
	if created.Type != core.TypeExpense {
		t.Errorf("type = %q, want derived expense", created.Type)
	}
	if len(pub.events) != 1 || pub.events[0].Action != amqp.ActionCreated {
		t.Fatalf("events = %+v", pub.events)
	}
	if pub.events[0].Owner != string(owner) || pub.events[0].TransactionID != created.ID {
		t.Errorf("event = %+v", pub.events[0])
	}
}

func TestLedgerServiceRejectsInvalid(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil, nil)
	_, err := svc.CreateTransaction(context.Background(), owner, core.Transaction{
		Amount:   core.Money{Cents: 100},
		Category: core.Category("petting_zoo"),
		Date:     core.NewDate(2024, 1, 1),
	})
	if err == nil {
		t.Error("unknown category must be rejected")
	}
}

func TestLedgerServiceInlineRecomputeWithoutBroker(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewLedgerService(st, nil, NewBalanceService(st))

	card := core.CreditCard{
		ID: "c1", Name: "Visa",
		Limit:     core.Money{Cents: 100000},
		StartDate: core.NewDate(2024, 1, 1),
	}
	if err := st.CreateCard(ctx, owner, card); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	_, err := svc.CreateTransaction(ctx, owner, core.Transaction{
		Amount:       core.Money{Cents: 2500},
		Category:     core.CategoryDining,
		Date:         core.NewDate(2024, 1, 10),
		CreditCard:   true,
		CreditCardID: "c1",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	got, err := st.GetCard(ctx, owner, "c1")
	if err != nil {
		t.Fatalf("GetCard: %v", err)
	}
	if got.Balance.Cents != 2500 {
		t.Errorf("stored balance = %d, want 2500", got.Balance.Cents)
	}
}

func TestLedgerServiceDeleteKeepsEventRefs(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	pub := &capturingPublisher{}
	svc := NewLedgerService(st, pub, nil)

	created, err := svc.CreateTransaction(ctx, owner, core.Transaction{
		Amount:       core.Money{Cents: 100},
		Category:     core.CategoryGroceries,
		Date:         core.NewDate(2024, 2, 2),
		CreditCard:   true,
		CreditCardID: "c9",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, owner, created.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	last := pub.events[len(pub.events)-1]
	if last.Action != amqp.ActionDeleted || last.CreditCardID != "c9" {
		t.Errorf("delete event = %+v", last)
	}
	if _, err := st.GetTransaction(ctx, owner, created.ID); err != store.ErrNotFound {
		t.Errorf("transaction should be gone, got err %v", err)
	}
}

func TestBalanceServiceRecomputeLoan(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := NewBalanceService(st)

	item := core.BalanceSheetItem{
		ID: "l1", Type: core.ItemLiability, Category: core.ItemLoan,
		Name: "Car loan", InitialAmount: core.Money{Cents: 100000},
	}
	if err := st.CreateItem(ctx, owner, item); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	payment := core.Transaction{
		ID: "p1", Amount: core.Money{Cents: 30000},
		Category: core.CategoryDebtPayment, Date: core.NewDate(2024, 1, 1),
		IsLoanPayment: true, LoanID: "l1",
	}
	payment.DeriveType()
	if err := st.CreateTransaction(ctx, owner, payment); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	got, err := svc.RecomputeLoan(ctx, owner, "l1")
	if err != nil {
		t.Fatalf("RecomputeLoan: %v", err)
	}
	if got.Amount.Cents != 70000 {
		t.Errorf("loan amount = %d, want 70000", got.Amount.Cents)
	}
}

func TestImportServiceAutoCreatesCardsAndCounts(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	ledger := NewLedgerService(st, nil, NewBalanceService(st))
	svc := NewImportService(ledger, st)

	text := strings.Join([]string{
		csvio.ImportHeader,
		"100.00,groceries,2024-01-05,weekly shop,expense,true,Visa,false",
		"40.00,dining,2024-01-06,lunch,expense,true,Visa,false",
		"garbage row",
		"2000.00,salary,2024-01-01,pay,income,false,,false",
	}, "\n")

	result, err := svc.Import(ctx, owner, text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 3 || result.Failed != 1 {
		t.Fatalf("result = %+v, want 3 imported / 1 failed", result)
	}

	cards, err := st.ListCards(ctx, owner)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want the one auto-created Visa", len(cards))
	}
	if cards[0].Name != "Visa" || !cards[0].Limit.IsZero() || !cards[0].StartingBalance.IsZero() {
		t.Errorf("auto-created card = %+v", cards[0])
	}

	txns, _ := st.ListTransactions(ctx, owner)
	var onCard int
	for _, tr := range txns {
		if tr.CreditCardID == cards[0].ID {
			onCard++
		}
	}
	if onCard != 2 {
		t.Errorf("%d transactions reference the auto-created card, want 2", onCard)
	}
}

func TestImportAutoCreatedCardCoversEarlierRows(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	ledger := NewLedgerService(st, nil, NewBalanceService(st))
	svc := NewImportService(ledger, st)

	// Newest row first: the card must still start early enough to count
	// every imported row toward its balance.
	text := strings.Join([]string{
		csvio.ImportHeader,
		"100.00,groceries,2024-03-10,weekly shop,expense,true,Visa,false",
		"50.00,dining,2024-01-05,lunch,expense,true,Visa,false",
	}, "\n")

	result, err := svc.Import(ctx, owner, text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v, want 2 imported / 0 failed", result)
	}

	cards, err := st.ListCards(ctx, owner)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want the one auto-created Visa", len(cards))
	}
	if got := cards[0].StartDate.Format(); got != "2024-01-05" {
		t.Errorf("start date = %s, want the earliest row date 2024-01-05", got)
	}
	if cards[0].Balance.Cents != 15000 {
		t.Errorf("balance = %d, want 15000 covering both rows", cards[0].Balance.Cents)
	}
}

func TestReportServiceGeneratesFromStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	ledger := NewLedgerService(st, nil, nil)

	seed := []core.Transaction{
		{Amount: core.Money{Cents: 100000}, Category: core.CategorySalary,
			Description: "pay", Date: core.NewDate(2024, 1, 1)},
		{Amount: core.Money{Cents: 20000}, Category: core.CategoryGroceries,
			Description: "food", Date: core.NewDate(2024, 1, 5)},
	}
	for _, tr := range seed {
		if _, err := ledger.CreateTransaction(ctx, owner, tr); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	svc := NewReportService(st)
	r, err := svc.Generate(ctx, owner, reports.MonthlySummary,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	s := r.(*reports.MonthlySummaryReport)
	if s.Totals.TotalIncome.Cents != 100000 || s.Totals.TotalExpenses.Cents != 20000 {
		t.Errorf("totals = %+v", s.Totals)
	}
	if s.Totals.SavingsRate != 80 {
		t.Errorf("savings rate = %v, want 80", s.Totals.SavingsRate)
	}
}
