package service

import (
	"context"
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/apierror"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/config"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/dto"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/infra"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	TreasurySummary(ctx context.Context, month string) (*dto.TreasurySummaryResponse, error)
	// TreasuryReport renders the month's summary to PDF and mails it to the
	// treasury address when one is configured. Returns the PDF path.
	TreasuryReport(ctx context.Context, month string) (string, error)
}

type dashboardService struct {
	memberRepo    repository.MemberRepository
	eventRepo     repository.EventRepository
	saleRepo      repository.SaleRepository
	productRepo   repository.BarProductRepository
	inventoryRepo repository.InventoryRepository
	dispatcher    *worker.Dispatcher
	cfg           *config.Config
}

func NewDashboardService(
	memberRepo repository.MemberRepository,
	eventRepo repository.EventRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.BarProductRepository,
	inventoryRepo repository.InventoryRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) DashboardService {
	return &dashboardService{
		memberRepo:    memberRepo,
		eventRepo:     eventRepo,
		saleRepo:      saleRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		dispatcher:    dispatcher,
		cfg:           cfg,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	byStatus, err := s.memberRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}

	upcoming, err := s.eventRepo.ListUpcoming(ctx, 5)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	events := make([]dto.EventResponse, len(upcoming))
	for i, e := range upcoming {
		count, _ := s.eventRepo.CountParticipants(ctx, e.ID)
		var endsAt *string
		if e.EndsAt != nil {
			v := e.EndsAt.Format(time.RFC3339)
			endsAt = &v
		}
		events[i] = dto.EventResponse{
			ID:           e.ID.String(),
			Title:        e.Title,
			Description:  e.Description,
			Location:     e.Location,
			StartsAt:     e.StartsAt.Format(time.RFC3339),
			EndsAt:       endsAt,
			Status:       e.Status,
			Participants: int(count),
		}
	}

	from, to := monthBounds(time.Now())
	totals, salesCount, err := s.saleRepo.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	revenue := decimal.Zero
	for _, v := range totals {
		revenue = revenue.Add(v)
	}

	lowStock, err := s.lowStockEntries(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		MembersByStatus: byStatus,
		UpcomingEvents:  events,
		MonthRevenue:    revenue,
		MonthSalesCount: salesCount,
		LowStock:        lowStock,
	}, nil
}

func (s *dashboardService) TreasurySummary(ctx context.Context, month string) (*dto.TreasurySummaryResponse, error) {
	ref := time.Now()
	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, apierror.Validation("mês inválido, use o formato YYYY-MM")
		}
		ref = t
	}
	from, to := monthBounds(ref)

	totals, salesCount, err := s.saleRepo.MonthlyTotals(ctx, from, to)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	total := decimal.Zero
	for _, v := range totals {
		total = total.Add(v)
	}

	return &dto.TreasurySummaryResponse{
		Month:      from.Format("2006-01"),
		Total:      total,
		SalesCount: salesCount,
		ByMethod:   totals,
	}, nil
}

func (s *dashboardService) TreasuryReport(ctx context.Context, month string) (string, error) {
	summary, err := s.TreasurySummary(ctx, month)
	if err != nil {
		return "", err
	}

	path, err := infra.GenerateTreasuryPDF(summary, s.cfg.ReportStoragePath)
	if err != nil {
		return "", apierror.Unexpected("erro ao gerar o relatório", err)
	}

	if s.dispatcher != nil && s.cfg.TreasuryEmail != "" {
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail:    s.cfg.TreasuryEmail,
			Subject:    "Relatório de tesouraria " + summary.Month,
			Body:       "Segue em anexo o relatório mensal de tesouraria do bar.",
			Attachment: path,
		})
	}
	return path, nil
}

func (s *dashboardService) lowStockEntries(ctx context.Context) ([]dto.LowStockEntry, error) {
	products, err := s.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}
	items, err := s.inventoryRepo.LowStock(ctx)
	if err != nil {
		return nil, apierror.Unexpected("erro interno do servidor", err)
	}

	entries := make([]dto.LowStockEntry, 0, len(products)+len(items))
	for _, p := range products {
		entries = append(entries, dto.LowStockEntry{
			ID:       p.ID.String(),
			Name:     p.Name,
			Source:   "bar",
			Quantity: p.Stock,
			Minimum:  p.MinStock,
		})
	}
	for _, it := range items {
		entries = append(entries, dto.LowStockEntry{
			ID:       it.ID.String(),
			Name:     it.Name,
			Source:   "inventory",
			Quantity: it.Quantity,
			Minimum:  it.MinQuantity,
		})
	}
	return entries, nil
}

// monthBounds returns [first instant of ref's month, first instant of the
// next month).
func monthBounds(ref time.Time) (time.Time, time.Time) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
