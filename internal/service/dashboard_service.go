package service

import (
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/shopspring/decimal"
)

type DashboardService interface {
	Statistics() (*DashboardStatistics, error)
}

type DashboardStatistics struct {
	TodaySales  PeriodMetric      `json:"today_sales"`
	WeeklySales PeriodMetric      `json:"weekly_sales"`
	TodayProfit decimal.Decimal   `json:"today_profit"`
	RecentSales []RecentSaleEntry `json:"recent_sales"`
}

type PeriodMetric struct {
	Amount        decimal.Decimal `json:"amount"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

type RecentSaleEntry struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	PhoneModel   string          `json:"phone_model"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

type dashboardService struct {
	saleRepo repository.SaleRepository
}

func NewDashboardService(saleRepo repository.SaleRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo}
}

func (s *dashboardService) Statistics() (*DashboardStatistics, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)
	prevWeekStart := todayStart.AddDate(0, 0, -14)

	today, err := s.saleRepo.NetSales(todayStart, now)
	if err != nil {
		return nil, err
	}
	yesterday, err := s.saleRepo.NetSales(yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}
	week, err := s.saleRepo.NetSales(weekStart, now)
	if err != nil {
		return nil, err
	}
	prevWeek, err := s.saleRepo.NetSales(prevWeekStart, weekStart)
	if err != nil {
		return nil, err
	}

	// Profit is the naive spread: what today's paid sales brought in minus
	// what the shop paid for the phones that left.
	todaySales, err := s.saleRepo.PaidSalesBetween(todayStart, now)
	if err != nil {
		return nil, err
	}
	profit := decimal.Zero
	for _, sale := range todaySales {
		net := sale.TotalAmount.Sub(sale.DiscountAmount)
		if sale.BuyPhone != nil {
			net = net.Sub(sale.BuyPhone.BuyPrice)
		}
		profit = profit.Add(net)
	}

	recent, err := s.saleRepo.Recent(4)
	if err != nil {
		return nil, err
	}
	entries := make([]RecentSaleEntry, 0, len(recent))
	for _, sale := range recent {
		entry := RecentSaleEntry{
			ID:        sale.ID.String(),
			Amount:    sale.TotalAmount.Sub(sale.DiscountAmount),
			CreatedAt: sale.CreatedAt,
		}
		if sale.Customer != nil {
			entry.CustomerName = sale.Customer.Name
		}
		if sale.BuyPhone != nil {
			entry.PhoneModel = sale.BuyPhone.Model
		}
		entries = append(entries, entry)
	}

	return &DashboardStatistics{
		TodaySales:  PeriodMetric{Amount: today, ChangePercent: changePercent(today, yesterday)},
		WeeklySales: PeriodMetric{Amount: week, ChangePercent: changePercent(week, prevWeek)},
		TodayProfit: profit,
		RecentSales: entries,
	}, nil
}

// changePercent reports growth against the previous period. A previous period
// of zero maps to 100 when anything was sold now, and 0 when nothing was.
func changePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
	}
	if current.IsPositive() {
		return decimal.NewFromInt(100)
	}
	return decimal.Zero
}
