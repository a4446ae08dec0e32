package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/shopspring/decimal"
)

type HistoryService interface {
	Feed() ([]HistoryEntry, error)
}

// HistoryEntry is one event in the unified activity timeline.
type HistoryEntry struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // sale, add, exchange
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Amount    decimal.Decimal `json:"amount"`
	Actor     string          `json:"actor,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type historyService struct {
	saleRepo     repository.SaleRepository
	phoneRepo    repository.BuyPhoneRepository
	exchangeRepo repository.ExchangeRepository
}

func NewHistoryService(saleRepo repository.SaleRepository, phoneRepo repository.BuyPhoneRepository, exchangeRepo repository.ExchangeRepository) HistoryService {
	return &historyService{
		saleRepo:     saleRepo,
		phoneRepo:    phoneRepo,
		exchangeRepo: exchangeRepo,
	}
}

// Feed merges sales, phone intakes and exchanges into one reverse
// chronological list.
func (s *historyService) Feed() ([]HistoryEntry, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	phones, err := s.phoneRepo.FindAll()
	if err != nil {
		return nil, err
	}
	exchanges, err := s.exchangeRepo.FindAll()
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(sales)+len(phones)+len(exchanges))

	for _, sale := range sales {
		entry := HistoryEntry{
			ID:        sale.ID.String(),
			Type:      "sale",
			Title:     "Sale",
			Amount:    sale.TotalAmount.Sub(sale.DiscountAmount),
			CreatedAt: sale.CreatedAt,
		}
		if sale.BuyPhone != nil {
			entry.Title = sale.BuyPhone.Description()
		}
		if sale.Customer != nil {
			entry.Subtitle = fmt.Sprintf("Sold to %s", sale.Customer.Name)
		}
		if sale.Creator != nil {
			entry.Actor = sale.Creator.Name
		}
		entries = append(entries, entry)
	}

	for _, phone := range phones {
		entry := HistoryEntry{
			ID:        phone.ID.String(),
			Type:      "add",
			Title:     phone.Description(),
			Subtitle:  fmt.Sprintf("Bought from %s", phone.SellerName),
			Amount:    phone.BuyPrice,
			CreatedAt: phone.CreatedAt,
		}
		if phone.Receiver != nil {
			entry.Actor = phone.Receiver.Name
		}
		entries = append(entries, entry)
	}

	for _, exchange := range exchanges {
		entry := HistoryEntry{
			ID:        exchange.ID.String(),
			Type:      "exchange",
			Title:     "Exchange",
			Amount:    exchange.DifferenceAmount,
			CreatedAt: exchange.CreatedAt,
		}
		if exchange.BuyPhone != nil {
			entry.Title = fmt.Sprintf("Exchange: %s received", exchange.BuyPhone.Description())
		}
		if exchange.Customer != nil {
			entry.Subtitle = fmt.Sprintf("With %s", exchange.Customer.Name)
		}
		if exchange.Processor != nil {
			entry.Actor = exchange.Processor.Name
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries, nil
}
