package services

import (
	"context"
	"sort"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type StatsService struct {
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Orders *repos.OrderRepo
}

func NewStatsService(prods *repos.ProductRepo, cats *repos.CategoryRepo, orders *repos.OrderRepo) *StatsService {
	return &StatsService{Prods: prods, Cats: cats, Orders: orders}
}

// Window bounds the orders a stats request covers. Zero times are open ends.
type Window struct {
	From  time.Time
	To    time.Time
	Label string
}

// ParseWindow resolves the month (YYYY-MM) or range (7d, 30d, all) selector.
// month wins when both are given.
func ParseWindow(rng, month string, now time.Time) (Window, error) {
	now = now.UTC()
	if month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return Window{}, domain.Validation("month must be formatted YYYY-MM")
		}
		return Window{From: m, To: m.AddDate(0, 1, 0), Label: m.Format("January 2006")}, nil
	}
	switch rng {
	case "", "all":
		return Window{Label: "All time"}, nil
	case "7d":
		return Window{From: now.AddDate(0, 0, -7), Label: "Last 7 days"}, nil
	case "30d":
		return Window{From: now.AddDate(0, 0, -30), Label: "Last 30 days"}, nil
	default:
		return Window{}, domain.Validation("range must be one of 7d, 30d, all")
	}
}

func (w Window) bounds() (from, to string) {
	if !w.From.IsZero() {
		from = w.From.Format(time.RFC3339)
	}
	if !w.To.IsZero() {
		to = w.To.Format(time.RFC3339)
	}
	return from, to
}

// Aggregate folds orders into counts, revenue and a per-day revenue series
// ordered by date.
func Aggregate(facts []repos.OrderFact) domain.Stats {
	st := domain.Stats{DailyRevenue: []domain.DailyRevenue{}}
	byDay := map[string]float64{}
	for _, f := range facts {
		st.OrderCount++
		st.TotalRevenue += f.Total
		if f.Status == domain.StatusPending {
			st.PendingOrders++
		}
		day := f.CreatedAt
		if len(day) > 10 {
			day = day[:10]
		}
		byDay[day] += f.Total
	}
	for day, total := range byDay {
		st.DailyRevenue = append(st.DailyRevenue, domain.DailyRevenue{Date: day, Total: total})
	}
	sort.Slice(st.DailyRevenue, func(i, j int) bool { return st.DailyRevenue[i].Date < st.DailyRevenue[j].Date })
	return st
}

func (s *StatsService) Compute(ctx context.Context, w Window) (*domain.Stats, error) {
	from, to := w.bounds()
	facts, err := s.Orders.Facts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	st := Aggregate(facts)
	if st.ProductCount, err = s.Prods.CountLive(ctx); err != nil {
		return nil, err
	}
	if st.CategoryCount, err = s.Cats.Count(ctx); err != nil {
		return nil, err
	}
	st.RangeLabel = w.Label
	return &st, nil
}
