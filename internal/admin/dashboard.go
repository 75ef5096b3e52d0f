package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rinsh4dd/e-com/internal/models"
)

type DayStats struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type Dashboard struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Orders   int `json:"orders"`
	// Revenue counts only orders whose payment completed.
	Revenue            float64                    `json:"revenue"`
	LastSevenDays      []DayStats                 `json:"lastSevenDays"`
	StatusDistribution map[models.OrderStatus]int `json:"statusDistribution"`
}

// Dashboard loads users and products concurrently and summarises them.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		users    []models.User
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var orders []models.Order
	for _, u := range users {
		orders = append(orders, u.Orders...)
	}

	d := &Dashboard{
		Users:              len(users),
		Products:           len(products),
		Orders:             len(orders),
		StatusDistribution: map[models.OrderStatus]int{},
		LastSevenDays:      make([]DayStats, 7),
	}
	for _, st := range models.OrderStatuses {
		d.StatusDistribution[st] = 0
	}

	today := s.now().UTC()
	days := make([]decimal.Decimal, 7)
	for i := range d.LastSevenDays {
		d.LastSevenDays[i].Date = today.AddDate(0, 0, i-6).Format("2006-01-02")
		days[i] = decimal.Zero
	}

	revenue := decimal.Zero
	for _, o := range orders {
		d.StatusDistribution[o.OrderStatus.Normalize()]++
		paid := o.PaymentStatus == models.PaymentCompleted
		amount := decimal.NewFromFloat(o.TotalAmount)
		if paid {
			revenue = revenue.Add(amount)
		}
		for i := range d.LastSevenDays {
			if !strings.Contains(o.CreatedAt, d.LastSevenDays[i].Date) {
				continue
			}
			d.LastSevenDays[i].Orders++
			if paid {
				days[i] = days[i].Add(amount)
			}
		}
	}
	d.Revenue = revenue.InexactFloat64()
	for i := range days {
		d.LastSevenDays[i].Revenue = days[i].InexactFloat64()
	}
	return d, nil
}
