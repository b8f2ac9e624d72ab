package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evzone/backend/libs/access"
	"evzone/backend/services/console/internal/routes"
)

// widgetFailure is the only error text a widget ever shows.
const widgetFailure = "something went wrong"

// DefaultCurrency matches the payments-service default.
const DefaultCurrency = "USD"

// Record is one backend row reduced to what widgets need.
type Record struct {
	Target    access.Target
	Status    string
	Amount    float64
	Currency  string
	EnergyKWh float64
	Row       interface{}
}

// DataSource loads the rows of a source for the caller identified by token.
type DataSource interface {
	Fetch(ctx context.Context, source Source, token string) ([]Record, error)
}

// Widget is a rendered widget. Exactly one of Value, Totals, Rows or Error is
// meaningful. Money KPIs report Totals keyed by currency.
type Widget struct {
	ID     string             `json:"id"`
	Title  string             `json:"title"`
	Kind   WidgetKind         `json:"kind"`
	Value  *float64           `json:"value,omitempty"`
	Totals map[string]float64 `json:"totals,omitempty"`
	Rows   []interface{}      `json:"rows,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Dashboard is the composed dashboard of one profile.
type Dashboard struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Widgets []Widget `json:"widgets"`
}

// Composer renders dashboards from a DataSource.
type Composer struct {
	source DataSource
	logger *zap.Logger
}

// NewComposer builds composer.
func NewComposer(source DataSource, logger *zap.Logger) *Composer {
	return &Composer{source: source, logger: logger}
}

type fetchResult struct {
	records []Record
	err     error
}

// ComposePath renders the dashboard registered at path, restricted to scope. Each
// distinct source is fetched once; a failed source only fails the widgets reading it.
func (c *Composer) ComposePath(ctx context.Context, path string, scope access.Scope, token string) Dashboard {
	out := Dashboard{Path: path, Widgets: []Widget{}}
	if route, ok := routes.Lookup(path); ok {
		out.Title = route.Title
	}
	configs := Widgets(path)

	var (
		mu      sync.Mutex
		results = map[Source]fetchResult{}
		g       errgroup.Group
	)
	for _, source := range distinctSources(configs) {
		source := source
		g.Go(func() error {
			records, err := c.source.Fetch(ctx, source, token)
			if err != nil {
				c.logger.Warn("dashboard source failed", zap.String("source", string(source)), zap.Error(err))
			} else {
				records = access.Filter(records, scope, func(r Record) access.Target { return r.Target })
			}
			mu.Lock()
			results[source] = fetchResult{records: records, err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, cfg := range configs {
		out.Widgets = append(out.Widgets, render(cfg, results[cfg.Source]))
	}
	return out
}

func distinctSources(configs []WidgetConfig) []Source {
	seen := map[Source]bool{}
	var out []Source
	for _, cfg := range configs {
		if !seen[cfg.Source] {
			seen[cfg.Source] = true
			out = append(out, cfg.Source)
		}
	}
	return out
}

func render(cfg WidgetConfig, result fetchResult) (w Widget) {
	w = Widget{ID: cfg.ID, Title: cfg.Title, Kind: cfg.Kind}
	defer func() {
		if recover() != nil {
			w = Widget{ID: cfg.ID, Title: cfg.Title, Kind: cfg.Kind, Error: widgetFailure}
		}
	}()
	if result.err != nil {
		w.Error = widgetFailure
		return w
	}

	records := result.records
	if cfg.Status != "" {
		kept := make([]Record, 0, len(records))
		for _, r := range records {
			if r.Status == cfg.Status {
				kept = append(kept, r)
			}
		}
		records = kept
	}

	switch cfg.Kind {
	case KindKPI:
		if cfg.Metric == MetricSumAmount {
			w.Totals = sumByCurrency(records)
			break
		}
		value := aggregate(cfg.Metric, records)
		w.Value = &value
	case KindTable:
		limit := cfg.Limit
		if limit <= 0 || limit > len(records) {
			limit = len(records)
		}
		w.Rows = make([]interface{}, 0, limit)
		for _, r := range records[:limit] {
			w.Rows = append(w.Rows, r.Row)
		}
	default:
		panic(fmt.Sprintf("dashboard: unknown widget kind %q", cfg.Kind))
	}
	return w
}

func aggregate(metric Metric, records []Record) float64 {
	switch metric {
	case MetricCount:
		return float64(len(records))
	case MetricSumEnergy:
		var sum float64
		for _, r := range records {
			sum += r.EnergyKWh
		}
		return sum
	}
	panic(fmt.Sprintf("dashboard: unknown metric %q", metric))
}

// sumByCurrency never mixes currencies. A record without one counts as DefaultCurrency.
func sumByCurrency(records []Record) map[string]float64 {
	totals := map[string]float64{}
	for _, r := range records {
		currency := strings.ToUpper(strings.TrimSpace(r.Currency))
		if currency == "" {
			currency = DefaultCurrency
		}
		totals[currency] += r.Amount
	}
	return totals
}

// FetchQuery is the query dashboards send to the resource services.
func FetchQuery(pageSize int) url.Values {
	return url.Values{"page": {"1"}, "pageSize": {strconv.Itoa(pageSize)}}
}
