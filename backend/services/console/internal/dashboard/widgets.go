// Package dashboard assembles the widgets of each role dashboard.
package dashboard

import "evzone/backend/services/console/internal/routes"

// WidgetKind selects how a widget renders its data.
type WidgetKind string

const (
	KindKPI   WidgetKind = "kpi"
	KindTable WidgetKind = "table"
)

// Source is the backend collection a widget reads.
type Source string

const (
	SourceSessions     Source = "sessions"
	SourceBookings     Source = "bookings"
	SourceInvoices     Source = "invoices"
	SourceTransactions Source = "transactions"
)

// Metric is the aggregate a KPI widget shows.
type Metric string

const (
	MetricCount     Metric = "count"
	MetricSumAmount Metric = "sum_amount"
	MetricSumEnergy Metric = "sum_energy"
)

// WidgetConfig describes one widget. Status, when set, keeps only records in that status.
type WidgetConfig struct {
	ID     string
	Title  string
	Kind   WidgetKind
	Source Source
	Metric Metric
	Status string
	Limit  int
}

var (
	sessionsCount = WidgetConfig{ID: "sessions-count", Title: "Charging sessions", Kind: KindKPI, Source: SourceSessions, Metric: MetricCount}
	activeCount   = WidgetConfig{ID: "active-sessions", Title: "Active sessions", Kind: KindKPI, Source: SourceSessions, Metric: MetricCount, Status: "Active"}
	energyTotal   = WidgetConfig{ID: "energy-delivered", Title: "Energy delivered (kWh)", Kind: KindKPI, Source: SourceSessions, Metric: MetricSumEnergy}
	bookingsCount = WidgetConfig{ID: "bookings-count", Title: "Bookings", Kind: KindKPI, Source: SourceBookings, Metric: MetricCount}
	invoicedTotal = WidgetConfig{ID: "invoiced-amount", Title: "Invoiced", Kind: KindKPI, Source: SourceInvoices, Metric: MetricSumAmount}
	revenueTotal  = WidgetConfig{ID: "transaction-volume", Title: "Transaction volume", Kind: KindKPI, Source: SourceTransactions, Metric: MetricSumAmount}
	failedCount   = WidgetConfig{ID: "failed-sessions", Title: "Failed sessions", Kind: KindKPI, Source: SourceSessions, Metric: MetricCount, Status: "Failed"}

	recentSessions     = WidgetConfig{ID: "recent-sessions", Title: "Recent sessions", Kind: KindTable, Source: SourceSessions, Limit: 5}
	recentBookings     = WidgetConfig{ID: "recent-bookings", Title: "Upcoming bookings", Kind: KindTable, Source: SourceBookings, Limit: 5}
	recentTransactions = WidgetConfig{ID: "recent-transactions", Title: "Recent transactions", Kind: KindTable, Source: SourceTransactions, Limit: 5}
	failedSessions     = WidgetConfig{ID: "failed-session-list", Title: "Sessions needing attention", Kind: KindTable, Source: SourceSessions, Status: "Failed", Limit: 10}
)

var network = []WidgetConfig{sessionsCount, energyTotal, bookingsCount, invoicedTotal, revenueTotal, recentTransactions}

var widgetsByDashboard = map[string][]WidgetConfig{
	routes.SuperAdminDashboard:       network,
	routes.EVzoneAdminDashboard:      network,
	routes.OperatorDashboard:         {activeCount, sessionsCount, energyTotal, recentSessions},
	routes.SiteOwnerDashboard:        {sessionsCount, energyTotal, invoicedTotal, recentBookings},
	routes.OwnerChargeDashboard:      {sessionsCount, energyTotal, invoicedTotal, recentSessions},
	routes.OwnerSwapDashboard:        {bookingsCount, revenueTotal, recentBookings},
	routes.OwnerDashboard:            {sessionsCount, energyTotal, bookingsCount, invoicedTotal, recentSessions},
	routes.StationAdminDashboard:     {activeCount, energyTotal, recentSessions, recentBookings},
	routes.ManagerDashboard:          {activeCount, revenueTotal, recentSessions},
	routes.AttendantDashboard:        {activeCount, recentSessions, recentBookings},
	routes.TechnicianOrgDashboard:    {failedCount, failedSessions},
	routes.TechnicianPublicDashboard: {failedSessions},
}

// Widgets returns the configuration of the dashboard at path.
func Widgets(path string) []WidgetConfig {
	configs := widgetsByDashboard[path]
	out := make([]WidgetConfig, len(configs))
	copy(out, configs)
	return out
}
