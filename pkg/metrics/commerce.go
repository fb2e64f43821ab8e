package metrics

import "github.com/prometheus/client_golang/prometheus"

// CommerceMetrics tracks the checkout funnel.
type CommerceMetrics struct {
	sessionsCreated   prometheus.Counter
	ordersPlaced      prometheus.Counter
	orderRevenueCents prometheus.Counter
}

// NewCommerceMetrics registers the checkout funnel metrics on the provided registerer.
func NewCommerceMetrics(reg prometheus.Registerer) *CommerceMetrics {
	if reg == nil {
		return &CommerceMetrics{}
	}
	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_sessions_created_total",
		Help: "Checkout sessions handed off to the payment provider.",
	})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders materialized after payment verification.",
	})
	orderRevenueCents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_revenue_cents_total",
		Help: "Gross order revenue in cents.",
	})
	reg.MustRegister(sessionsCreated, ordersPlaced, orderRevenueCents)
	return &CommerceMetrics{
		sessionsCreated:   sessionsCreated,
		ordersPlaced:      ordersPlaced,
		orderRevenueCents: orderRevenueCents,
	}
}

// IncSessionCreated counts one checkout session handoff.
func (m *CommerceMetrics) IncSessionCreated() {
	if m == nil || m.sessionsCreated == nil {
		return
	}
	m.sessionsCreated.Inc()
}

// IncOrderPlaced counts one materialized order and its gross revenue.
func (m *CommerceMetrics) IncOrderPlaced(totalCents int64) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
	if totalCents > 0 {
		m.orderRevenueCents.Add(float64(totalCents))
	}
}

// Registry exposes the HTTP metrics registry for commerce metrics registration.
func (m *HTTPMetrics) Registry() prometheus.Registerer {
	if m == nil || m.registry == nil {
		return nil
	}
	return m.registry
}
