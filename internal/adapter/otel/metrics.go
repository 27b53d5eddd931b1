package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "procuredesk"

// Metrics holds all ProcureDesk metric instruments.
type Metrics struct {
	OrdersPlaced    metric.Int64Counter
	CheckoutsFailed metric.Int64Counter
	CheckoutAmount  metric.Int64Histogram
	CreditDecisions metric.Int64Counter
	OTPSent         metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.OrdersPlaced, err = meter.Int64Counter("procuredesk.orders.placed",
		metric.WithDescription("Number of orders placed"))
	if err != nil {
		return nil, err
	}

	m.CheckoutsFailed, err = meter.Int64Counter("procuredesk.checkouts.failed",
		metric.WithDescription("Number of checkout attempts rejected"))
	if err != nil {
		return nil, err
	}

	m.CheckoutAmount, err = meter.Int64Histogram("procuredesk.checkout.amount",
		metric.WithDescription("Order totals in minor currency units"))
	if err != nil {
		return nil, err
	}

	m.CreditDecisions, err = meter.Int64Counter("procuredesk.credit.decisions",
		metric.WithDescription("Number of credit request decisions"))
	if err != nil {
		return nil, err
	}

	m.OTPSent, err = meter.Int64Counter("procuredesk.otp.sent",
		metric.WithDescription("Number of login codes sent"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
