// Package metrics holds the domain counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Domain groups the business counters. A nil *Domain records nothing,
// which keeps services usable from the CLI and from tests.
type Domain struct {
	messagesParsed prometheus.Counter
	rondasSaved    *prometheus.CounterVec
	consolidacoes  *prometheus.CounterVec
	notifications  *prometheus.CounterVec
}

// NewDomain registers the counters on reg.
func NewDomain(reg prometheus.Registerer) (*Domain, error) {
	d := &Domain{
		messagesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "whatsapp_messages_parsed_total",
			Help: "Messages read from WhatsApp exports.",
		}),
		rondasSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rondas_saved_total",
			Help: "Rondas created or updated, by origin.",
		}, []string{"origem"}),
		consolidacoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "consolidacoes_total",
			Help: "Shift consolidations of rondas esporádicas, by result.",
		}, []string{"resultado"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "whatsapp_notifications_total",
			Help: "Outbound WhatsApp reports, by result.",
		}, []string{"resultado"}),
	}
	for _, c := range []prometheus.Collector{d.messagesParsed, d.rondasSaved, d.consolidacoes, d.notifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Domain) MessagesParsed(n int) {
	if d == nil || n <= 0 {
		return
	}
	d.messagesParsed.Add(float64(n))
}

// RondaSaved counts a persisted ronda; origem is manual, whatsapp, upload or consolidacao.
func (d *Domain) RondaSaved(origem string) {
	if d == nil {
		return
	}
	d.rondasSaved.WithLabelValues(origem).Inc()
}

func (d *Domain) Consolidacao(resultado string) {
	if d == nil {
		return
	}
	d.consolidacoes.WithLabelValues(resultado).Inc()
}

// Notification records a delivery attempt: enviado, desabilitado or erro.
func (d *Domain) Notification(resultado string) {
	if d == nil {
		return
	}
	d.notifications.WithLabelValues(resultado).Inc()
}
