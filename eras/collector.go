package eras

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a Domain's diagnostic counters as Prometheus metrics.
// Register it on any prometheus.Registerer; collection only reads the
// atomic counters and never interferes with reclamation.
type Collector struct {
	domain *Domain

	era        *prometheus.Desc
	allocated  *prometheus.Desc
	retired    *prometheus.Desc
	reclaimed  *prometheus.Desc
	scans      *prometheus.Desc
	pending    *prometheus.Desc
	activeEras *prometheus.Desc
}

// NewCollector builds a Collector for d. The metric namespace is
// "hazard_eras".
func NewCollector(d *Domain) *Collector {
	return &Collector{
		domain: d,
		era: prometheus.NewDesc("hazard_eras_era",
			"Current value of the era clock.", nil, nil),
		allocated: prometheus.NewDesc("hazard_eras_allocated_total",
			"Reclaimable nodes stamped via Init.", nil, nil),
		retired: prometheus.NewDesc("hazard_eras_retired_total",
			"Nodes handed to the reclamation subsystem.", nil, nil),
		reclaimed: prometheus.NewDesc("hazard_eras_reclaimed_total",
			"Deleters run after the era-interval test passed.", nil, nil),
		scans: prometheus.NewDesc("hazard_eras_scans_total",
			"Reclamation passes executed.", nil, nil),
		pending: prometheus.NewDesc("hazard_eras_pending",
			"Retired nodes awaiting reclamation.", nil, nil),
		activeEras: prometheus.NewDesc("hazard_eras_active_slots",
			"Allocated hazard slots across live handles.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.era
	ch <- c.allocated
	ch <- c.retired
	ch <- c.reclaimed
	ch <- c.scans
	ch <- c.pending
	ch <- c.activeEras
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.domain.Stats()
	ch <- prometheus.MustNewConstMetric(c.era, prometheus.CounterValue, float64(s.Era))
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.CounterValue, float64(s.Allocated))
	ch <- prometheus.MustNewConstMetric(c.retired, prometheus.CounterValue, float64(s.Retired))
	ch <- prometheus.MustNewConstMetric(c.reclaimed, prometheus.CounterValue, float64(s.Reclaimed))
	ch <- prometheus.MustNewConstMetric(c.scans, prometheus.CounterValue, float64(s.Scans))
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(s.Pending))
	ch <- prometheus.MustNewConstMetric(c.activeEras, prometheus.GaugeValue, float64(s.ActiveEras))
}
