package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom implements Reporter over Prometheus collectors. It registers into
// the registry it is given, so embedding applications decide where and
// whether the metrics get exposed.
type Prom struct {
	ticks      prometheus.Counter
	tickTime   prometheus.Counter
	contacts   *prometheus.CounterVec
	stuck      prometheus.Counter
	spawned    *prometheus.CounterVec
	expired    *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	challenges *prometheus.CounterVec
	fallbacks  prometheus.Counter
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "ticks_total",
			Help:      "Simulation ticks processed.",
		}),
		tickTime: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "simulated_seconds_total",
			Help:      "Total simulated time advanced, after delta clamping.",
		}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "contacts_total",
			Help:      "Collision contacts recorded, by surface classification.",
		}, []string{"surface"}),
		stuck: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "stuck_recoveries_total",
			Help:      "Corrective impulses applied to escape stuck actors.",
		}),
		spawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "effects_spawned_total",
			Help:      "Combat effects spawned, by kind.",
		}, []string{"kind"}),
		expired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "effects_expired_total",
			Help:      "Combat effects removed after running out their duration.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "effects_rejected_total",
			Help:      "Spawn requests rejected by the per-kind cap.",
		}, []string{"kind"}),
		challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "challenges_resolved_total",
			Help:      "Challenges resolved, by outcome.",
		}, []string{"outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "office3d",
			Name:      "environment_fallbacks_total",
			Help:      "Times the session fell back to the synthesized environment.",
		}),
	}
	reg.MustRegister(
		p.ticks, p.tickTime, p.contacts, p.stuck,
		p.spawned, p.expired, p.rejected, p.challenges, p.fallbacks,
	)
	return p
}

func (p *Prom) TickProcessed(dt float32) {
	p.ticks.Inc()
	p.tickTime.Add(float64(dt))
}

func (p *Prom) ContactRecorded(surface string) {
	p.contacts.WithLabelValues(surface).Inc()
}

func (p *Prom) StuckRecovery() {
	p.stuck.Inc()
}

func (p *Prom) EffectSpawned(kind string) {
	p.spawned.WithLabelValues(kind).Inc()
}

func (p *Prom) EffectExpired(kind string) {
	p.expired.WithLabelValues(kind).Inc()
}

func (p *Prom) EffectRejected(kind string) {
	p.rejected.WithLabelValues(kind).Inc()
}

func (p *Prom) ChallengeResolved(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	p.challenges.WithLabelValues(outcome).Inc()
}

func (p *Prom) EnvironmentFallback(string) {
	p.fallbacks.Inc()
}
