package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics methods are safe on a nil receiver so callers can run without them.
type Metrics struct {
	ActiveRooms      prometheus.Gauge
	ConnectedClients prometheus.Gauge
	ActionsReceived  *prometheus.CounterVec
	JoinsRejected    *prometheus.CounterVec
	GuessesResolved  *prometheus.CounterVec
	GamesFinished    prometheus.Counter
	RoomsSwept       prometheus.Counter
	MessagesDropped  prometheus.Counter
}

func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of live rooms",
		}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of open websocket connections",
		}),
		ActionsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_received_total",
			Help:      "Client actions received, by action name",
		}, []string{"action"}),
		JoinsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_rejected_total",
			Help:      "Rejected joins, by reason",
		}, []string{"reason"}),
		GuessesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_resolved_total",
			Help:      "Resolved guesses, by outcome",
		}, []string{"outcome"}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Rooms ended by their host",
		}),
		RoomsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_swept_total",
			Help:      "Rooms removed for inactivity",
		}),
		MessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Outbound messages dropped on full client buffers",
		}),
	}

	reg.MustRegister(
		m.ActiveRooms,
		m.ConnectedClients,
		m.ActionsReceived,
		m.JoinsRejected,
		m.GuessesResolved,
		m.GamesFinished,
		m.RoomsSwept,
		m.MessagesDropped,
	)
	return m
}

func (m *Metrics) SetActiveRooms(count int) {
	if m == nil {
		return
	}
	m.ActiveRooms.Set(float64(count))
}

func (m *Metrics) IncClients() {
	if m == nil {
		return
	}
	m.ConnectedClients.Inc()
}

func (m *Metrics) DecClients() {
	if m == nil {
		return
	}
	m.ConnectedClients.Dec()
}

func (m *Metrics) IncAction(action string) {
	if m == nil {
		return
	}
	m.ActionsReceived.WithLabelValues(action).Inc()
}

func (m *Metrics) IncJoinRejected(reason string) {
	if m == nil {
		return
	}
	m.JoinsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncGuess(correct bool) {
	if m == nil {
		return
	}
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	m.GuessesResolved.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncGamesFinished() {
	if m == nil {
		return
	}
	m.GamesFinished.Inc()
}

func (m *Metrics) AddRoomsSwept(n int) {
	if m == nil {
		return
	}
	m.RoomsSwept.Add(float64(n))
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.MessagesDropped.Inc()
}
