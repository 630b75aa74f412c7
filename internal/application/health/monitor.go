package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger acquires and releases a database connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// Metrics records health check outcomes
type Metrics interface {
	SetDatabaseUp(up bool)
}

// Monitor monitors database reachability
type Monitor struct {
	pinger   Pinger
	metrics  Metrics
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	status  Status
}

// Status represents the outcome of the latest health check
type Status struct {
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// NewMonitor creates a new health monitor. An interval of zero disables
// background checks.
func NewMonitor(pinger Pinger, metrics Metrics, interval, timeout time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		metrics:  metrics,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Check pings the database once, logs the result and stores it.
func (m *Monitor) Check(ctx context.Context) Status {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	status := Status{CheckedAt: time.Now()}
	if err := m.pinger.Ping(ctx); err != nil {
		status.Error = err.Error()
		m.logger.Error("database connection failed", zap.Error(err))
	} else {
		status.Healthy = true
		m.logger.Info("database connection succeeded")
	}

	if m.metrics != nil {
		m.metrics.SetDatabaseUp(status.Healthy)
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()

	return status
}

// Start starts background checks
func (m *Monitor) Start() {
	if m.interval <= 0 {
		return
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	go m.run(stopCh)
}

// Stop stops background checks
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stopCh := m.stopCh
	m.mu.Unlock()

	close(stopCh)
}

func (m *Monitor) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.Check(context.Background())
		}
	}
}

// GetStatus returns the latest stored status
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// IsHealthy returns true if the latest check succeeded
func (m *Monitor) IsHealthy() bool {
	return m.GetStatus().Healthy
}
