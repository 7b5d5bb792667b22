package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"discogswatch/internal/discogs"
	"discogswatch/internal/metrics"
	"discogswatch/internal/models"
	"discogswatch/internal/sensors"
)

// DefaultPollInterval keeps well under the Discogs rate budget even for
// large collections.
const DefaultPollInterval = 10 * time.Minute

// Poller rebuilds the account snapshot on a fixed interval and holds the
// current snapshot and random pick for the API handlers. Only the poller
// writes; handlers read under the lock.
type Poller struct {
	client   *discogs.Client
	picker   *RandomPicker
	interval time.Duration
	log      logrus.FieldLogger

	mu       sync.RWMutex
	snap     *models.AccountSnapshot
	pick     *models.RandomPick
	pollID   string
	lastPoll time.Time
	nextPoll time.Time
}

// Status reports the poller's scheduling state.
type Status struct {
	PollID       string    `json:"poll_id"`
	Username     string    `json:"username"`
	LastPoll     time.Time `json:"last_poll"`
	NextPoll     time.Time `json:"next_poll"`
	PollInterval string    `json:"poll_interval"`
}

func NewPoller(client *discogs.Client, picker *RandomPicker, interval time.Duration, log logrus.FieldLogger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		client:   client,
		picker:   picker,
		interval: interval,
		log:      log,
	}
}

// Setup runs the first poll cycle synchronously. An unauthorized token
// fails setup outright: no snapshot, no sensors, caller aborts.
func (p *Poller) Setup(ctx context.Context) error {
	return p.poll(ctx)
}

// Start runs the poll loop until ctx is cancelled. Setup must have
// succeeded first.
func (p *Poller) Start(ctx context.Context) {
	p.log.WithField("interval", p.interval).Info("Poller started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Poller stopping")
			return
		case <-ticker.C:
			if err := p.poll(ctx); err != nil {
				// Post-setup auth failures keep the last snapshot; the
				// token may have been revoked upstream.
				p.log.WithError(err).Error("Poll cycle failed, keeping previous snapshot")
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context) error {
	start := time.Now()
	pollID := uuid.New().String()
	log := p.log.WithField("poll_id", pollID)

	snap, err := BuildSnapshot(ctx, p.client, log)
	if err != nil {
		// BuildSnapshot only errors on rejected credentials; anything
		// else resolves to defaulted fields.
		return err
	}

	pick := p.picker.Pick(ctx, snap)

	p.mu.Lock()
	p.snap = snap
	p.pick = pick
	p.pollID = pollID
	p.lastPoll = start
	p.nextPoll = start.Add(p.interval)
	p.mu.Unlock()

	p.publish(snap)
	metrics.PollCycles.Inc()
	metrics.PollDuration.Observe(time.Since(start).Seconds())

	log.WithFields(logrus.Fields{
		"collection": snap.CollectionCount,
		"wantlist":   snap.WantlistCount,
		"vinyl":      snap.VinylCount,
		"cd":         snap.CDCount,
		"duration":   time.Since(start),
	}).Info("Poll cycle complete")
	return nil
}

// publish pushes the snapshot's figures to the Prometheus gauges. A
// valuation string that fails to parse leaves its gauge untouched for
// this cycle.
func (p *Poller) publish(snap *models.AccountSnapshot) {
	metrics.CollectionRecords.Set(float64(snap.CollectionCount))
	metrics.WantlistRecords.Set(float64(snap.WantlistCount))
	metrics.VinylRecords.Set(float64(snap.VinylCount))
	metrics.CDRecords.Set(float64(snap.CDCount))

	values := map[string]string{
		"minimum": snap.ValueMin,
		"median":  snap.ValueMedian,
		"maximum": snap.ValueMax,
	}
	for stat, raw := range values {
		if parsed, ok := sensors.ParseValueString(raw); ok {
			metrics.CollectionValue.WithLabelValues(stat, snap.CurrencySymbol).Set(parsed)
		}
	}
}

// Snapshot returns the current snapshot and random pick. Both may be nil
// before the first successful cycle.
func (p *Poller) Snapshot() (*models.AccountSnapshot, *models.RandomPick) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap, p.pick
}

// GetStatus returns the poller's scheduling state for the status endpoint.
func (p *Poller) GetStatus() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := Status{
		PollID:       p.pollID,
		LastPoll:     p.lastPoll,
		NextPoll:     p.nextPoll,
		PollInterval: p.interval.String(),
	}
	if p.snap != nil {
		status.Username = p.snap.Username
	}
	return status
}
