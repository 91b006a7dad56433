package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/bolao-app/bolao-api/internal/platform/logging"
)

type publisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// LiveCheckNotifier schedules a delayed follow-up call to the live update job
// endpoint while matches are still in play. A nil publisher disables
// scheduling, which keeps local setups working without QStash credentials.
type LiveCheckNotifier struct {
	publisher publisher
	path      string
	delay     time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

func NewLiveCheckNotifier(pub *QStashPublisher, path string, delay time.Duration, logger *logging.Logger) *LiveCheckNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	if path == "" {
		path = "/v1/internal/jobs/update-live"
	}
	if delay <= 0 {
		delay = time.Minute
	}

	notifier := &LiveCheckNotifier{
		path:   path,
		delay:  delay,
		logger: logger,
		now:    time.Now,
	}
	if pub != nil {
		notifier.publisher = pub
	}
	return notifier
}

func (n *LiveCheckNotifier) ScheduleLiveCheck(ctx context.Context, fixtureIDs []int64) error {
	if n.publisher == nil {
		n.logger.DebugContext(ctx, "live check scheduling disabled, skipping", "fixture_count", len(fixtureIDs))
		return nil
	}
	if len(fixtureIDs) == 0 {
		return nil
	}

	payload := map[string]any{
		"fixtureIds": fixtureIDs,
	}
	// Bucketing the deduplication id by delay window collapses repeated
	// schedules from overlapping sweeps into a single queued message.
	bucket := n.now().UTC().Add(n.delay).Truncate(n.delay).Unix()
	deduplicationID := fmt.Sprintf("live-check-%d", bucket)

	return n.publisher.Enqueue(ctx, n.path, payload, n.delay, deduplicationID)
}
