package routing

import (
	"context"
	"log/slog"
)

// RouteLogStore is the sink the forwarder drains summaries into.
// *LogRepository satisfies it.
type RouteLogStore interface {
	Create(ctx context.Context, rl *RouteLog) error
}

// Forwarder delivers computed route summaries to the route log in the
// background. A full queue or a storage failure is logged and dropped;
// forwarding never blocks or reverses a route display.
type Forwarder struct {
	repo   RouteLogStore
	ch     chan RouteLog
	ctx    context.Context
	cancel context.CancelFunc
}

func NewForwarder(repo RouteLogStore, queueSize int) *Forwarder {
	ctx, cancel := context.WithCancel(context.Background())
	return &Forwarder{
		repo:   repo,
		ch:     make(chan RouteLog, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Forward enqueues a summary for delivery. Never blocks.
func (f *Forwarder) Forward(summary *RouteSummary) {
	rl := RouteLog{
		Origin:      summary.Origin,
		Destination: summary.Destination,
		Waypoints:   summary.Waypoints,
		Distance:    summary.FormattedDistance,
		Duration:    summary.FormattedDuration,
		Polyline:    summary.Polyline,
		Path:        summary.Path,
	}

	select {
	case f.ch <- rl:
	default:
		slog.Error("route log queue full, dropping summary",
			"origin", rl.Origin,
			"destination", rl.Destination)
	}
}

// StartRouteLogListener starts a goroutine that drains the queue into the
// repository until Stop is called.
func (f *Forwarder) StartRouteLogListener() {
	go func() {
		for {
			select {
			case <-f.ctx.Done():
				slog.Info("route log listener stopped")
				return
			case rl := <-f.ch:
				if err := f.repo.Create(f.ctx, &rl); err != nil {
					slog.Error("failed to store route log",
						"origin", rl.Origin,
						"destination", rl.Destination,
						"error", err)
					continue
				}
				slog.Info("route log stored",
					"origin", rl.Origin,
					"destination", rl.Destination,
					"distance", rl.Distance,
					"duration", rl.Duration)
			}
		}
	}()
}

// StopRouteLogListener stops the background listener.
func (f *Forwarder) StopRouteLogListener() {
	if f.cancel != nil {
		f.cancel()
	}
}
