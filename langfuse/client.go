package langfuse

import (
	"context"
	"sync"
	"time"
)

// batchRequest represents a batch of events to be sent.
type batchRequest struct {
	events []ingestionEvent
	ctx    context.Context
}

// Client is the Langfuse ingestion client.
type Client struct {
	config *Config
	http   *httpClient

	mu            sync.Mutex
	pendingEvents []ingestionEvent
	closed        bool

	// Background goroutine management.
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	batchQueue chan batchRequest
	stopFlush  chan struct{}

	// Graceful shutdown signaling.
	drainSignal   chan struct{}
	drainComplete chan struct{}
}

// New creates a new Langfuse client.
func New(publicKey, secretKey string, opts ...ConfigOption) (*Client, error) {
	cfg := &Config{
		PublicKey: publicKey,
		SecretKey: secretKey,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a new Langfuse client from a Config struct.
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	// Copy so the caller's struct is not modified.
	cfgCopy := *cfg
	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		config:        &cfgCopy,
		http:          newHTTPClient(&cfgCopy),
		pendingEvents: make([]ingestionEvent, 0, cfgCopy.BatchSize),
		ctx:           ctx,
		cancel:        cancel,
		batchQueue:    make(chan batchRequest, cfgCopy.BatchQueueSize),
		stopFlush:     make(chan struct{}),
		drainSignal:   make(chan struct{}),
		drainComplete: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.batchProcessor()

	c.wg.Add(1)
	go c.flushLoop()

	return c, nil
}

// batchProcessor sends queued batches. On drainSignal it flushes all
// remaining events before signaling completion via drainComplete.
func (c *Client) batchProcessor() {
	defer c.wg.Done()
	defer close(c.drainComplete)

	for {
		select {
		case <-c.drainSignal:
			c.drainAllEvents()
			return

		case <-c.ctx.Done():
			// Forced shutdown without drain signal.
			c.logDebug("batch processor context cancelled without drain signal")
			return

		case req := <-c.batchQueue:
			if err := c.sendBatch(req.ctx, req.events); err != nil {
				c.logError("batch send failed", "error", err, "events", len(req.events))
			}
		}
	}
}

// drainAllEvents drains pending events and queued batches during
// shutdown, under a fresh context since the client context may already
// be cancelled.
func (c *Client) drainAllEvents() {
	drainCtx, cancel := context.WithTimeout(context.Background(), c.config.ShutdownTimeout)
	defer cancel()

	pending := c.drainPendingEvents()
	if len(pending) > 0 {
		c.logDebug("draining pending events during shutdown", "count", len(pending))
		if err := c.sendBatch(drainCtx, pending); err != nil {
			c.logError("drain send failed", "error", err)
		}
	}

	for {
		select {
		case req := <-c.batchQueue:
			if err := c.sendBatch(drainCtx, req.events); err != nil {
				c.logError("drain send failed", "error", err)
			}
		case <-drainCtx.Done():
			c.logError("drain timeout, some events may be lost")
			return
		default:
			return
		}
	}
}

// flushLoop periodically flushes pending events.
func (c *Client) flushLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopFlush:
			return
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if err := c.Flush(c.ctx); err != nil && err != ErrClientClosed {
				c.logError("periodic flush failed", "error", err)
			}
		}
	}
}

// sendBatch sends a batch of events to the ingestion endpoint.
func (c *Client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	if len(events) == 0 {
		return nil
	}

	req := &ingestionRequest{Batch: events}
	var result IngestionResult
	if err := c.http.post(ctx, endpoints.Ingestion, req, &result); err != nil {
		return err
	}

	// The API can accept a batch while rejecting individual events.
	if result.HasErrors() {
		for _, e := range result.Errors {
			c.logError("ingestion error", "event_id", e.ID, "status", e.Status, "message", e.Message)
		}
	}

	return nil
}

// queueEvent adds an event to the pending queue, flushing a full batch
// to the background sender.
func (c *Client) queueEvent(ctx context.Context, event ingestionEvent) error {
	events, err := c.addEventToQueue(event)
	if err != nil {
		return err
	}

	if len(events) > 0 {
		select {
		case c.batchQueue <- batchRequest{events: events, ctx: ctx}:
		default:
			// Queue is full; send inline rather than dropping.
			if err := c.sendBatch(ctx, events); err != nil {
				return err
			}
		}
	}

	return nil
}

// addEventToQueue atomically adds an event and returns a full batch to
// flush, if any.
func (c *Client) addEventToQueue(event ingestionEvent) ([]ingestionEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClientClosed
	}

	c.pendingEvents = append(c.pendingEvents, event)

	if len(c.pendingEvents) >= c.config.BatchSize {
		events := c.pendingEvents
		c.pendingEvents = make([]ingestionEvent, 0, c.config.BatchSize)
		return events, nil
	}

	return nil, nil
}

// Flush sends all pending events to the Langfuse API. It blocks until
// the batch is delivered or the context is cancelled.
func (c *Client) Flush(ctx context.Context) error {
	events, err := c.extractPendingEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	return c.sendBatch(ctx, events)
}

// extractPendingEvents atomically extracts and clears pending events.
func (c *Client) extractPendingEvents() ([]ingestionEvent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClientClosed
	}
	if len(c.pendingEvents) == 0 {
		return nil, nil
	}

	events := c.pendingEvents
	c.pendingEvents = make([]ingestionEvent, 0, c.config.BatchSize)
	return events, nil
}

// markClosed atomically marks the client as closed.
func (c *Client) markClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	c.closed = true
	return nil
}

// drainPendingEvents atomically drains all pending events during
// shutdown.
func (c *Client) drainPendingEvents() []ingestionEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.pendingEvents
	c.pendingEvents = nil
	return events
}

// Shutdown flushes pending events and closes the client gracefully.
//
// The shutdown sequence:
//  1. Stop accepting new events
//  2. Stop the flush loop
//  3. Signal the batch processor to drain all queued events
//  4. Wait for drain to complete (or timeout)
//  5. Cancel the internal context and wait for goroutines
//
// Returns a ShutdownError if shutdown times out; remaining events may
// be lost in that case.
func (c *Client) Shutdown(ctx context.Context) error {
	if err := c.markClosed(); err != nil {
		return err
	}

	close(c.stopFlush)

	// Signal drain before cancelling the context so the processor can
	// finish sending.
	close(c.drainSignal)

	shutdownCtx, cancel := context.WithTimeout(ctx, c.config.ShutdownTimeout)
	defer cancel()

	select {
	case <-c.drainComplete:
		c.logDebug("batch processor drain complete")
	case <-shutdownCtx.Done():
		c.logError("drain timeout, forcing shutdown")
	}

	c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownCtx.Done():
		pending := len(c.batchQueue) * c.config.BatchSize
		return &ShutdownError{
			Cause:         shutdownCtx.Err(),
			PendingEvents: pending,
		}
	}
}

// Health checks the health of the Langfuse API.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var result HealthStatus
	if err := c.http.get(ctx, endpoints.Health, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// logDebug logs a debug message when debug mode is enabled.
func (c *Client) logDebug(msg string, args ...any) {
	if c.config.Debug {
		c.config.Logger.Debug(msg, args...)
	}
}

// logError logs an error-level message.
func (c *Client) logError(msg string, args ...any) {
	c.config.Logger.Error(msg, args...)
}
