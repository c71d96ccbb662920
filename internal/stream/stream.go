// Package stream publishes a validated task plan to the benchmark web
// frontend over socket.io, so operators can review the task table from the
// browser before launching anything. Interval results are out of scope
// here; only plan events are emitted.
package stream

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/tracebench/internal/ctxlog"
	"github.com/vk/tracebench/internal/plan"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names the frontend listens for.
const (
	PlanEvent = "task_plan"
	EndEvent  = "plan_end"
)

// DefaultTimeout bounds the connect-and-publish round trip.
const DefaultTimeout = 10 * time.Second

// Options configures a frontend connection.
type Options struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publish connects to the frontend, emits the plan followed by the end
// marker, and disconnects. It blocks until the publish completes, the
// connection fails, or the timeout fires.
func Publish(ctx context.Context, opts Options, report *plan.Report) error {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace)
	logger.Debug("Publishing task plan to frontend.")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return fmt.Errorf("failed to parse frontend URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(parsedURL.Path)

	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(opts.Namespace, sockOpts)
	defer func() {
		logger.Debug("Disconnecting from frontend.")
		io.Disconnect()
	}()

	done := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to frontend.", "sid", io.Id())
		if err := io.Emit(PlanEvent, report); err != nil {
			done <- fmt.Errorf("failed to emit task plan: %w", err)
			return
		}
		if err := io.Emit(EndEvent); err != nil {
			done <- fmt.Errorf("failed to emit end marker: %w", err)
			return
		}
		logger.Info("Task plan published.", "tasks", report.NrTasks)
		done <- nil
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- err
				return
			}
		}
		done <- fmt.Errorf("frontend connection failed")
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out publishing task plan to %s", opts.URL)
	case err := <-done:
		return err
	}
}
