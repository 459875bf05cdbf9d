package exchange

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptrace"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blitz-io/blitz-go/input"
	"github.com/blitz-io/blitz-go/sprint"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Run executes the steps of plan one after the other and returns the
// timed result. When a step misses the expected status, Run stops and
// returns the steps done so far together with a *StatusError.
//
// Request headers keep the order they were sent in. Response headers are
// sorted by name, as net/http does not keep their wire order.
func Run(ctx context.Context, plan *input.Plan, options *Options) (*sprint.Result, error) {
	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}

	logger := options.logger()
	sprintID := uuid.New().String()
	logger.Debug().
		Str("sprint", sprintID).
		Str("region", plan.Region).
		Int("steps", len(plan.Steps)).
		Msg("starting sprint")

	result := &sprint.Result{
		Region: plan.Region,
		Schema: sprint.SchemaTimed,
	}
	start := time.Now()
	for i := range plan.Steps {
		step, err := runStep(ctx, client, &plan.Steps[i], sprintID, options)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i+1)
		}
		result.Steps = append(result.Steps, *step)
		logger.Debug().
			Str("sprint", sprintID).
			Int("step", i+1).
			Int("status", step.Response.Status).
			Dur("connect", step.Connect).
			Dur("duration", step.Duration).
			Msg("step done")

		if options.ExpectedStatus != 0 && step.Response.Status != options.ExpectedStatus {
			result.Duration = time.Since(start)
			return result, &StatusError{
				Step:     i + 1,
				Expected: options.ExpectedStatus,
				Actual:   step.Response.Status,
			}
		}
	}
	result.Duration = time.Since(start)
	return result, nil
}

func runStep(ctx context.Context, client *http.Client, step *input.Step, sprintID string, options *Options) (*sprint.Step, error) {
	r, snapshot, err := buildRequest(step, sprintID, options)
	if err != nil {
		return nil, err
	}

	timer := &connectTimer{}
	r = r.WithContext(httptrace.WithClientTrace(ctx, timer.trace()))

	start := time.Now()
	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	duration := time.Since(start)

	return &sprint.Step{
		Connect:  timer.elapsed(),
		Duration: duration,
		Request:  *snapshot,
		Response: responseSnapshot(resp, body),
	}, nil
}

// connectTimer measures the TCP connect of a request.
// Reused connections report zero.
type connectTimer struct {
	mu      sync.Mutex
	start   time.Time
	connect time.Duration
}

func (c *connectTimer) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		ConnectStart: func(network, addr string) {
			c.mu.Lock()
			if c.start.IsZero() {
				c.start = time.Now()
			}
			c.mu.Unlock()
		},
		ConnectDone: func(network, addr string, err error) {
			c.mu.Lock()
			if err == nil && !c.start.IsZero() && c.connect == 0 {
				c.connect = time.Since(c.start)
			}
			c.mu.Unlock()
		},
	}
}

func (c *connectTimer) elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connect
}

// responseSnapshot keeps what the report needs of resp. net/http does not
// keep the wire order of response headers, so they are sorted by name.
func responseSnapshot(resp *http.Response, body []byte) sprint.Transaction {
	var names []string
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	var headers sprint.Headers
	for _, name := range names {
		for _, value := range resp.Header[name] {
			headers.Add(name, value)
		}
	}

	message := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return sprint.Transaction{
		Status:  resp.StatusCode,
		Message: message,
		Content: string(body),
		Headers: headers,
	}
}
