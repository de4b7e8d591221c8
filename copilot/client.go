// Package copilot talks to the Copilot chat backend: session creation,
// message submission, and polled retrieval of the assembled response from
// its activity feed.
package copilot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/WildSphee/copilot-testing/config"
)

// ErrBackendUnavailable marks a transport or status failure while creating
// a session or submitting a message. The affected turn is unusable; retry
// policy, if any, belongs to the caller.
var ErrBackendUnavailable = errors.New("copilot backend unavailable")

// fastDrainCount is the value the poll counter jumps to once any message
// text has been observed, so the loop winds down instead of waiting out
// the full budget.
const fastDrainCount = 1000

// Client issues the three-step chat protocol against the backend.
type Client struct {
	initURL       string
	chatURL       string
	pollInterval  time.Duration
	maxPolls      int
	latencyOffset time.Duration
	httpClient    *http.Client
}

// New creates a Client from the runtime configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		initURL:       cfg.CopilotInitURL,
		chatURL:       cfg.CopilotChatURL,
		pollInterval:  cfg.PollInterval,
		maxPolls:      cfg.MaxPolls,
		latencyOffset: cfg.LatencyOffset,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Session identifies one conversation with the backend. A session is
// consumed by a single turn and discarded afterwards.
type Session struct {
	Token          string `json:"token"`
	ConversationID string `json:"conversationid"`
}

// TurnHandle points at the activity feed of one submitted message.
type TurnHandle struct {
	RequestLink string
	Token       string
	Watermark   int
}

// Outcome tags how a poll loop ended.
type Outcome int

const (
	// OutcomeEmpty means no message text ever arrived.
	OutcomeEmpty Outcome = iota
	// OutcomeComplete means text arrived and the drain loop wound down.
	OutcomeComplete
	// OutcomePartial means text arrived but the loop was cut short.
	OutcomePartial
)

// Transcript is the outcome of draining one turn's activity feed.
type Transcript struct {
	Text    string
	Polls   int
	Outcome Outcome
}

// Answer is the result of one full chat turn.
type Answer struct {
	Text string
	// ResponseTime is the poll duration in seconds, minus the configured
	// latency offset. It can be slightly negative for instantly-empty
	// streams.
	ResponseTime float64
	Outcome      Outcome
}

// InitSession creates a new conversation with the backend.
func (c *Client) InitSession(ctx context.Context) (Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.initURL, nil)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, fmt.Errorf("%w: init returned status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return Session{}, fmt.Errorf("%w: decoding init response: %v", ErrBackendUnavailable, err)
	}
	return sess, nil
}

type chatRequest struct {
	Token          string `json:"token"`
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type chatResponse struct {
	RequestLink string `json:"request_link"`
}

// SendMessage posts the user message against the session and returns a
// handle for polling the response, starting at watermark 0.
func (c *Client) SendMessage(ctx context.Context, sess Session, text string) (TurnHandle, error) {
	body, err := json.Marshal(chatRequest{
		Token:          sess.Token,
		ConversationID: sess.ConversationID,
		Message:        text,
	})
	if err != nil {
		return TurnHandle{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return TurnHandle{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TurnHandle{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TurnHandle{}, fmt.Errorf("%w: chat returned status %d", ErrBackendUnavailable, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return TurnHandle{}, fmt.Errorf("%w: decoding chat response: %v", ErrBackendUnavailable, err)
	}

	return TurnHandle{
		RequestLink: chat.RequestLink,
		Token:       sess.Token,
		Watermark:   0,
	}, nil
}

// Activity is one event in the backend's feed.
type Activity struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// activityFeed mirrors the GET body of the request link. Watermark is the
// remote-sourced cursor; CurrentWatermark is injected by the client before
// the staleness comparison, matching the negotiated protocol use.
type activityFeed struct {
	Activities       []Activity `json:"activities"`
	Watermark        string     `json:"watermark"`
	CurrentWatermark int        `json:"-"`
}

func (c *Client) fetchFeed(ctx context.Context, handle TurnHandle) *activityFeed {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, handle.RequestLink, nil)
	if err != nil {
		slog.Error("building feed request failed", "err", err)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+handle.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("fetching activity feed failed", "err", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("activity feed returned bad status", "status", resp.StatusCode)
		return nil
	}

	var feed activityFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		slog.Error("decoding activity feed failed", "err", err)
		return nil
	}
	feed.CurrentWatermark = handle.Watermark
	return &feed
}

// PollResponse drains the turn's activity feed: it repeatedly fetches the
// feed, appends the text of every newly-arrived "message" activity, and
// stops on watermark mismatch, loss of the feed, or exhaustion of the poll
// budget. Seeing any text jumps the budget so the loop finishes within one
// more cycle instead of waiting out the full cap.
func (c *Client) PollResponse(ctx context.Context, handle TurnHandle) Transcript {
	var (
		text    strings.Builder
		index   int
		polls   int
		sawText bool
	)

	for count := 0; count < c.maxPolls; count++ {
		feed := c.fetchFeed(ctx, handle)
		polls++
		if feed == nil || feed.CurrentWatermark != handle.Watermark {
			// The feed moved on or went away: end of stream.
			break
		}
		for ; index < len(feed.Activities); index++ {
			activity := feed.Activities[index]
			if activity.Type == "message" && activity.Text != "" {
				text.WriteString(activity.Text)
				sawText = true
				count = fastDrainCount
			}
		}
		if err := sleepCtx(ctx, c.pollInterval); err != nil {
			outcome := OutcomeEmpty
			if sawText {
				outcome = OutcomePartial
			}
			return Transcript{Text: text.String(), Polls: polls, Outcome: outcome}
		}
	}

	outcome := OutcomeEmpty
	if sawText {
		outcome = OutcomeComplete
	}
	return Transcript{Text: text.String(), Polls: polls, Outcome: outcome}
}

// Ask runs one full chat turn: init, submit, poll. Backend failures are
// absorbed here and yield an empty Answer with zero latency; they never
// propagate past this boundary.
func (c *Client) Ask(ctx context.Context, question string) Answer {
	sess, err := c.InitSession(ctx)
	if err != nil {
		slog.Error("copilot init failed", "err", err)
		return Answer{}
	}

	handle, err := c.SendMessage(ctx, sess, question)
	if err != nil {
		slog.Error("copilot chat failed", "err", err)
		return Answer{}
	}

	start := time.Now()
	transcript := c.PollResponse(ctx, handle)
	elapsed := time.Since(start) - c.latencyOffset

	return Answer{
		Text:         transcript.Text,
		ResponseTime: elapsed.Seconds(),
		Outcome:      transcript.Outcome,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
