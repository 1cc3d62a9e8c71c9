package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"calboss/pkg/tokenstore"
)

// pageSize is the Google API maximum for events.list.
const pageSize = 250

// ErrNotFound is returned when the event (or calendar) does not exist.
var ErrNotFound = errors.New("gcalendar: not found")

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*options)

type options struct {
	store   tokenstore.Store
	account string
	rps     float64
}

// WithTokenStore sets where installed-app OAuth tokens are read from and
// refreshed tokens are written back to. Defaults to token.json.
func WithTokenStore(store tokenstore.Store, account string) Option {
	return func(o *options) {
		o.store = store
		o.account = account
	}
}

// WithRateLimit caps outgoing API calls per second. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(o *options) {
		o.rps = rps
	}
}

func buildOptions(opts []Option) options {
	o := options{store: tokenstore.NewFileStore("token.json"), account: "default"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newClient(svc *calendar.Service, o options) *Client {
	c := &Client{service: svc}
	if o.rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(o.rps), 1)
	}
	return c
}

// NewClientFromCredentialsFile creates a Calendar client from a credentials JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string, opts ...Option) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, opts...)
}

// NewClientFromCredentialsJSON creates a Calendar client from raw Service
// Account or installed-app OAuth JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, opts ...Option) (*Client, error) {
	o := buildOptions(opts)

	// Try service account first
	config, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return newClient(svc, o), nil
	}

	// Fallback: installed app credentials with a stored token
	oauthConfig, oauthErr := OAuthConfigFromJSON(credentialsJSON)
	if oauthErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: installed app: %w (service account: %v)", oauthErr, err)
	}

	tok, tokErr := o.store.Load(ctx, o.account)
	if tokErr != nil {
		if errors.Is(tokErr, tokenstore.ErrNotFound) {
			return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token is stored for %q: run scripts/gcal-auth first", o.account)
		}
		return nil, fmt.Errorf("failed to load oauth token: %w", tokErr)
	}

	ts := &persistingTokenSource{
		ctx:     ctx,
		base:    oauthConfig.TokenSource(ctx, tok),
		store:   o.store,
		account: o.account,
		last:    tok.AccessToken,
	}
	svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(oauth2.ReuseTokenSource(tok, ts)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", svcErr)
	}

	return newClient(svc, o), nil
}

// OAuthConfigFromJSON parses installed-app client credentials.
func OAuthConfigFromJSON(credentialsJSON []byte) (*oauth2.Config, error) {
	var creds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if err := json.Unmarshal(credentialsJSON, &creds); err != nil {
		return nil, err
	}
	if creds.Installed.ClientID == "" {
		return nil, errors.New("missing installed.client_id")
	}

	cfg := &oauth2.Config{
		ClientID:     creds.Installed.ClientID,
		ClientSecret: creds.Installed.ClientSecret,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}
	if len(creds.Installed.RedirectURIs) > 0 {
		cfg.RedirectURL = creds.Installed.RedirectURIs[0]
	}
	return cfg, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return newClient(svc, buildOptions(opts)), nil
}

// persistingTokenSource writes refreshed tokens back to the store.
type persistingTokenSource struct {
	ctx     context.Context
	base    oauth2.TokenSource
	store   tokenstore.Store
	account string
	last    string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		if err := s.store.Save(s.ctx, s.account, tok); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func calendarOrPrimary(id string) string {
	if id == "" {
		return "primary"
	}
	return id
}

func wrapErr(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CreateEvent creates a new Google Calendar event.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Location:    req.Location,
		Recurrence:  req.Recurrence,
	}

	if req.AllDay {
		event.Start = &calendar.EventDateTime{Date: req.StartDate, TimeZone: req.Timezone}
		event.End = &calendar.EventDateTime{Date: req.EndDate, TimeZone: req.Timezone}
	} else {
		event.Start = &calendar.EventDateTime{
			// RFC3339 embeds the offset; TimeZone is still needed to expand recurrences.
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		}
		event.End = &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		}
	}

	if req.ReminderMinutes != nil {
		overrides := make([]*calendar.EventReminder, 0, len(req.ReminderMinutes))
		for _, m := range req.ReminderMinutes {
			overrides = append(overrides, &calendar.EventReminder{Method: "popup", Minutes: m})
		}
		event.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		}
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	created, err := c.service.Events.Insert(calendarOrPrimary(req.CalendarID), event).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("failed to create calendar event", err)
	}

	return toEvent(created), nil
}

// ListEvents returns single event instances in [TimeMin, TimeMax) ordered by
// start, following pages until MaxResults (if set) is reached.
func (c *Client) ListEvents(ctx context.Context, req ListEventsRequest) ([]Event, error) {
	var (
		out       []Event
		pageToken string
	)

	for {
		call := c.service.Events.List(calendarOrPrimary(req.CalendarID)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(pageSize)
		if !req.TimeMin.IsZero() {
			call = call.TimeMin(req.TimeMin.Format(time.RFC3339))
		}
		if !req.TimeMax.IsZero() {
			call = call.TimeMax(req.TimeMax.Format(time.RFC3339))
		}
		if req.Query != "" {
			call = call.Q(req.Query)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, wrapErr("failed to list calendar events", err)
		}

		for _, item := range resp.Items {
			if item.Status == "cancelled" {
				continue
			}
			out = append(out, *toEvent(item))
			if req.MaxResults > 0 && int64(len(out)) >= req.MaxResults {
				return out, nil
			}
		}

		if resp.NextPageToken == "" {
			return out, nil
		}
		pageToken = resp.NextPageToken
	}
}

// GetEvent fetches one event by id.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	ev, err := c.service.Events.Get(calendarOrPrimary(calendarID), eventID).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("failed to get calendar event", err)
	}
	return toEvent(ev), nil
}

// UpdateDescription replaces an event's description.
func (c *Client) UpdateDescription(ctx context.Context, calendarID, eventID, description string) (*Event, error) {
	patch := &calendar.Event{Description: description, ForceSendFields: []string{"Description"}}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	ev, err := c.service.Events.Patch(calendarOrPrimary(calendarID), eventID, patch).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr("failed to update calendar event", err)
	}
	return toEvent(ev), nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	if err := c.service.Events.Delete(calendarOrPrimary(calendarID), eventID).Context(ctx).Do(); err != nil {
		return wrapErr("failed to delete calendar event", err)
	}
	return nil
}

func toEvent(e *calendar.Event) *Event {
	out := &Event{
		ID:               e.Id,
		Summary:          e.Summary,
		Description:      e.Description,
		HtmlLink:         e.HtmlLink,
		Location:         e.Location,
		Recurrence:       e.Recurrence,
		RecurringEventID: e.RecurringEventId,
	}
	if e.Start != nil {
		out.StartDate = e.Start.Date
		out.StartTime = parseDateTime(e.Start.DateTime)
	}
	if e.End != nil {
		out.EndDate = e.End.Date
		out.EndTime = parseDateTime(e.End.DateTime)
	}
	return out
}

func parseDateTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
