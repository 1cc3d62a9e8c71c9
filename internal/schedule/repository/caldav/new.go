// Package caldav stores schedule events on a CalDAV server.
package caldav

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"

	"calboss/internal/schedule/repository"
	"calboss/pkg/log"
)

const productID = "-//CalBoss//CalDAV//EN"

// Client is the subset of *caldav.Client the repository needs.
type Client interface {
	QueryCalendar(ctx context.Context, calendar string, query *caldav.CalendarQuery) ([]caldav.CalendarObject, error)
	GetCalendarObject(ctx context.Context, path string) (*caldav.CalendarObject, error)
	PutCalendarObject(ctx context.Context, path string, cal *ical.Calendar) (*caldav.CalendarObject, error)
	RemoveAll(ctx context.Context, name string) error
}

// Options configures the CalDAV connection.
type Options struct {
	URL      string
	Username string
	Password string
}

type implRepository struct {
	l            log.Logger
	client       Client
	calendarPath string
	loc          *time.Location
	now          func() time.Time
	newUID       func() string
}

var _ repository.CalendarStore = (*implRepository)(nil)

// Dial connects to the CalDAV server with basic auth.
func Dial(opt Options) (Client, error) {
	httpClient := webdav.HTTPClientWithBasicAuth(&http.Client{Timeout: 30 * time.Second}, opt.Username, opt.Password)
	client, err := caldav.NewClient(httpClient, opt.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}
	return client, nil
}

// New creates a CalDAV backed CalendarStore. Events live at
// <calendarPath>/<id>.ics.
func New(l log.Logger, client Client, calendarPath string, loc *time.Location) repository.CalendarStore {
	if loc == nil {
		loc = time.UTC
	}
	if !strings.HasSuffix(calendarPath, "/") {
		calendarPath += "/"
	}
	return &implRepository{
		l:            l,
		client:       client,
		calendarPath: calendarPath,
		loc:          loc,
		now:          time.Now,
		newUID:       newUID,
	}
}
