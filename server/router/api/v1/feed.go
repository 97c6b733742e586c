package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/parkjy76/haruplan/store"
)

const feedItemLimit = 50

// feed renders upcoming events as an RSS feed, so the schedule can be
// followed from any feed reader without another delivery channel.
func (s *APIV1Service) feed(c echo.Context) error {
	now := time.Now().In(s.Profile.Location)
	startTs := now.Unix()
	limit := feedItemLimit
	events, err := s.Store.ListEvents(c.Request().Context(), &store.FindEvent{
		StartTs: &startTs,
		Limit:   &limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list events")
	}

	feed := &feeds.Feed{
		Title:       "haruplan upcoming events",
		Link:        &feeds.Link{Href: fmt.Sprintf("http://%s/api/v1/feed", s.Profile.ListenAddr())},
		Description: "Upcoming schedule entries",
		Created:     now,
	}
	for _, ev := range events {
		when := time.Unix(ev.EventTs, 0).In(s.Profile.Location)
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          ev.UID,
			Title:       ev.Title,
			Description: when.Format("2006-01-02 15:04"),
			Created:     when,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render feed")
	}
	return c.Blob(http.StatusOK, "application/rss+xml", []byte(rss))
}
