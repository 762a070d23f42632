package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fightpicks/internal/adapters/http/client"
	"github.com/okian/fightpicks/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const eventJSON = `{
  "id": "ufc-300",
  "name": "UFC 300",
  "start_time": "2099-04-13T22:00:00Z",
  "fights": [
    {"fighters": ["Pereira", "Hill"]},
    {"fighters": ["Zhang", "Yan"]}
  ]
}`

func newServer(t *testing.T, h http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL, client.WithSessionCookie("session", "tok"), client.WithTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestClient_New(t *testing.T) {
	Convey("Given a server url", t, func() {
		Convey("When it is relative", func() {
			_, err := client.New("picks.example.com")
			So(err, ShouldNotBeNil)
		})
		Convey("When it is absolute", func() {
			c, err := client.New("http://picks.example.com/")
			So(err, ShouldBeNil)
			So(c, ShouldNotBeNil)
		})
	})
}

func TestClient_FetchEvent(t *testing.T) {
	Convey("Given a picks server", t, func() {
		ctx := context.Background()

		Convey("When the event exists", func() {
			var gotPath, gotCookie, gotReqID string
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotReqID = r.Header.Get("X-Request-ID")
				if ck, err := r.Cookie("session"); err == nil {
					gotCookie = ck.Value
				}
				_, _ = w.Write([]byte(eventJSON))
			})

			ev, err := c.FetchEvent(ctx, "latest")

			Convey("Then the card is decoded", func() {
				So(err, ShouldBeNil)
				So(ev.ID, ShouldEqual, "ufc-300")
				So(ev.Fights, ShouldHaveLength, 2)
				So(ev.Fights[1].Fighters, ShouldResemble, []string{"Zhang", "Yan"})
			})

			Convey("Then the request carries the session and a request id", func() {
				So(gotPath, ShouldEqual, "/events/latest")
				So(gotCookie, ShouldEqual, "tok")
				So(gotReqID, ShouldNotBeEmpty)
			})
		})

		Convey("When the event does not exist", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				http.NotFound(w, nil)
			})

			_, err := c.FetchEvent(ctx, "nope")

			So(errors.Is(err, client.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the card is malformed", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":"e1","start_time":"LIVE","fights":[{"fighters":["A","A"]}]}`))
			})

			_, err := c.FetchEvent(ctx, "e1")

			So(errors.Is(err, client.ErrDecode), ShouldBeTrue)
		})

		Convey("When the body is not json", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			})

			_, err := c.FetchEvent(ctx, "e1")

			So(errors.Is(err, client.ErrDecode), ShouldBeTrue)
		})

		Convey("When the server fails", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			})

			_, err := c.FetchEvent(ctx, "e1")

			So(errors.Is(err, client.ErrUnexpected), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Internal server error")
		})
	})
}

func TestClient_FetchPicks(t *testing.T) {
	Convey("Given a picks server", t, func() {
		ctx := context.Background()

		Convey("When the user has picks with a score", func() {
			var gotPath string
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"user_id":"u1","event_id":"ufc-300","winners":["Hill"],"score":1,"created_at":"2024-04-13T00:00:00Z"}`))
			})

			p, err := c.FetchPicks(ctx, "ufc-300")

			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/events/ufc-300/picks")
			So(p.Winners, ShouldResemble, []string{"Hill"})
			So(p.Score, ShouldNotBeNil)
			So(*p.Score, ShouldEqual, 1)
		})

		Convey("When the user has no picks", func() {
			for _, body := range []string{`null`, `{"winners":[]}`, `{"event_id":"ufc-300","winners":null}`} {
				c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte(body))
				})

				_, err := c.FetchPicks(ctx, "ufc-300")

				So(errors.Is(err, client.ErrNoPicksYet), ShouldBeTrue)
			}
		})

		Convey("When the caller is signed out", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			})

			_, err := c.FetchPicks(ctx, "ufc-300")

			So(errors.Is(err, client.ErrUnauthenticated), ShouldBeTrue)
		})

		Convey("When the event id is missing from the answer", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"winners":["Yan"]}`))
			})

			p, err := c.FetchPicks(ctx, "ufc-300")

			So(err, ShouldBeNil)
			So(p.EventID, ShouldEqual, "ufc-300")
		})
	})
}

func TestClient_SavePicks(t *testing.T) {
	Convey("Given a picks server", t, func() {
		ctx := context.Background()

		Convey("When the save is accepted", func() {
			var got struct {
				Winners []string `json:"winners"`
			}
			var method, ctype string
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				method = r.Method
				ctype = r.Header.Get("Content-Type")
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(http.StatusCreated)
			})

			err := c.SavePicks(ctx, "ufc-300", []string{"Hill", "Yan"})

			So(err, ShouldBeNil)
			So(method, ShouldEqual, http.MethodPost)
			So(ctype, ShouldEqual, "application/json")
			So(got.Winners, ShouldResemble, []string{"Hill", "Yan"})
		})

		Convey("When nothing is picked the body still carries an array", func() {
			var raw map[string]any
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewDecoder(r.Body).Decode(&raw)
			})

			So(c.SavePicks(ctx, "ufc-300", nil), ShouldBeNil)
			So(raw["winners"], ShouldResemble, []any{})
		})

		Convey("When the server rejects the picks", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "picks for this event are closed", http.StatusBadRequest)
			})

			err := c.SavePicks(ctx, "ufc-300", []string{"Hill"})

			So(errors.Is(err, client.ErrSaveRejected), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "picks for this event are closed")
		})

		Convey("When the caller is signed out", func() {
			c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})

			err := c.SavePicks(ctx, "ufc-300", []string{"Hill"})

			So(errors.Is(err, client.ErrUnauthenticated), ShouldBeTrue)
		})

		Convey("When the server is unreachable", func() {
			srv := httptest.NewServer(http.NotFoundHandler())
			srv.Close()
			c, err := client.New(srv.URL)
			So(err, ShouldBeNil)

			err = c.SavePicks(ctx, "ufc-300", []string{"Hill"})

			So(err, ShouldNotBeNil)
			So(errors.Is(err, client.ErrSaveRejected), ShouldBeFalse)
		})
	})
}
