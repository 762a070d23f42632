package eligibility_test

import (
	"testing"
	"time"

	"github.com/okian/fightpicks/internal/domain/eligibility"
	"github.com/okian/fightpicks/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIsLocked(t *testing.T) {
	Convey("Given an event starting at 22:00 UTC", t, func() {
		start := time.Date(2026, 10, 24, 22, 0, 0, 0, time.UTC)
		e := &model.Event{ID: "e1", StartTime: start.Format(time.RFC3339)}

		Convey("Before the start it is open", func() {
			So(eligibility.IsLocked(e, start.Add(-time.Minute)), ShouldBeFalse)
		})

		Convey("Exactly at the start it is still open", func() {
			So(eligibility.IsLocked(e, start), ShouldBeFalse)
		})

		Convey("After the start it is locked", func() {
			So(eligibility.IsLocked(e, start.Add(time.Second)), ShouldBeTrue)
		})

		Convey("A live event is locked regardless of clock", func() {
			e.StartTime = model.StartTimeLive
			So(eligibility.IsLocked(e, start.Add(-24*time.Hour)), ShouldBeTrue)
		})

		Convey("An unparseable start is locked", func() {
			e.StartTime = "tbd"
			So(eligibility.IsLocked(e, start.Add(-24*time.Hour)), ShouldBeTrue)
		})

		Convey("A missing event is locked", func() {
			So(eligibility.IsLocked(nil, start), ShouldBeTrue)
		})
	})
}
