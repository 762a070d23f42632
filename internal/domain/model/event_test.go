package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/okian/fightpicks/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func card() *model.Event {
	return &model.Event{
		ID:        "ufc-300",
		Name:      "UFC 300",
		StartTime: "2026-04-13T22:00:00Z",
		Fights: []model.Fight{
			{Fighters: []string{"Pereira", "Hill"}},
			{Fighters: []string{"Zhang", "Yan"}},
		},
	}
}

func TestEvent(t *testing.T) {
	convey.Convey("Given an event card", t, func() {
		e := card()

		convey.Convey("When it validates", func() {
			convey.So(e.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When looking up fighters", func() {
			i, ok := e.FightOf("Yan")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(i, convey.ShouldEqual, 1)

			opp, ok := e.Opponent("Pereira")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(opp, convey.ShouldEqual, "Hill")

			opp, ok = e.Opponent("Hill")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(opp, convey.ShouldEqual, "Pereira")

			_, ok = e.Opponent("Nobody")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When parsing the start", func() {
			start, err := e.StartAt()
			convey.So(err, convey.ShouldBeNil)
			convey.So(start.Equal(time.Date(2026, 4, 13, 22, 0, 0, 0, time.UTC)), convey.ShouldBeTrue)
		})

		convey.Convey("When the event is live", func() {
			e.StartTime = model.StartTimeLive
			_, err := e.StartAt()
			convey.So(e.IsLive(), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrInvalidStart), convey.ShouldBeTrue)
		})

		convey.Convey("When the start time is garbage", func() {
			e.StartTime = "next saturday"
			_, err := e.StartAt()
			convey.So(errors.Is(err, model.ErrInvalidStart), convey.ShouldBeTrue)
		})

		convey.Convey("When every fight has a winner", func() {
			e.Fights[0].Winner = "Pereira"
			convey.So(e.IsFinished(), convey.ShouldBeFalse)
			e.Fights[1].Winner = "Zhang"
			convey.So(e.IsFinished(), convey.ShouldBeTrue)
		})

		convey.Convey("When the card is empty", func() {
			e.Fights = nil
			convey.So(e.IsFinished(), convey.ShouldBeFalse)
		})

		convey.Convey("When cloning", func() {
			c := e.Clone()
			c.Fights[0].Fighters[0] = "Changed"
			c.Fights[1].Winner = "Yan"

			convey.Convey("Then the original is untouched", func() {
				convey.So(e.Fights[0].Fighters[0], convey.ShouldEqual, "Pereira")
				convey.So(e.Fights[1].Winner, convey.ShouldEqual, "")
			})
		})
	})
}

func TestEventValidate(t *testing.T) {
	convey.Convey("Given malformed cards", t, func() {
		convey.Convey("Then a fight with one fighter is rejected", func() {
			e := card()
			e.Fights[0].Fighters = []string{"Pereira"}
			convey.So(errors.Is(e.Validate(), model.ErrInvalidEvent), convey.ShouldBeTrue)
		})

		convey.Convey("Then a fighter facing themself is rejected", func() {
			e := card()
			e.Fights[0].Fighters = []string{"Hill", "Hill"}
			convey.So(errors.Is(e.Validate(), model.ErrInvalidEvent), convey.ShouldBeTrue)
		})

		convey.Convey("Then a fighter booked twice is rejected", func() {
			e := card()
			e.Fights[1].Fighters = []string{"Hill", "Yan"}
			convey.So(errors.Is(e.Validate(), model.ErrInvalidEvent), convey.ShouldBeTrue)
		})

		convey.Convey("Then a winner outside the bout is rejected", func() {
			e := card()
			e.Fights[0].Winner = "Zhang"
			convey.So(errors.Is(e.Validate(), model.ErrInvalidEvent), convey.ShouldBeTrue)
		})

		convey.Convey("Then a missing id is rejected", func() {
			e := card()
			e.ID = ""
			convey.So(errors.Is(e.Validate(), model.ErrInvalidEvent), convey.ShouldBeTrue)
		})
	})
}
