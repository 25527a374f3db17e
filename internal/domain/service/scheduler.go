package service

import (
	"context"
	"log"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/domain/contract"
	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
)

// scheduler fires the timetable's triggers at wall-clock time. Missed
// fires are not caught up and a failed dispatch is not retried; the
// weekend policy lives in the dispatcher, evaluated at fire time.
type scheduler struct {
	dispatcher contract.Dispatcher
	birthday   *birthdayService
	fireTimes  []string
	loc        *time.Location

	stopChan chan struct{}
	running  bool

	// lastBirthdayCheck guards the once-per-day birthday run.
	lastBirthdayCheck string
}

func newScheduler(dispatcher contract.Dispatcher, birthday *birthdayService, tt *timetable.Timetable, loc *time.Location) *scheduler {
	return &scheduler{
		dispatcher: dispatcher,
		birthday:   birthday,
		fireTimes:  tt.FireTimes(),
		loc:        loc,
		stopChan:   make(chan struct{}),
	}
}

func (s *scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	log.Println("Scheduler starting...")
	go s.mainLoop()
}

func (s *scheduler) Stop() {
	if !s.running {
		return
	}
	log.Println("Scheduler stopping...")
	close(s.stopChan)
	s.running = false
}

func (s *scheduler) mainLoop() {
	for {
		now := time.Now().In(s.loc)
		nextTime, hhmm := s.nextFire(now)

		log.Printf("Next scheduled message at %s (%s)", nextTime.Format("2006-01-02 15:04:05 MST"), hhmm)

		waitDuration := time.Until(nextTime)
		if waitDuration <= 0 {
			s.fire(hhmm)
			// Wait 1 minute to prevent re-processing the same trigger
			time.Sleep(1 * time.Minute)
			continue
		}

		timer := time.NewTimer(waitDuration)

		select {
		case <-timer.C:
			s.fire(hhmm)
			// Wait 1 minute to prevent re-processing the same trigger
			time.Sleep(1 * time.Minute)
		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

func (s *scheduler) fire(hhmm string) {
	now := time.Now().In(s.loc)

	s.runBirthdayCheck(now)
	s.dispatcher.SendScheduledMessage(context.Background(), hhmm, now)
}

// nextFire returns the next trigger instant strictly after now, rolling
// over to tomorrow's first trigger once today's are exhausted.
func (s *scheduler) nextFire(now time.Time) (time.Time, string) {
	var best time.Time
	var bestHHMM string

	for _, hhmm := range s.fireTimes {
		hour, minute, err := timetable.ParseHHMM(hhmm)
		if err != nil {
			log.Printf("Invalid trigger time %q: %v", hhmm, err)
			continue
		}

		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}

		if best.IsZero() || candidate.Before(best) {
			best = candidate
			bestHHMM = hhmm
		}
	}

	return best, bestHHMM
}

// runBirthdayCheck runs the birthday greeting at most once per calendar
// day, piggybacking on the first trigger fire of the day.
func (s *scheduler) runBirthdayCheck(now time.Time) {
	if s.birthday == nil {
		return
	}

	today := now.Format("2006-01-02")
	if s.lastBirthdayCheck == today {
		return
	}
	s.lastBirthdayCheck = today
	s.birthday.GreetBirthdays(now)
}
