package service

import (
	"testing"
	"time"

	"github.com/diegoclair/slack-attendance-bot/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_newScheduler(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	sched := newScheduler(m.mockDispatcher, nil, timetable.Default(), time.UTC)

	require.NotNil(t, sched)
	assert.Equal(t, timetable.Default().FireTimes(), sched.fireTimes)
	assert.NotNil(t, sched.stopChan)
	assert.False(t, sched.running)
}

func Test_scheduler_nextFire(t *testing.T) {
	type args struct {
		now time.Time
	}
	tests := []struct {
		name     string
		args     args
		wantTime time.Time
		wantHHMM string
	}{
		{
			name:     "Should return next trigger later today",
			args:     args{now: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)}, // Tuesday 10:00
			wantTime: time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC),
			wantHHMM: "11:00",
		},
		{
			name:     "Should return first trigger tomorrow after last of the day",
			args:     args{now: time.Date(2025, 6, 3, 17, 30, 0, 0, time.UTC)},
			wantTime: time.Date(2025, 6, 4, 8, 55, 0, 0, time.UTC),
			wantHHMM: "08:55",
		},
		{
			name:     "Should not refire an exactly-now trigger",
			args:     args{now: time.Date(2025, 6, 3, 11, 0, 0, 0, time.UTC)},
			wantTime: time.Date(2025, 6, 3, 12, 30, 0, 0, time.UTC),
			wantHHMM: "12:30",
		},
		{
			name:     "Should schedule Saturday fires too, weekend policy applies at fire time",
			args:     args{now: time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)}, // Friday evening
			wantTime: time.Date(2025, 6, 7, 8, 55, 0, 0, time.UTC),           // Saturday
			wantHHMM: "08:55",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			sched := newScheduler(m.mockDispatcher, nil, timetable.Default(), time.UTC)

			gotTime, gotHHMM := sched.nextFire(tc.args.now)
			assert.Equal(t, tc.wantTime, gotTime)
			assert.Equal(t, tc.wantHHMM, gotHHMM)
		})
	}
}

func Test_scheduler_fire_InvokesDispatcher(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	m.mockDispatcher.EXPECT().
		SendScheduledMessage(gomock.Any(), "12:30", gomock.Any()).
		Times(1)

	sched := newScheduler(m.mockDispatcher, nil, timetable.Default(), time.UTC)
	sched.fire("12:30")
}

func Test_scheduler_runBirthdayCheck_OncePerDay(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	birthday := newBirthday(m.mockSlackClient, nil)
	sched := newScheduler(m.mockDispatcher, birthday, timetable.Default(), time.UTC)

	day := time.Date(2025, 6, 3, 8, 55, 0, 0, time.UTC)
	sched.runBirthdayCheck(day)
	sched.runBirthdayCheck(day.Add(4 * time.Hour))
	assert.Equal(t, "2025-06-03", sched.lastBirthdayCheck)

	sched.runBirthdayCheck(day.AddDate(0, 0, 1))
	assert.Equal(t, "2025-06-04", sched.lastBirthdayCheck)
}

func Test_scheduler_StartStop(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	sched := newScheduler(m.mockDispatcher, nil, timetable.Default(), time.UTC)

	sched.Start()
	assert.True(t, sched.running)
	// Second Start is a no-op.
	sched.Start()

	sched.Stop()
	assert.False(t, sched.running)
	// Second Stop is a no-op.
	sched.Stop()
}
