package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/wonny/rebal/pkg/config"
)

const reminderDescription = "VR 5.0 TQQQ 리밸런싱 점검 시간입니다.\n" +
	"현재가를 확인하고 매수/매도 여부를 결정하세요."

// reviewInterval is one VR cycle. 이 배포에서는 2주 고정.
const reviewInterval = 14 * 24 * time.Hour

// BiweeklyReminder renders a single-event ICS file for the next review:
// now+14 days at the configured hour, one hour long. A pure formatting
// function of "now"; VR state plays no part in it.
// ⭐ SSOT: ICS 생성은 이 함수에서만
func BiweeklyReminder(now time.Time, cfg config.ReminderConfig) ([]byte, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	local := now.In(loc).Add(reviewInterval)
	start := time.Date(local.Year(), local.Month(), local.Day(), cfg.Hour, 0, 0, 0, loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rebal//VR 5.0//KO")

	event := cal.AddEvent(uuid.NewString())
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(time.Hour))
	event.SetSummary(cfg.Title)
	event.SetDescription(reminderDescription)

	return []byte(cal.Serialize()), nil
}

// ReviewDates returns the dates of the next steps review cycles after base,
// spaced one cycle apart. Used to label projection rows.
func ReviewDates(base time.Time, steps int) []time.Time {
	if steps <= 0 {
		return []time.Time{}
	}

	dates := make([]time.Time, 0, steps)
	for i := 1; i <= steps; i++ {
		dates = append(dates, base.Add(time.Duration(i)*reviewInterval))
	}
	return dates
}
