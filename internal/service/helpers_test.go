package service

import (
	"context"
	"time"

	"rondasapi/internal/model"
	"rondasapi/internal/notify"
)

type fakeNotifier struct {
	err  error
	sent []notify.Message
}

func (f *fakeNotifier) Send(_ context.Context, m notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func day(y int, m time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var aurora = &model.Condominio{ID: 1, Nome: "Residencial Aurora"}
