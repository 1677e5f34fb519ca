package mailer

import (
	"context"
	"sync"

	"github.com/velokiez/cargoshare-backend/rent"
)

// FakeSender is a test implementation of Sender.
type FakeSender struct {
	mu           sync.Mutex
	RentMails    []rent.Booking
	StartupMails int
	Err          error // returned from every send when set
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (f *FakeSender) SendRentMail(ctx context.Context, booking rent.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.RentMails = append(f.RentMails, booking)
	return nil
}

func (f *FakeSender) SendStartupMail(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.StartupMails++
	return nil
}
