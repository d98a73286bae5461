package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the daily check-in message.
type Scheduler struct {
	cron        *cron.Cron
	spec        string
	checkinFunc func()
}

func New(spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		spec: spec,
	}
}

func (s *Scheduler) SetCheckinFunction(f func()) {
	s.checkinFunc = f
}

func (s *Scheduler) Start() error {
	if s.checkinFunc == nil {
		log.Println("check-in function not set, scheduler will stay idle")
		return nil
	}
	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("triggered daily check-in (%s UTC)", s.spec)
		s.checkinFunc()
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("scheduler started, daily check-in at %q UTC", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("scheduler stopped")
}
