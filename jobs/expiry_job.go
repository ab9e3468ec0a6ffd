// jobs/expiry_job.go
package jobs

import (
	"log"
	"time"

	"shelter-backend/services"
	"shelter-backend/utils"

	"github.com/robfig/cron/v3"
)

// ExpiryReporter periodically reports service reservations whose slot
// already ended while still pending or confirmed. Reporting only: an
// expired reservation keeps its status until a staff member acts on it.
type ExpiryReporter struct {
	Svc  *services.ServiceReservationService
	cron *cron.Cron
}

func NewExpiryReporter(svc *services.ServiceReservationService) *ExpiryReporter {
	return &ExpiryReporter{
		Svc:  svc,
		cron: cron.New(),
	}
}

// Start schedules the report. EXPIRY_REPORT_SCHEDULE overrides the
// default hourly run.
func (j *ExpiryReporter) Start() error {
	spec := utils.EnvOrDefault("EXPIRY_REPORT_SCHEDULE", "@hourly")
	if _, err := j.cron.AddFunc(spec, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	log.Printf("✅ Expiry reporter scheduled (%s)", spec)
	return nil
}

func (j *ExpiryReporter) Stop() {
	j.cron.Stop()
}

// Run executes one report pass.
func (j *ExpiryReporter) Run() {
	asOf := time.Now().UTC()
	expired, err := j.Svc.ExpiredReservations(asOf)
	if err != nil {
		log.Printf("warning: expiry report failed: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}
	for i := range expired {
		r := &expired[i]
		log.Printf("expired service reservation %s (id=%d, status=%s, ended %s)",
			r.ReferenceCode, r.ID, r.Status, r.EndsAt().Format(time.RFC3339))
	}
	log.Printf("%d service reservation(s) expired as of %s", len(expired), asOf.Format(time.RFC3339))
}
