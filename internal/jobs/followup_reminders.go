package jobs

import (
	"context"
	"log"
	"time"

	"cresocrm/internal/repositories"
)

// FollowUpReminderService scans distributors whose follow_up_date has
// arrived and reports them. Dates are stored as opaque YYYY-MM-DD text;
// rows with an unparsable or unset date are skipped.
type FollowUpReminderService struct {
	distributorRepo repositories.DistributorRepository
}

type FollowUpAlert struct {
	DistributorID int64
	Arn           string
	HolderName    string
	FollowUpDate  string
}

func NewFollowUpReminderService(distributorRepo repositories.DistributorRepository) *FollowUpReminderService {
	return &FollowUpReminderService{distributorRepo: distributorRepo}
}

const followUpDateLayout = "2006-01-02"

// CheckDueFollowUps returns an alert for every distributor whose
// follow-up date is on or before the reference time.
func (s *FollowUpReminderService) CheckDueFollowUps(ctx context.Context, now time.Time) ([]FollowUpAlert, error) {
	distributors, err := s.distributorRepo.GetAll(ctx)
	if err != nil {
		log.Printf("Failed to list distributors for follow-up scan: %v", err)
		return nil, err
	}

	today := now.Truncate(24 * time.Hour)

	var alerts []FollowUpAlert
	for _, distributor := range distributors {
		if distributor.FollowUpDate == nil || *distributor.FollowUpDate == "" {
			continue
		}
		due, err := time.Parse(followUpDateLayout, *distributor.FollowUpDate)
		if err != nil {
			log.Printf("Skipping distributor %d: bad follow_up_date %q", distributor.ID, *distributor.FollowUpDate)
			continue
		}
		if !due.After(today) {
			alerts = append(alerts, FollowUpAlert{
				DistributorID: distributor.ID,
				Arn:           distributor.Arn,
				HolderName:    distributor.ArnHolderName,
				FollowUpDate:  *distributor.FollowUpDate,
			})
		}
	}
	return alerts, nil
}

func (s *FollowUpReminderService) LogDueFollowUps(alerts []FollowUpAlert) {
	if len(alerts) == 0 {
		log.Println("No follow-ups due")
		return
	}

	log.Printf("%d follow-up(s) due:", len(alerts))
	for _, alert := range alerts {
		log.Printf("- %s (%s, id %d) was due %s",
			alert.HolderName, alert.Arn, alert.DistributorID, alert.FollowUpDate)
	}
}
