package reports

import (
	"time"
)

type AgingBucket string

const (
	AgingBucket0to30  AgingBucket = "0-30"
	AgingBucket31to60 AgingBucket = "31-60"
	AgingBucket61to90 AgingBucket = "61-90"
	AgingBucket90plus AgingBucket = "90+"
)

type AgingClassification struct {
	DaysOverdue int         `json:"days_overdue"`
	Bucket      AgingBucket `json:"bucket"`
	IsCurrent   bool        `json:"is_current"`
}

// ClassifyAging buckets an amount by how many calendar days past due it is.
// Days are counted by truncating both dates to midnight, so a due date of
// yesterday is exactly 1 day overdue regardless of the time of day. Items not
// yet due (days <= 0) are current but still land in the "0-30" bucket.
func ClassifyAging(dueDate time.Time, today time.Time) AgingClassification {
	days := int(truncateDay(today).Sub(truncateDay(dueDate)).Hours() / 24)

	var bucket AgingBucket
	switch {
	case days <= 30:
		bucket = AgingBucket0to30
	case days <= 60:
		bucket = AgingBucket31to60
	case days <= 90:
		bucket = AgingBucket61to90
	default:
		bucket = AgingBucket90plus
	}

	return AgingClassification{
		DaysOverdue: days,
		Bucket:      bucket,
		IsCurrent:   days <= 0,
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
