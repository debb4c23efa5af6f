package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("transaction type must be string")
	}
	switch str {
	case "Income":
		*t = TransactionTypeIncome
	case "Expense":
		*t = TransactionTypeExpense
	default:
		return errors.New("invalid transaction type")
	}
	return nil
}

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "Pending"
	TransactionStatusPaid      TransactionStatus = "Paid"
	TransactionStatusOverdue   TransactionStatus = "Overdue"
	TransactionStatusCancelled TransactionStatus = "Cancelled"
)

func (t TransactionStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("transaction status must be string")
	}
	switch str {
	case "Pending":
		*t = TransactionStatusPending
	case "Paid":
		*t = TransactionStatusPaid
	case "Overdue":
		*t = TransactionStatusOverdue
	case "Cancelled":
		*t = TransactionStatusCancelled
	default:
		return errors.New("invalid transaction status")
	}
	return nil
}

type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "Vacant"
	UnitStatusOccupied    UnitStatus = "Occupied"
	UnitStatusMaintenance UnitStatus = "Maintenance"
)

func (t UnitStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *UnitStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("unit status must be string")
	}
	switch str {
	case "Vacant":
		*t = UnitStatusVacant
	case "Occupied":
		*t = UnitStatusOccupied
	case "Maintenance":
		*t = UnitStatusMaintenance
	default:
		return errors.New("invalid unit status")
	}
	return nil
}

type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "Active"
	LeaseStatusExpired    LeaseStatus = "Expired"
	LeaseStatusTerminated LeaseStatus = "Terminated"
)

func (t LeaseStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *LeaseStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("lease status must be string")
	}
	switch str {
	case "Active":
		*t = LeaseStatusActive
	case "Expired":
		*t = LeaseStatusExpired
	case "Terminated":
		*t = LeaseStatusTerminated
	default:
		return errors.New("invalid lease status")
	}
	return nil
}

type InspectionStatus string

const (
	InspectionStatusScheduled InspectionStatus = "Scheduled"
	InspectionStatusCompleted InspectionStatus = "Completed"
	InspectionStatusCancelled InspectionStatus = "Cancelled"
)

func (t InspectionStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *InspectionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("inspection status must be string")
	}
	switch str {
	case "Scheduled":
		*t = InspectionStatusScheduled
	case "Completed":
		*t = InspectionStatusCompleted
	case "Cancelled":
		*t = InspectionStatusCancelled
	default:
		return errors.New("invalid inspection status")
	}
	return nil
}

type UserRole string

const (
	UserRoleAdmin   UserRole = "Admin"
	UserRoleManager UserRole = "Manager"
	UserRoleViewer  UserRole = "Viewer"
)

func (t UserRole) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("user role must be string")
	}
	switch str {
	case "Admin":
		*t = UserRoleAdmin
	case "Manager":
		*t = UserRoleManager
	case "Viewer":
		*t = UserRoleViewer
	default:
		return errors.New("invalid user role")
	}
	return nil
}

type MyDateString time.Time

func (t MyDateString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).Format("2006-01-02T15:04:05"))), nil
}

// Parse the string into time.Time object
func (t *MyDateString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return errors.New("MyDateString must be string")
	}

	localTime, err := time.Parse("2006-01-02T15:04:05", str)
	if err != nil {
		// date-only input is accepted too
		localTime, err = time.Parse("2006-01-02", str)
		if err != nil {
			return errors.New("error parsing datetime")
		}
	}
	*t = MyDateString(localTime)

	return nil
}

func (t *MyDateString) StartOfDayUTCTime(timezone string) error {
	// do nothing if the pointer is nil
	if t == nil {
		return nil
	}

	localTime := time.Time(*t)

	if timezone == "" {
		timezone = "UTC"
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	localTimeInZone := time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		0, 0, 0, 0,
		location,
	)

	utcTime := localTimeInZone.In(time.UTC)
	*t = MyDateString(utcTime)

	return nil
}

func (t *MyDateString) EndOfDayUTCTime(timezone string) error {
	// do nothing if the pointer is nil
	if t == nil {
		return nil
	}

	localTime := time.Time(*t)

	if timezone == "" {
		timezone = "UTC"
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	localTimeInZone := time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		23, 59, 59, 999,
		location,
	)

	utcTime := localTimeInZone.In(time.UTC)
	*t = MyDateString(utcTime)

	return nil
}

func (t *MyDateString) UTCTime(timezone string) error {
	// do nothing if the pointer is nil
	if t == nil {
		return nil
	}

	localTime := time.Time(*t)

	if timezone == "" {
		timezone = "UTC"
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	localTimeInZone := time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		localTime.Hour(), localTime.Minute(), localTime.Second(), localTime.Nanosecond(),
		location,
	)

	utcTime := localTimeInZone.In(time.UTC)
	*t = MyDateString(utcTime)

	return nil
}

// Value implements the driver.Valuer interface
func (t MyDateString) Value() (driver.Value, error) {
	return time.Time(t), nil
}

// Scan implements the sql.Scanner interface
func (t *MyDateString) Scan(value interface{}) error {
	if value == nil {
		*t = MyDateString(time.Time{})
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*t = MyDateString(v)
	default:
		return fmt.Errorf("cannot convert %T to MyDateString", value)
	}
	return nil
}

func (t MyDateString) ToTime() time.Time {
	return time.Time(t)
}

func NowDateString() MyDateString {
	return MyDateString(time.Now().UTC())
}

func (t *MyDateString) SetDefaultNowIfNil() *MyDateString {
	if t == nil {
		now := MyDateString(time.Now())
		return &now
	}
	return t
}
