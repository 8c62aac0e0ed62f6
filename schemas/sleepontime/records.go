// Package sleepontime declares the messages of the sleeping-container hotel application.
package sleepontime

import (
	"time"

	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/record"
)

// Namespace is the catalog namespace of every record in this package.
const Namespace = "sleep-on-time"

// Commands addressed to a stay target the (booking, guest, container) triple.
var stayIdentity = []string{"bookingId", "guestId", "containerId"}

// InitiateCheckOut starts the check-out of a guest from a container.
type InitiateCheckOut struct {
	BookingID   string `json:"bookingId" validate:"required"`
	GuestID     string `json:"guestId" validate:"required"`
	ContainerID string `json:"containerId" validate:"required"`
}

func NewInitiateCheckOut(bookingID, guestID, containerID string) (InitiateCheckOut, error) {
	c := InitiateCheckOut{BookingID: bookingID, GuestID: guestID, ContainerID: containerID}
	return c, record.Validate(c, stayIdentity...)
}

// TargetIdentity is the stay the check-out applies to.
func (c InitiateCheckOut) TargetIdentity() identity.Identity {
	return identity.Of(c.BookingID, c.GuestID, c.ContainerID)
}

type ObtainContainer struct {
	BookingID   string `json:"bookingId" validate:"required"`
	GuestID     string `json:"guestId" validate:"required"`
	ContainerID string `json:"containerId" validate:"required"`
}

func NewObtainContainer(bookingID, guestID, containerID string) (ObtainContainer, error) {
	c := ObtainContainer{BookingID: bookingID, GuestID: guestID, ContainerID: containerID}
	return c, record.Validate(c, stayIdentity...)
}

type ReportContainerIssue struct {
	BookingID   string `json:"bookingId" validate:"required"`
	IssueType   string `json:"issueType" validate:"required"`
	GuestID     string `json:"guestId" validate:"required"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	ContainerID string `json:"containerId" validate:"required"`
}

func NewReportContainerIssue(
	bookingID, issueType, guestID, description, severity, containerID string,
) (ReportContainerIssue, error) {
	c := ReportContainerIssue{
		BookingID:   bookingID,
		IssueType:   issueType,
		GuestID:     guestID,
		Description: description,
		Severity:    severity,
		ContainerID: containerID,
	}

	return c, record.Validate(c, stayIdentity...)
}

type GuestCheckedIn struct {
	CheckedInAt time.Time `json:"checkedInAt"`
	BookingID   string    `json:"bookingId" validate:"required" eventtag:"Booking"`
	GuestID     string    `json:"guestId" validate:"required" eventtag:"Guest"`
	ContainerID string    `json:"containerId" validate:"required" eventtag:"Container"`
}

func NewGuestCheckedIn(checkedInAt time.Time, bookingID, guestID, containerID string) (GuestCheckedIn, error) {
	e := GuestCheckedIn{CheckedInAt: checkedInAt, BookingID: bookingID, GuestID: guestID, ContainerID: containerID}
	return e, record.Validate(e)
}

type GuestCheckedOut struct {
	BookingID    string    `json:"bookingId" validate:"required" eventtag:"Booking"`
	GuestID      string    `json:"guestId" validate:"required" eventtag:"Guest"`
	CheckedOutAt time.Time `json:"checkedOutAt"`
	ContainerID  string    `json:"containerId" validate:"required" eventtag:"Container"`
}

func NewGuestCheckedOut(bookingID, guestID string, checkedOutAt time.Time, containerID string) (GuestCheckedOut, error) {
	e := GuestCheckedOut{BookingID: bookingID, GuestID: guestID, CheckedOutAt: checkedOutAt, ContainerID: containerID}
	return e, record.Validate(e)
}

type ContainerObtained struct {
	BookingID   string    `json:"bookingId" validate:"required" eventtag:"Booking"`
	GuestID     string    `json:"guestId" validate:"required" eventtag:"Guest"`
	Timestamp   time.Time `json:"timestamp"`
	ContainerID string    `json:"containerId" validate:"required" eventtag:"Container"`
}

func NewContainerObtained(bookingID, guestID string, timestamp time.Time, containerID string) (ContainerObtained, error) {
	e := ContainerObtained{BookingID: bookingID, GuestID: guestID, Timestamp: timestamp, ContainerID: containerID}
	return e, record.Validate(e)
}

type ContainerIssueReported struct {
	IssueID     string    `json:"issueId" validate:"required" eventtag:"Issue"`
	BookingID   string    `json:"bookingId" validate:"required" eventtag:"Booking"`
	IssueType   string    `json:"issueType"`
	GuestID     string    `json:"guestId" validate:"required" eventtag:"Guest"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reportedAt"`
	Severity    string    `json:"severity"`
	ContainerID string    `json:"containerId" validate:"required" eventtag:"Container"`
}

func NewContainerIssueReported(
	issueID, bookingID, issueType, guestID, description string,
	reportedAt time.Time,
	severity, containerID string,
) (ContainerIssueReported, error) {
	e := ContainerIssueReported{
		IssueID:     issueID,
		BookingID:   bookingID,
		IssueType:   issueType,
		GuestID:     guestID,
		Description: description,
		ReportedAt:  reportedAt,
		Severity:    severity,
		ContainerID: containerID,
	}

	return e, record.Validate(e)
}
