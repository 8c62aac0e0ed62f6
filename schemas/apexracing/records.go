// Package apexracing declares the messages of the race rating application.
package apexracing

import (
	"time"

	"github.com/next-trace/scg-message-catalog/optional"
	"github.com/next-trace/scg-message-catalog/record"
)

// Namespace is the catalog namespace of every record in this package.
const Namespace = "apex-racing-labs"

var (
	raceIdentity    = []string{"raceId"}
	accountIdentity = []string{"email"}
)

type CreateRace struct {
	ParticipatingDriverIDs []string  `json:"participatingDriverIds"`
	RaceID                 string    `json:"raceId" validate:"required"`
	RaceDate               time.Time `json:"raceDate" validate:"required"`
	TrackName              string    `json:"trackName" validate:"required"`
}

func NewCreateRace(driverIDs []string, raceID string, raceDate time.Time, trackName string) (CreateRace, error) {
	c := CreateRace{
		ParticipatingDriverIDs: append([]string{}, driverIDs...),
		RaceID:                 raceID,
		RaceDate:               raceDate,
		TrackName:              trackName,
	}

	return c, record.Validate(c, raceIdentity...)
}

type RaceCreated struct {
	ParticipatingDriverIDs []string  `json:"participatingDriverIds"`
	RaceID                 string    `json:"raceId" validate:"required" eventtag:"Race"`
	RaceDate               time.Time `json:"raceDate"`
	TrackName              string    `json:"trackName"`
}

func NewRaceCreated(driverIDs []string, raceID string, raceDate time.Time, trackName string) (RaceCreated, error) {
	e := RaceCreated{
		ParticipatingDriverIDs: append([]string{}, driverIDs...),
		RaceID:                 raceID,
		RaceDate:               raceDate,
		TrackName:              trackName,
	}

	return e, record.Validate(e)
}

type CancelRace struct {
	RaceID string `json:"raceId" validate:"required"`
}

func NewCancelRace(raceID string) (CancelRace, error) {
	c := CancelRace{RaceID: raceID}
	return c, record.Validate(c, raceIdentity...)
}

type RaceCancelled struct {
	RaceID string `json:"raceId" validate:"required" eventtag:"Race"`
}

func NewRaceCancelled(raceID string) (RaceCancelled, error) {
	e := RaceCancelled{RaceID: raceID}
	return e, record.Validate(e)
}

// RateRace rates a race from 1 to 5. Comment is optional.
type RateRace struct {
	RaceID  string                 `json:"raceId" validate:"required"`
	UserID  string                 `json:"userId" validate:"required"`
	Comment optional.Value[string] `json:"comment"`
	Rating  int                    `json:"rating" validate:"min=1,max=5"`
}

func NewRateRace(raceID, userID string, comment optional.Value[string], rating int) (RateRace, error) {
	c := RateRace{RaceID: raceID, UserID: userID, Comment: comment, Rating: rating}
	return c, record.Validate(c, raceIdentity...)
}

type RaceRated struct {
	RaceID  string                 `json:"raceId" validate:"required" eventtag:"Race"`
	UserID  string                 `json:"userId" validate:"required" eventtag:"User"`
	Comment optional.Value[string] `json:"comment"`
	Rating  int                    `json:"rating"`
}

func NewRaceRated(raceID, userID string, comment optional.Value[string], rating int) (RaceRated, error) {
	e := RaceRated{RaceID: raceID, UserID: userID, Comment: comment, Rating: rating}
	return e, record.Validate(e)
}

type CreateAccount struct {
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func NewCreateAccount(password, email string) (CreateAccount, error) {
	c := CreateAccount{Password: password, Email: email}
	return c, record.Validate(c, accountIdentity...)
}

type AccountCreated struct {
	Email             string `json:"email" validate:"required" eventtag:"Account"`
	VerificationToken string `json:"verificationToken"`
}

func NewAccountCreated(email, verificationToken string) (AccountCreated, error) {
	e := AccountCreated{Email: email, VerificationToken: verificationToken}
	return e, record.Validate(e)
}

type GetRaceProfile struct {
	RaceID string `json:"raceId" validate:"required"`
}

func NewGetRaceProfile(raceID string) (GetRaceProfile, error) {
	q := GetRaceProfile{RaceID: raceID}
	return q, record.Validate(q)
}

type UserComment struct {
	UserID  string `json:"userId"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
}

type DriverInfo struct {
	DriverID string `json:"driverId"`
	Name     string `json:"name"`
}

// RaceProfileResult is the rating profile of one race. AverageRating is absent until the race has
// been rated at least once.
type RaceProfileResult struct {
	TotalRatings         int                     `json:"totalRatings"`
	UserComments         []UserComment           `json:"userComments"`
	RaceID               string                  `json:"raceId" validate:"required"`
	AverageRating        optional.Value[float64] `json:"averageRating"`
	ParticipatingDrivers []DriverInfo            `json:"participatingDrivers"`
	Status               string                  `json:"status"`
	RaceDate             time.Time               `json:"raceDate"`
	TrackName            string                  `json:"trackName"`
}

func NewRaceProfileResult(
	totalRatings int,
	comments []UserComment,
	raceID string,
	averageRating optional.Value[float64],
	drivers []DriverInfo,
	status string,
	raceDate time.Time,
	trackName string,
) (RaceProfileResult, error) {
	r := RaceProfileResult{
		TotalRatings:         totalRatings,
		UserComments:         append([]UserComment{}, comments...),
		RaceID:               raceID,
		AverageRating:        averageRating,
		ParticipatingDrivers: append([]DriverInfo{}, drivers...),
		Status:               status,
		RaceDate:             raceDate,
		TrackName:            trackName,
	}

	return r, record.Validate(r)
}
