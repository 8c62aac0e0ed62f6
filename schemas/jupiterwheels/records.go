// Package jupiterwheels declares the messages of the bike rental application.
package jupiterwheels

import (
	"github.com/next-trace/scg-message-catalog/optional"
	"github.com/next-trace/scg-message-catalog/record"
)

// Namespace is the catalog namespace of every record in this package.
const Namespace = "jupiter-wheels"

var (
	rentalIdentity = []string{"userId", "bikeId"}
	fleetIdentity  = []string{"bikeId"}
)

// CreateNewBike adds a bike to the fleet. The bike does not exist yet, so the command carries no
// target identity.
type CreateNewBike struct {
	Location  string `json:"location" validate:"required"`
	BikeType  string `json:"bikeType" validate:"required"`
	Condition string `json:"condition" validate:"required"`
}

func NewCreateNewBike(location, bikeType, condition string) (CreateNewBike, error) {
	c := CreateNewBike{Location: location, BikeType: bikeType, Condition: condition}
	return c, record.Validate(c)
}

type BikeCreated struct {
	Location  string `json:"location"`
	BikeType  string `json:"bikeType"`
	Condition string `json:"condition"`
	BikeID    string `json:"bikeId" validate:"required" eventtag:"Bike"`
}

func NewBikeCreated(location, bikeType, condition, bikeID string) (BikeCreated, error) {
	e := BikeCreated{Location: location, BikeType: bikeType, Condition: condition, BikeID: bikeID}
	return e, record.Validate(e)
}

type RequestBikeRental struct {
	UserID string `json:"userId" validate:"required"`
	BikeID string `json:"bikeId" validate:"required"`
}

func NewRequestBikeRental(userID, bikeID string) (RequestBikeRental, error) {
	c := RequestBikeRental{UserID: userID, BikeID: bikeID}
	return c, record.Validate(c, rentalIdentity...)
}

type BikeRentalRequested struct {
	UserID   string `json:"userId" validate:"required" eventtag:"User"`
	RentalID string `json:"rentalId" validate:"required" eventtag:"Rental"`
	BikeID   string `json:"bikeId" validate:"required" eventtag:"Bike"`
}

func NewBikeRentalRequested(userID, rentalID, bikeID string) (BikeRentalRequested, error) {
	e := BikeRentalRequested{UserID: userID, RentalID: rentalID, BikeID: bikeID}
	return e, record.Validate(e)
}

type RemoveBikeFromFleet struct {
	Reason string `json:"reason" validate:"required"`
	BikeID string `json:"bikeId" validate:"required"`
}

func NewRemoveBikeFromFleet(reason, bikeID string) (RemoveBikeFromFleet, error) {
	c := RemoveBikeFromFleet{Reason: reason, BikeID: bikeID}
	return c, record.Validate(c, fleetIdentity...)
}

type BikeRemovedFromFleet struct {
	Reason string `json:"reason"`
	BikeID string `json:"bikeId" validate:"required" eventtag:"Bike"`
}

func NewBikeRemovedFromFleet(reason, bikeID string) (BikeRemovedFromFleet, error) {
	e := BikeRemovedFromFleet{Reason: reason, BikeID: bikeID}
	return e, record.Validate(e)
}

// PaymentPreparationResult answers a payment preparation. RedirectURL is absent when the payment
// provider needs no redirect.
type PaymentPreparationResult struct {
	PaymentID   string                 `json:"paymentId" validate:"required"`
	RedirectURL optional.Value[string] `json:"redirectUrl"`
}

func NewPaymentPreparationResult(paymentID string, redirectURL optional.Value[string]) (PaymentPreparationResult, error) {
	r := PaymentPreparationResult{PaymentID: paymentID, RedirectURL: redirectURL}
	return r, record.Validate(r)
}

type GetAvailableBikes struct {
	Location string `json:"location" validate:"required"`
}

func NewGetAvailableBikes(location string) (GetAvailableBikes, error) {
	q := GetAvailableBikes{Location: location}
	return q, record.Validate(q)
}

type AvailableBikes struct {
	Bikes []string `json:"bikes"`
}

func NewAvailableBikes(bikes []string) AvailableBikes {
	return AvailableBikes{Bikes: append([]string{}, bikes...)}
}
