// Package petclinic declares the messages of the pet clinic application.
package petclinic

import (
	"time"

	"github.com/next-trace/scg-message-catalog/record"
)

// Namespace is the catalog namespace of every record in this package.
const Namespace = "pet-clinic"

var petIdentity = []string{"petId"}

type RegisterPet struct {
	PetID    string    `json:"petId" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Name     string    `json:"name" validate:"required"`
	Birthday time.Time `json:"birthday"`
	Type     string    `json:"type" validate:"required"`
}

func NewRegisterPet(petID, email, name string, birthday time.Time, petType string) (RegisterPet, error) {
	c := RegisterPet{PetID: petID, Email: email, Name: name, Birthday: birthday, Type: petType}
	return c, record.Validate(c, petIdentity...)
}

type PetRegistered struct {
	PetID    string    `json:"petId" validate:"required" eventtag:"Pet"`
	Email    string    `json:"email" eventtag:"Owner"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Type     string    `json:"type"`
}

func NewPetRegistered(petID, email, name string, birthday time.Time, petType string) (PetRegistered, error) {
	e := PetRegistered{PetID: petID, Email: email, Name: name, Birthday: birthday, Type: petType}
	return e, record.Validate(e)
}

type NotifyOwner struct {
	PetID      string `json:"petId" validate:"required"`
	OwnerID    string `json:"ownerId"`
	PetName    string `json:"petName"`
	OwnerEmail string `json:"ownerEmail" validate:"required,email"`
}

func NewNotifyOwner(petID, ownerID, petName, ownerEmail string) (NotifyOwner, error) {
	c := NotifyOwner{PetID: petID, OwnerID: ownerID, PetName: petName, OwnerEmail: ownerEmail}
	return c, record.Validate(c, petIdentity...)
}

type OwnerNotified struct {
	OwnerEmail         string `json:"ownerEmail" eventtag:"Owner"`
	PetID              string `json:"petId" validate:"required" eventtag:"Pet"`
	NotificationStatus string `json:"notificationStatus"`
}

func NewOwnerNotified(ownerEmail, petID, status string) (OwnerNotified, error) {
	e := OwnerNotified{OwnerEmail: ownerEmail, PetID: petID, NotificationStatus: status}
	return e, record.Validate(e)
}

// PetsList asks for every registered pet.
type PetsList struct{}

type PetDetails struct {
	PetID    string    `json:"petId"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Type     string    `json:"type"`
}

type PetsListResult struct {
	Pets []PetDetails `json:"pets"`
}

func NewPetsListResult(pets []PetDetails) PetsListResult {
	return PetsListResult{Pets: append([]PetDetails{}, pets...)}
}
