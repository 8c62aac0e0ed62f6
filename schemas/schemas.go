// Package schemas registers the message records of the bundled applications.
package schemas

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/next-trace/scg-message-catalog/catalog"
	"github.com/next-trace/scg-message-catalog/optional"
	"github.com/next-trace/scg-message-catalog/schemas/apexracing"
	"github.com/next-trace/scg-message-catalog/schemas/jupiterwheels"
	"github.com/next-trace/scg-message-catalog/schemas/petclinic"
	"github.com/next-trace/scg-message-catalog/schemas/sleepontime"
)

// RegisterAll registers the records of every bundled application. It stops at the first conflict.
func RegisterAll(c *catalog.Catalog) error {
	for _, register := range []func(*catalog.Catalog) error{
		jupiterwheels.Register,
		sleepontime.Register,
		apexracing.Register,
		petclinic.Register,
	} {
		if err := register(c); err != nil {
			return err
		}
	}

	return nil
}

var sampleTime = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

var samples = map[string]func() (any, error){
	"jupiter-wheels/CreateNewBike": func() (any, error) {
		return jupiterwheels.NewCreateNewBike("Depot-1", "ebike", "new")
	},
	"jupiter-wheels/RequestBikeRental": func() (any, error) {
		return jupiterwheels.NewRequestBikeRental("u-1", "bike-7")
	},
	"jupiter-wheels/BikeRentalRequested": func() (any, error) {
		return jupiterwheels.NewBikeRentalRequested("u-1", "rental-3", "bike-7")
	},
	"sleep-on-time/InitiateCheckOut": func() (any, error) {
		return sleepontime.NewInitiateCheckOut("B1", "G1", "C1")
	},
	"sleep-on-time/GuestCheckedIn": func() (any, error) {
		return sleepontime.NewGuestCheckedIn(sampleTime, "B1", "G1", "C1")
	},
	"apex-racing-labs/RateRace": func() (any, error) {
		return apexracing.NewRateRace("race-123", "user-456", optional.Some("Great race!"), 5)
	},
	"apex-racing-labs/RaceRated": func() (any, error) {
		return apexracing.NewRaceRated("race-123", "user-456", optional.None[string](), 4)
	},
	"pet-clinic/RegisterPet": func() (any, error) {
		return petclinic.NewRegisterPet("pet-1", "owner@example.com", "Rex", sampleTime, "DOG")
	},
	"pet-clinic/PetRegistered": func() (any, error) {
		return petclinic.NewPetRegistered("pet-1", "owner@example.com", "Rex", sampleTime, "DOG")
	},
}

// Sample builds the bundled sample record registered under key ("namespace/name").
func Sample(key string) (any, error) {
	build, ok := samples[key]
	if !ok {
		return nil, fmt.Errorf("sample %q: unknown, want one of %v", key, SampleKeys())
	}

	return build()
}

// SampleKeys lists the keys Sample accepts, sorted.
func SampleKeys() []string {
	keys := lo.Keys(samples)
	sort.Strings(keys)

	return keys
}
