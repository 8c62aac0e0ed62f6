package apexracing

import (
	"fmt"

	"github.com/next-trace/scg-message-catalog/catalog"
)

// Register adds every apex-racing-labs record to c. It stops at the first conflict.
func Register(c *catalog.Catalog) error {
	race := catalog.WithIdentity(raceIdentity...)

	steps := []func() (catalog.Descriptor, error){
		func() (catalog.Descriptor, error) { return catalog.RegisterCommand[CreateRace](c, "CreateRace", Namespace, race) },
		func() (catalog.Descriptor, error) { return catalog.RegisterCommand[CancelRace](c, "CancelRace", Namespace, race) },
		func() (catalog.Descriptor, error) { return catalog.RegisterCommand[RateRace](c, "RateRace", Namespace, race) },
		func() (catalog.Descriptor, error) {
			return catalog.RegisterCommand[CreateAccount](c, "CreateAccount", Namespace,
				catalog.WithIdentity(accountIdentity...))
		},
		func() (catalog.Descriptor, error) { return catalog.RegisterEvent[RaceCreated](c, "RaceCreated", Namespace) },
		func() (catalog.Descriptor, error) { return catalog.RegisterEvent[RaceCancelled](c, "RaceCancelled", Namespace) },
		func() (catalog.Descriptor, error) { return catalog.RegisterEvent[RaceRated](c, "RaceRated", Namespace) },
		func() (catalog.Descriptor, error) { return catalog.RegisterEvent[AccountCreated](c, "AccountCreated", Namespace) },
		func() (catalog.Descriptor, error) { return catalog.RegisterQuery[GetRaceProfile](c, "GetRaceProfile", Namespace) },
		func() (catalog.Descriptor, error) {
			return catalog.RegisterQueryResult[RaceProfileResult](c, "RaceProfileResult", Namespace)
		},
	}

	for _, step := range steps {
		if _, err := step(); err != nil {
			return fmt.Errorf("%s: %w", Namespace, err)
		}
	}

	return nil
}
