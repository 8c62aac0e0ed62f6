package jupiterwheels

import (
	"fmt"

	"github.com/next-trace/scg-message-catalog/catalog"
	"github.com/next-trace/scg-message-catalog/contract/message"
)

var descriptors = []struct {
	name   string
	role   message.Role
	sample any
	opts   []catalog.DescriptorOption
}{
	{"CreateNewBike", message.RoleCommand, CreateNewBike{}, nil},
	{"BikeCreated", message.RoleEvent, BikeCreated{}, nil},
	{"RequestBikeRental", message.RoleCommand, RequestBikeRental{}, []catalog.DescriptorOption{catalog.WithIdentity(rentalIdentity...)}},
	{"BikeRentalRequested", message.RoleEvent, BikeRentalRequested{}, nil},
	{"RemoveBikeFromFleet", message.RoleCommand, RemoveBikeFromFleet{}, []catalog.DescriptorOption{catalog.WithIdentity(fleetIdentity...)}},
	{"BikeRemovedFromFleet", message.RoleEvent, BikeRemovedFromFleet{}, nil},
	{"PaymentPreparationResult", message.RoleQueryResult, PaymentPreparationResult{}, nil},
	{"GetAvailableBikes", message.RoleQuery, GetAvailableBikes{}, nil},
	{"AvailableBikes", message.RoleQueryResult, AvailableBikes{}, nil},
}

// Register adds every jupiter-wheels record to c. It stops at the first conflict.
func Register(c *catalog.Catalog) error {
	for _, d := range descriptors {
		if _, err := c.Register(d.name, Namespace, d.role, d.sample, d.opts...); err != nil {
			return fmt.Errorf("%s: %w", Namespace, err)
		}
	}

	return nil
}
