package petclinic

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
	{"RegisterPet", message.RoleCommand, RegisterPet{}, []catalog.DescriptorOption{catalog.WithIdentity(petIdentity...)}},
	{"PetRegistered", message.RoleEvent, PetRegistered{}, nil},
	{"NotifyOwner", message.RoleCommand, NotifyOwner{}, []catalog.DescriptorOption{catalog.WithIdentity(petIdentity...)}},
	{"OwnerNotified", message.RoleEvent, OwnerNotified{}, nil},
	{"PetsList", message.RoleQuery, PetsList{}, nil},
	{"PetsListResult", message.RoleQueryResult, PetsListResult{}, nil},
}

// Register adds every pet-clinic record to c. It stops at the first conflict.
func Register(c *catalog.Catalog) error {
	for _, d := range descriptors {
		if _, err := c.Register(d.name, Namespace, d.role, d.sample, d.opts...); err != nil {
			return fmt.Errorf("%s: %w", Namespace, err)
		}
	}

	return nil
}
