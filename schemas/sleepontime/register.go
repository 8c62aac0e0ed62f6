package sleepontime

import (
	"fmt"

	"github.com/next-trace/scg-message-catalog/catalog"
)

// Register adds every sleep-on-time record to c. It stops at the first conflict.
func Register(c *catalog.Catalog) error {
	stay := catalog.WithIdentity(stayIdentity...)

	steps := []func() (catalog.Descriptor, error){
		func() (catalog.Descriptor, error) {
			return catalog.RegisterCommand[InitiateCheckOut](c, "InitiateCheckOut", Namespace, stay)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterCommand[ObtainContainer](c, "ObtainContainer", Namespace, stay)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterCommand[ReportContainerIssue](c, "ReportContainerIssue", Namespace, stay)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterEvent[GuestCheckedIn](c, "GuestCheckedIn", Namespace)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterEvent[GuestCheckedOut](c, "GuestCheckedOut", Namespace)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterEvent[ContainerObtained](c, "ContainerObtained", Namespace)
		},
		func() (catalog.Descriptor, error) {
			return catalog.RegisterEvent[ContainerIssueReported](c, "ContainerIssueReported", Namespace)
		},
	}

	for _, step := range steps {
		if _, err := step(); err != nil {
			return fmt.Errorf("%s: %w", Namespace, err)
		}
	}

	return nil
}
