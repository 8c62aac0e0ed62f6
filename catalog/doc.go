/*
Package catalog is the registry of message descriptors.

Applications register every message record once at startup under a (name, namespace) pair with a
fixed role, then Seal the catalog before serving traffic. A sealed catalog is read-only and its
lookups take no lock.

	cat := catalog.New(catalog.WithLogger(logger))
	catalog.MustRegister(catalog.RegisterCommand[InitiateCheckOut](cat, "InitiateCheckOut", "sleep-on-time",
	    catalog.WithIdentity("bookingId", "guestId", "containerId")))
	cat.Seal()
*/
package catalog
