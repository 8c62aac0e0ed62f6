package apexracing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/next-trace/scg-message-catalog/catalog"
	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/optional"
	"github.com/next-trace/scg-message-catalog/record"
	"github.com/next-trace/scg-message-catalog/schemas/apexracing"
)

func TestRateRace(t *testing.T) {
	req := require.New(t)
	cat := catalog.New()
	req.NoError(apexracing.Register(cat))

	rate, err := apexracing.NewRateRace("race-123", "user-456", optional.None[string](), 4)
	req.NoError(err)

	d, ok := cat.DescriptorOf(rate)
	req.True(ok)
	req.Equal(identity.Of("race-123"), d.Resolve(rate))

	_, err = apexracing.NewRateRace("race-123", "user-456", optional.None[string](), 6)
	req.ErrorIs(err, cerr.ErrInvalidRecord)
}

func TestCreateAccount_EmailIsIdentity(t *testing.T) {
	_, err := apexracing.NewCreateAccount("password123", "not-an-email")

	require.ErrorIs(t, err, cerr.ErrMalformedIdentity)
}

func TestRaceProfileResult(t *testing.T) {
	req := require.New(t)
	day := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	unrated, err := apexracing.NewRaceProfileResult(0, nil, "race-1", optional.None[float64](), nil, "SCHEDULED", day, "Monza")
	req.NoError(err)

	_, rated := unrated.AverageRating.Get()
	req.False(rated)

	again, err := apexracing.NewRaceProfileResult(0, []apexracing.UserComment{}, "race-1", optional.None[float64](), nil, "SCHEDULED", day, "Monza")
	req.NoError(err)
	req.True(record.Equal(unrated, again))

	h1, err := record.Hash(unrated)
	req.NoError(err)
	h2, err := record.Hash(again)
	req.NoError(err)
	req.Equal(h1, h2)
}
