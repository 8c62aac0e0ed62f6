package record_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/optional"
	"github.com/next-trace/scg-message-catalog/record"
)

type CreateNewBike struct {
	Location  string `json:"location" validate:"required"`
	BikeType  string `json:"bikeType" validate:"required"`
	Condition string `json:"condition"`
}

type ReportContainerIssue struct {
	BookingID   string `json:"bookingId" validate:"required"`
	ContainerID string `json:"containerId" validate:"required"`
	Description string `json:"description" validate:"required"`
	Severity    int    `json:"severity" validate:"min=0,max=5"`
}

type RaceProfileResult struct {
	RaceID        string                  `json:"raceId"`
	AverageRating optional.Value[float64] `json:"averageRating"`
	UserComments  []string                `json:"userComments"`
	RaceDate      time.Time               `json:"raceDate"`
}

type LapRecorded struct {
	RaceID     string                    `json:"raceId"`
	LapTime    float64                   `json:"lapTime"`
	Sectors    map[string]float64        `json:"sectors"`
	RecordedAt *time.Time                `json:"recordedAt"`
	ReviewedAt optional.Value[time.Time] `json:"reviewedAt"`
	Marshals   [2]time.Time              `json:"marshals"`
}

func TestEqual_IsStructural(t *testing.T) {
	req := require.New(t)

	a := CreateNewBike{Location: "Depot-1", BikeType: "ebike", Condition: "new"}
	b := CreateNewBike{Location: "Depot-1", BikeType: "ebike", Condition: "new"}
	c := CreateNewBike{Location: "Depot-1", BikeType: "ebike", Condition: "new"}

	// reflexive, symmetric, transitive
	req.True(record.Equal(a, a))
	req.True(record.Equal(a, b))
	req.True(record.Equal(b, a))
	req.True(record.Equal(b, c))
	req.True(record.Equal(a, c))

	req.False(record.Equal(a, CreateNewBike{Location: "Depot-2", BikeType: "ebike", Condition: "new"}))
	req.False(record.Equal(a, struct{ Location string }{"Depot-1"}))
	req.True(record.Equal(&a, &b))
	req.True(record.Equal(nil, nil))
	req.False(record.Equal(a, nil))
}

func TestEqual_TimestampsAndOptionals(t *testing.T) {
	req := require.New(t)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	paris := at.In(time.FixedZone("CEST", 2*60*60))

	a := RaceProfileResult{RaceID: "r-1", RaceDate: at, AverageRating: optional.Some(4.0)}
	b := RaceProfileResult{RaceID: "r-1", RaceDate: paris, AverageRating: optional.Some(4.0), UserComments: []string{}}

	req.True(record.Equal(a, b))

	b.AverageRating = optional.None[float64]()
	req.False(record.Equal(a, b))
}

func TestHash_ConsistentWithEqual(t *testing.T) {
	req := require.New(t)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a := RaceProfileResult{RaceID: "r-1", RaceDate: at}
	b := RaceProfileResult{RaceID: "r-1", RaceDate: at.In(time.FixedZone("X", 3600)), UserComments: []string{}}

	ha, err := record.Hash(a)
	req.NoError(err)
	hb, err := record.Hash(b)
	req.NoError(err)
	req.Equal(ha, hb)

	// stable across calls
	again, err := record.Hash(a)
	req.NoError(err)
	req.Equal(ha, again)

	hc, err := record.Hash(RaceProfileResult{RaceID: "r-2", RaceDate: at})
	req.NoError(err)
	req.NotEqual(ha, hc)

	zone := time.FixedZone("X", 3600)
	now := time.Now()
	local := at.In(zone)

	pairs := map[string][2]LapRecorded{
		"negative zero": {
			{RaceID: "r-1", LapTime: 0},
			{RaceID: "r-1", LapTime: math.Copysign(0, -1)},
		},
		"nil and empty map": {
			{RaceID: "r-1"},
			{RaceID: "r-1", Sectors: map[string]float64{}},
		},
		"negative zero in map": {
			{RaceID: "r-1", Sectors: map[string]float64{"s1": 0}},
			{RaceID: "r-1", Sectors: map[string]float64{"s1": math.Copysign(0, -1)}},
		},
		"pointer to time in another zone": {
			{RaceID: "r-1", RecordedAt: &at},
			{RaceID: "r-1", RecordedAt: &local},
		},
		"optional time in another zone": {
			{RaceID: "r-1", ReviewedAt: optional.Some(at)},
			{RaceID: "r-1", ReviewedAt: optional.Some(local)},
		},
		"optional time with and without monotonic reading": {
			{RaceID: "r-1", ReviewedAt: optional.Some(now)},
			{RaceID: "r-1", ReviewedAt: optional.Some(now.Round(0))},
		},
		"array of times in another zone": {
			{RaceID: "r-1", Marshals: [2]time.Time{at, at}},
			{RaceID: "r-1", Marshals: [2]time.Time{local, at}},
		},
	}

	for name, p := range pairs {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			req.True(record.Equal(p[0], p[1]))

			h0, err := record.Hash(p[0])
			req.NoError(err)
			h1, err := record.Hash(p[1])
			req.NoError(err)
			req.Equal(h0, h1)
		})
	}

	// hashing normalises a copy and leaves the caller's record untouched
	in := LapRecorded{RaceID: "r-1", RecordedAt: &local, Sectors: map[string]float64{"s1": 1}}
	_, err = record.Hash(in)
	req.NoError(err)
	req.Equal(zone, in.RecordedAt.Location())

	_, err = record.Hash(struct{ C chan int }{make(chan int)})
	req.ErrorIs(err, cerr.ErrSerializationFailed)
}

func TestString_IsStable(t *testing.T) {
	req := require.New(t)

	req.Equal(
		"CreateNewBike{location=Depot-1, bikeType=ebike, condition=new}",
		record.String(CreateNewBike{Location: "Depot-1", BikeType: "ebike", Condition: "new"}),
	)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	req.Equal(
		"RaceProfileResult{raceId=r-1, averageRating=<absent>, userComments=[great, wet], raceDate=2024-05-01T10:00:00Z}",
		record.String(RaceProfileResult{RaceID: "r-1", UserComments: []string{"great", "wet"}, RaceDate: at}),
	)
	req.Equal(
		"RaceProfileResult{raceId=r-1, averageRating=4.5, userComments=[], raceDate=2024-05-01T10:00:00Z}",
		record.String(&RaceProfileResult{RaceID: "r-1", AverageRating: optional.Some(4.5), RaceDate: at}),
	)
	req.Equal("<nil>", record.String((*CreateNewBike)(nil)))

	var out string
	req.NotPanics(func() { out = record.String(LapRecorded{RaceID: "r-1"}) })
	req.Equal("LapRecorded{raceId=r-1, lapTime=0, sectors=map[], recordedAt=<nil>, reviewedAt=<absent>, "+
		"marshals=[0001-01-01T00:00:00Z, 0001-01-01T00:00:00Z]}", out)
}

func TestValidate(t *testing.T) {
	identity := []string{"bookingId", "containerId"}

	t.Run("valid", func(t *testing.T) {
		err := record.Validate(ReportContainerIssue{BookingID: "B1", ContainerID: "C1", Description: "leak", Severity: 2}, identity...)
		require.NoError(t, err)
	})

	t.Run("missing identity field", func(t *testing.T) {
		err := record.Validate(ReportContainerIssue{BookingID: "B1", Description: "leak"}, identity...)
		require.ErrorIs(t, err, cerr.ErrMalformedIdentity)
		require.Contains(t, err.Error(), "containerId")
	})

	t.Run("missing plain field", func(t *testing.T) {
		err := record.Validate(&ReportContainerIssue{BookingID: "B1", ContainerID: "C1", Severity: 9}, identity...)
		require.ErrorIs(t, err, cerr.ErrInvalidRecord)
		require.NotErrorIs(t, err, cerr.ErrMalformedIdentity)
		require.Contains(t, err.Error(), "description:required")
		require.Contains(t, err.Error(), "severity:max")
	})

	t.Run("not a record", func(t *testing.T) {
		require.ErrorIs(t, record.Validate("B1"), cerr.ErrInvalidRecord)
	})
}
