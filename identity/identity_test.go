package identity_test

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cerr "github.com/next-trace/scg-message-catalog/contract/errors"
	"github.com/next-trace/scg-message-catalog/identity"
	"github.com/next-trace/scg-message-catalog/optional"
)

type initiateCheckOut struct {
	BookingID   string `json:"bookingId"`
	GuestID     string `json:"guestId"`
	ContainerID string `json:"containerId"`
}

type createSessionBooking struct {
	InstructorID string    `json:"instructorId"`
	Duration     int       `json:"duration"`
	SessionDate  time.Time `json:"sessionDate"`
	SessionID    string    `json:"sessionId"`
}

type assignDrivers struct {
	RaceID  string   `json:"raceId"`
	Drivers []string `json:"drivers"`
}

type rateRace struct {
	RaceID  string                 `json:"raceId"`
	Comment optional.Value[string] `json:"comment"`
}

type rescheduleSession struct {
	SessionID string     `json:"sessionId"`
	MovedAt   *time.Time `json:"movedAt"`
}

func TestResolve_CompositeIdentity(t *testing.T) {
	req := require.New(t)

	r, err := identity.NewResolver[initiateCheckOut]("bookingId", "guestId", "containerId")
	req.NoError(err)

	// Given two check-outs with the same booking, guest and container
	a := r.Resolve(initiateCheckOut{BookingID: "B1", GuestID: "G1", ContainerID: "C1"})
	b := r.Resolve(initiateCheckOut{BookingID: "B1", GuestID: "G1", ContainerID: "C1"})

	// Then they resolve to the same identity
	req.Equal(a, b)
	req.True(a == b)
	req.Equal("(B1,G1,C1)", a.String())
	req.Equal([]string{"B1", "G1", "C1"}, a.Parts())
	req.True(a.Matches("B1", "G1", "C1"))

	// When the container differs
	c := r.Resolve(initiateCheckOut{BookingID: "B1", GuestID: "G1", ContainerID: "C2"})

	// Then the identity differs
	req.NotEqual(a, c)
}

func TestResolve_AnySingleFieldChangeYieldsDistinctIdentity(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[initiateCheckOut]("bookingId", "guestId", "containerId")

	base := initiateCheckOut{BookingID: "B1", GuestID: "G1", ContainerID: "C1"}
	variants := []initiateCheckOut{
		{BookingID: "B2", GuestID: "G1", ContainerID: "C1"},
		{BookingID: "B1", GuestID: "G2", ContainerID: "C1"},
		{BookingID: "B1", GuestID: "G1", ContainerID: "C2"},
	}

	for _, v := range variants {
		req.NotEqual(r.Resolve(base), r.Resolve(v), "variant %+v", v)
	}
}

func TestResolve_SingleFieldDegeneratesToScalar(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[createSessionBooking]("sessionId")

	id := r.Resolve(createSessionBooking{InstructorID: "i-1", Duration: 60, SessionID: "s-42"})

	req.Equal(identity.Of("s-42"), id)
	req.Equal("s-42", id.String())
	req.Equal(1, id.Arity())
}

func TestResolve_GoFieldNamesAreAccepted(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[initiateCheckOut]("BookingID", "guestId")

	id := r.Resolve(initiateCheckOut{BookingID: "B1", GuestID: "G1"})

	req.Equal([]string{"bookingId", "guestId"}, r.Fields())
	req.Equal(identity.Of("B1", "G1"), id)
}

func TestResolve_NonStringPartsAreCanonical(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[createSessionBooking]("instructorId", "duration", "sessionDate")
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	id := r.Resolve(createSessionBooking{InstructorID: "i-1", Duration: 60, SessionDate: at})

	req.Equal(identity.Of("i-1", 60, at), id)
	req.Equal("(i-1,60,2024-01-15T14:30:00Z)", id.String())
}

func TestResolve_PartsAreNotAmbiguous(t *testing.T) {
	req := require.New(t)

	req.NotEqual(identity.Of("a,b", "c"), identity.Of("a", "b,c"))
	req.NotEqual(identity.Of("ab"), identity.Of("a", "b"))
	req.True(identity.Of().IsZero())
}

func TestResolve_SequenceFieldIsEncodedPerElement(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[assignDrivers]("drivers")

	split := r.Resolve(assignDrivers{Drivers: []string{"a", "b"}})
	joined := r.Resolve(assignDrivers{Drivers: []string{"a b"}})

	req.NotEqual(split, joined)
	req.False(split == joined)
	req.Equal(split, r.Resolve(assignDrivers{RaceID: "other", Drivers: []string{"a", "b"}}))
	req.NotEqual(split, r.Resolve(assignDrivers{Drivers: []string{"a", "b", ""}}))
	req.NotEqual(r.Resolve(assignDrivers{}), r.Resolve(assignDrivers{Drivers: []string{""}}))
	req.Equal(-1, split.Blank())
}

func TestResolve_OptionalField(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[rateRace]("raceId", "comment")

	absent := r.Resolve(rateRace{RaceID: "r-1"})
	literal := r.Resolve(rateRace{RaceID: "r-1", Comment: optional.Some("<absent>")})
	empty := r.Resolve(rateRace{RaceID: "r-1", Comment: optional.Some("")})
	present := r.Resolve(rateRace{RaceID: "r-1", Comment: optional.Some("wet")})

	req.NotEqual(absent, literal)
	req.NotEqual(absent, empty)
	req.Equal(identity.Of("r-1", "wet"), present)

	req.Equal(1, absent.Blank())
	req.Equal(1, empty.Blank())
	req.Equal(-1, literal.Blank())
	req.Equal(-1, present.Blank())
}

func TestResolve_NilPointerField(t *testing.T) {
	req := require.New(t)
	r := identity.MustResolver[rescheduleSession]("sessionId", "movedAt")
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	var id identity.Identity
	req.NotPanics(func() { id = r.Resolve(rescheduleSession{SessionID: "s-1"}) })
	req.Equal(1, id.Blank())

	moved := r.Resolve(rescheduleSession{SessionID: "s-1", MovedAt: &at})
	req.Equal(identity.Of("s-1", at), moved)
	req.Equal(-1, moved.Blank())
}

func TestOf_PartsAreTyped(t *testing.T) {
	req := require.New(t)

	req.NotEqual(identity.Of(1), identity.Of("1"))
	req.NotEqual(identity.Of(nil), identity.Of(""))
	req.NotEqual(identity.Of(true), identity.Of("true"))
	req.Equal(identity.Of(1), identity.Of(int64(1)))
	req.Equal(identity.Of(0.0), identity.Of(math.Copysign(0, -1)))
	req.Equal("1", identity.Of(1).String())

	req.Equal(0, identity.Of(nil).Blank())
	req.Equal(1, identity.Of("B1", "").Blank())
}

func TestResolve_WrongTypeYieldsZero(t *testing.T) {
	r, err := identity.ResolverFor(identity.MustResolver[initiateCheckOut]("bookingId").Untyped().Type(), "bookingId")
	require.NoError(t, err)

	require.True(t, r.Resolve(createSessionBooking{SessionID: "x"}).IsZero())
	require.True(t, r.Resolve((*initiateCheckOut)(nil)).IsZero())
	require.Equal(t, identity.Of("B1"), r.Resolve(&initiateCheckOut{BookingID: "B1"}))
}

func TestNewResolver_MalformedFieldList(t *testing.T) {
	cases := map[string][]string{
		"empty":     nil,
		"unknown":   {"bookingId", "roomId"},
		"duplicate": {"bookingId", "BookingID"},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := identity.NewResolver[initiateCheckOut](fields...)
			require.Error(t, err)
			require.True(t, errors.Is(err, cerr.ErrMalformedIdentity))
		})
	}

	_, err := identity.NewResolver[string]("x")
	require.ErrorIs(t, err, cerr.ErrMalformedIdentity)
}

func TestResolve_ConcurrentUse(t *testing.T) {
	r := identity.MustResolver[initiateCheckOut]("bookingId", "guestId", "containerId")
	want := identity.Of("B1", "G1", "C1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if got := r.Resolve(initiateCheckOut{BookingID: "B1", GuestID: "G1", ContainerID: "C1"}); got != want {
				t.Errorf("got %s, want %s", got, want)
			}
		}()
	}

	wg.Wait()
}
