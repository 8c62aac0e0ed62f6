package failure

import (
	"slices"

	"github.com/samber/lo"
)

// Kinds raised by the sample applications.
const (
	KindEmailAlreadyRegistered                    Kind = "EmailAlreadyRegistered"
	KindBikeAlreadyReserved                       Kind = "BikeAlreadyReserved"
	KindCannotRateCancelledRace                   Kind = "CannotRateCancelledRace"
	KindGuestAlreadyCheckedOut                    Kind = "GuestAlreadyCheckedOut"
	KindContainerAlreadyOccupied                  Kind = "ContainerAlreadyOccupied"
	KindCannotDeleteStudentWithOutstandingBalance Kind = "CannotDeleteStudentWithOutstandingBalance"
	KindCannotDeleteActiveLessonPackage           Kind = "CannotDeleteActiveLessonPackage"
	KindInvalidIssueData                          Kind = "InvalidIssueData"
	KindVerificationTokenExpired                  Kind = "VerificationTokenExpired"
	KindSessionExpired                            Kind = "SessionExpired"
	KindInvalidCredentials                        Kind = "InvalidCredentials"
	KindCreditLimitExceeded                       Kind = "CreditLimitExceeded"
	KindChallengeAlreadyCompleted                 Kind = "ChallengeAlreadyCompleted"
)

var kindCategories = map[Kind]Category{
	KindEmailAlreadyRegistered:                    AlreadyExists,
	KindBikeAlreadyReserved:                       Unavailable,
	KindCannotRateCancelledRace:                   ForbiddenByState,
	KindGuestAlreadyCheckedOut:                    ForbiddenByState,
	KindContainerAlreadyOccupied:                  Unavailable,
	KindCannotDeleteStudentWithOutstandingBalance: ForbiddenByState,
	KindCannotDeleteActiveLessonPackage:           ForbiddenByState,
	KindInvalidIssueData:                          InvalidInput,
	KindVerificationTokenExpired:                  Expired,
	KindSessionExpired:                            Expired,
	KindInvalidCredentials:                        InvalidInput,
	KindCreditLimitExceeded:                       ForbiddenByState,
	KindChallengeAlreadyCompleted:                 AlreadyExists,
}

// CategoryOf returns the category a declared kind belongs to.
func CategoryOf(k Kind) (Category, bool) {
	c, ok := kindCategories[k]
	return c, ok
}

// Kinds returns every declared kind, sorted by name.
func Kinds() []Kind {
	out := lo.Keys(kindCategories)
	slices.Sort(out)

	return out
}

func newOf(k Kind, message string) *Signal { return New(k, kindCategories[k], message) }

// EmailAlreadyRegistered reports that an account already uses the email address.
func EmailAlreadyRegistered(message string) *Signal {
	return newOf(KindEmailAlreadyRegistered, message)
}

// BikeAlreadyReserved reports that the bike is reserved by another rental.
func BikeAlreadyReserved(message string) *Signal { return newOf(KindBikeAlreadyReserved, message) }

// CannotRateCancelledRace reports a rating sent for a cancelled race.
func CannotRateCancelledRace(message string) *Signal {
	return newOf(KindCannotRateCancelledRace, message)
}

// GuestAlreadyCheckedOut reports a check-out for a stay that has already ended.
func GuestAlreadyCheckedOut(message string) *Signal {
	return newOf(KindGuestAlreadyCheckedOut, message)
}

// ContainerAlreadyOccupied reports that another guest holds the container.
func ContainerAlreadyOccupied(message string) *Signal {
	return newOf(KindContainerAlreadyOccupied, message)
}

// CannotDeleteStudentWithOutstandingBalance reports a deletion blocked by unpaid lessons.
func CannotDeleteStudentWithOutstandingBalance(message string) *Signal {
	return newOf(KindCannotDeleteStudentWithOutstandingBalance, message)
}

// CannotDeleteActiveLessonPackage reports a deletion of a package that still has lessons booked.
func CannotDeleteActiveLessonPackage(message string) *Signal {
	return newOf(KindCannotDeleteActiveLessonPackage, message)
}

// InvalidIssueData reports a container issue report that cannot be accepted.
func InvalidIssueData(message string) *Signal { return newOf(KindInvalidIssueData, message) }

// VerificationTokenExpired reports an account verification attempted after the token lapsed.
func VerificationTokenExpired(message string) *Signal {
	return newOf(KindVerificationTokenExpired, message)
}

// SessionExpired reports a request made on a session that is no longer valid.
func SessionExpired(message string) *Signal { return newOf(KindSessionExpired, message) }

// InvalidCredentials reports a failed sign-in.
func InvalidCredentials(message string) *Signal { return newOf(KindInvalidCredentials, message) }

// CreditLimitExceeded reports a charge above the account's credit limit.
func CreditLimitExceeded(message string) *Signal { return newOf(KindCreditLimitExceeded, message) }

// ChallengeAlreadyCompleted reports a second completion of the same challenge.
func ChallengeAlreadyCompleted(message string) *Signal {
	return newOf(KindChallengeAlreadyCompleted, message)
}
