package user

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownRole       = errors.New("unknown user type, expected 'interviewer' or 'candidate'")
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{1,150}$`)

type Role string

const (
	Interviewer Role = "interviewer"
	Candidate   Role = "candidate"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Interviewer, Candidate:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	IsInterviewer bool      `json:"is_interviewer"`
}

func (u User) Role() Role {
	if u.IsInterviewer {
		return Interviewer
	}
	return Candidate
}

func (u User) String() string {
	return fmt.Sprintf("Username: %s, Type: %s", u.Username, u.Role())
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if !usernamePattern.MatchString(u.Username) {
		return errors.New("username may contain at most 150 letters, digits and @/./+/-/_ characters")
	}
	return nil
}

type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterByRole
	FilterByCreator
)

// Filter selects a subset of users or time slots. Only the field matching
// Kind is meaningful.
type Filter struct {
	Kind    FilterKind
	Role    Role
	Creator string
}

func NoFilter() Filter {
	return Filter{Kind: FilterNone}
}

func ByRole(role Role) Filter {
	return Filter{Kind: FilterByRole, Role: role}
}

// ByCreator selects time slots owned by the given username.
func ByCreator(username string) Filter {
	return Filter{Kind: FilterByCreator, Creator: username}
}
