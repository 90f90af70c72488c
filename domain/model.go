package domain

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
}

type Home struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"userId"`
	Location     string   `json:"location"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Rent         int      `json:"rent"`
	Images       []string `json:"images"`
	Contact      string   `json:"contact"`
	PropertyType string   `json:"propertyType"`
	Requirements []string `json:"requirements"`
}

// AvailableDate is one advertised window for a home. A home may carry any
// number of windows and they are allowed to overlap each other.
type AvailableDate struct {
	ID        int64     `json:"id"`
	HomeID    int64     `json:"homeId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

type Booking struct {
	ID         uuid.UUID `json:"id"`
	HomeID     int64     `json:"homeId"`
	UserID     int64     `json:"userId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	TotalPrice int       `json:"totalPrice"`
}

// Claims is the identity snapshot embedded in a session token. Tokens are
// stateless; a claim set stays valid until ExpiresAt regardless of later
// changes to the user row.
type Claims struct {
	UserID    int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Homes []*Home
type Bookings []*Booking

func (u *User) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(u)
}

func (u *User) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(u)
}

func (o *Home) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o Homes) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Booking) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o Bookings) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}
