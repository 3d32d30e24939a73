package models

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusCompleted},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusCancelled, ReservationStatusCompleted:
		return true
	}
	return false
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCompleted
}

type Reservation struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Date      string            `json:"date"`
	Time      string            `json:"time,omitempty"`
	Guests    int               `json:"guests"`
	Menu      string            `json:"menu,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// MenuLabel is the human readable name of the menu the guest pre-selected.
func (r Reservation) MenuLabel() string {
	switch r.Menu {
	case "":
		return "Not specified"
	case "regular":
		return "Regular Menu"
	case "full-course":
		return "Full Course Menu (€21)"
	case "kids":
		return "Kids Menu"
	}
	return r.Menu
}

type CreateReservationRequest struct {
	Name   string   `json:"name" binding:"required"`
	Email  string   `json:"email" binding:"required,email"`
	Phone  string   `json:"phone"`
	Date   string   `json:"date" binding:"required"`
	Time   string   `json:"time"`
	Guests LooseInt `json:"guests"`
	Menu   string   `json:"menu"`
	Notes  string   `json:"notes"`
}
