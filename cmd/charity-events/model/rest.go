package model

// ErrorResponse carries only the generic category message; store
// detail never crosses the API boundary.
type ErrorResponse struct {
	Error string `json:"error"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email"`
	Age          string `json:"age"`
	Experience   string `json:"experience"`
	Motivation   string `json:"motivation"`
	AllowContact bool   `json:"allowContact"`
}

type RegisterResponse struct {
	Message        string `json:"message"`
	RegistrationID int64  `json:"registrationId"`
}

// EventUpsertRequest is shared by create and update; both require the
// same four fields and replace all mutable event fields.
type EventUpsertRequest struct {
	Name            string      `json:"name" validate:"required"`
	Category        string      `json:"category" validate:"required"`
	Date            string      `json:"date" validate:"required"`
	Time            *string     `json:"time"`
	Location        string      `json:"location" validate:"required"`
	Organizer       *string     `json:"organizer"`
	MaxParticipants *int        `json:"max_participants"`
	RegistrationFee float64     `json:"registration_fee"`
	ContactInfo     *string     `json:"contact_info"`
	Status          EventStatus `json:"status"`
	Description     *string     `json:"description"`
	ImageURL        *string     `json:"image_url"`
}

// Event builds the storage model; current_participants is forced to 0
// and a missing status defaults to upcoming, regardless of input.
func (r *EventUpsertRequest) Event() Event {
	status := r.Status
	if status == "" {
		status = StatusUpcoming
	}
	return Event{
		Name:                r.Name,
		Category:            r.Category,
		Date:                r.Date,
		Time:                r.Time,
		Location:            r.Location,
		Organizer:           r.Organizer,
		MaxParticipants:     r.MaxParticipants,
		CurrentParticipants: 0,
		RegistrationFee:     r.RegistrationFee,
		ContactInfo:         r.ContactInfo,
		Status:              status,
		Description:         r.Description,
		ImageURL:            r.ImageURL,
	}
}

type CreateEventResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UploadResponse struct {
	Message   string `json:"message"`
	ImagePath string `json:"imagePath"`
}
