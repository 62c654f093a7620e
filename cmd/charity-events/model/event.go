package model

import "time"

type EventStatus string

var (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Event is a charity activity. Status is set by an administrator and is
// never derived from the date.
type Event struct {
	ID                  int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                string      `gorm:"column:name;not null" json:"name"`
	Category            string      `gorm:"column:category;not null" json:"category"`
	Date                string      `gorm:"column:date;type:date;not null" json:"date"`
	Time                *string     `gorm:"column:time" json:"time"`
	Location            string      `gorm:"column:location;not null" json:"location"`
	Organizer           *string     `gorm:"column:organizer" json:"organizer"`
	MaxParticipants     *int        `gorm:"column:max_participants" json:"max_participants"`
	CurrentParticipants int         `gorm:"column:current_participants;not null;default:0" json:"current_participants"`
	RegistrationFee     float64     `gorm:"column:registration_fee;not null;default:0" json:"registration_fee"`
	ContactInfo         *string     `gorm:"column:contact_info" json:"contact_info"`
	Status              EventStatus `gorm:"column:status;not null;default:upcoming" json:"status"`
	Description         *string     `gorm:"column:description" json:"description"`
	ImageURL            *string     `gorm:"column:image_url" json:"image_url"`
}

func (m *Event) TableName() string {
	return "events"
}

// Registration is a participant's commitment to attend one Event.
// Rows are created by the registration workflow, never updated, and
// deleted only when their event is deleted.
type Registration struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EventID             int64     `gorm:"column:event_id;not null;uniqueIndex:idx_event_phone" json:"event_id"`
	ParticipantName     string    `gorm:"column:participant_name;not null" json:"participant_name"`
	ParticipantPhone    string    `gorm:"column:participant_phone;not null;uniqueIndex:idx_event_phone" json:"participant_phone"`
	ParticipantEmail    string    `gorm:"column:participant_email" json:"participant_email"`
	ParticipantAge      string    `gorm:"column:participant_age" json:"participant_age"`
	VolunteerExperience string    `gorm:"column:volunteer_experience" json:"volunteer_experience"`
	Motivation          string    `gorm:"column:motivation" json:"motivation"`
	AllowContact        bool      `gorm:"column:allow_contact;not null;default:false" json:"allow_contact"`
	RegistrationDate    time.Time `gorm:"column:registration_date;autoCreateTime" json:"registration_date"`
}

func (m *Registration) TableName() string {
	return "event_registrations"
}

// Statistics are the admin dashboard aggregates over the event store.
type Statistics struct {
	TotalEvents       int64 `json:"totalEvents"`
	UpcomingEvents    int64 `json:"upcomingEvents"`
	TotalParticipants int64 `json:"totalParticipants"`
	CompletedEvents   int64 `json:"completedEvents"`
}
