package model

// RegistrationCSV is one row of the admin registration export.
type RegistrationCSV struct {
	ID               int64  `csv:"id"`
	ParticipantName  string `csv:"participant_name"`
	ParticipantPhone string `csv:"participant_phone"`
	ParticipantEmail string `csv:"participant_email"`
	ParticipantAge   string `csv:"participant_age"`
	Experience       string `csv:"volunteer_experience"`
	Motivation       string `csv:"motivation"`
	AllowContact     bool   `csv:"allow_contact"`
	RegistrationDate string `csv:"registration_date"`
}

// ExportRow flattens a stored registration for CSV output.
func ExportRow(reg Registration) RegistrationCSV {
	return RegistrationCSV{
		ID:               reg.ID,
		ParticipantName:  reg.ParticipantName,
		ParticipantPhone: reg.ParticipantPhone,
		ParticipantEmail: reg.ParticipantEmail,
		ParticipantAge:   reg.ParticipantAge,
		Experience:       reg.VolunteerExperience,
		Motivation:       reg.Motivation,
		AllowContact:     reg.AllowContact,
		RegistrationDate: reg.RegistrationDate.Format("2006-01-02 15:04:05"),
	}
}
