package domain

// DoctorRecord is one entry of the static directory.
type DoctorRecord struct {
	ID        int64    `json:"id" toml:"id" validate:"required,gt=0"`
	Name      string   `json:"name" toml:"name" validate:"required"`
	Specialty string   `json:"specialty" toml:"specialty" validate:"required"`
	Phone     string   `json:"phone" toml:"phone" validate:"required,number,min=6,max=15"` // digits only, no '+'
	ImageURL  string   `json:"imageUrl" toml:"image_url" validate:"omitempty,url"`
	City      string   `json:"city" toml:"city" validate:"required"`
	Keywords  []string `json:"keywords" toml:"keywords" validate:"dive,required"`
}

// WhatsAppURL is the booking link for the doctor.
func (d DoctorRecord) WhatsAppURL() string {
	return "https://wa.me/" + d.Phone
}

// SpecialtyAll disables the quick specialty filter.
const SpecialtyAll = "all"

// FilterState is the per-request filter selection. SearchTerm is already
// sanitized and normalized.
type FilterState struct {
	SelectedCity    string
	SearchTerm      string
	SpecialtyFilter string
}

// FilterResult is what the filter engine hands to the renderer.
// ComingSoon means the city has no data yet; Doctors is nil in that case.
type FilterResult struct {
	City       string
	ComingSoon bool
	Doctors    []DoctorRecord
}
