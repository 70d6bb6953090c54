package models

// ResumeData is the best-effort structured extraction of an uploaded resume.
// Missing information is represented with empty strings and empty slices;
// extraction never partially fails a session start.
type ResumeData struct {
	RawText    string            `json:"resume_text"`
	Contact    ContactInfo       `json:"contact_info"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
}

type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type ExperienceEntry struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}
