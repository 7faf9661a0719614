package apollo

type searchRequest struct {
	APIKey                   string   `json:"api_key"`
	Page                     int      `json:"page"`
	PerPage                  int      `json:"per_page"`
	PersonTitles             []string `json:"person_titles,omitempty"`
	PersonLocations          []string `json:"person_locations,omitempty"`
	OrganizationNumEmployees []string `json:"organization_num_employees_ranges,omitempty"`
	QKeywords                string   `json:"q_keywords,omitempty"`
}

type searchResponse struct {
	People []person `json:"people"`
}

type person struct {
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	Title        string       `json:"title"`
	LinkedinURL  string       `json:"linkedin_url"`
	PhoneNumbers []phone      `json:"phone_numbers"`
	Country      string       `json:"country"`
	Organization organization `json:"organization"`
}

type phone struct {
	SanitizedNumber string `json:"sanitized_number"`
}

type organization struct {
	Name                 string `json:"name"`
	WebsiteURL           string `json:"website_url"`
	Industry             string `json:"industry"`
	EstimatedNumEmployee int    `json:"estimated_num_employees"`
}
