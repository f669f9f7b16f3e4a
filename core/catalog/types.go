package catalog

import "time"

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ProjectURL   string    `json:"project_url,omitempty"`
	Category     string    `json:"category,omitempty"`
	Technologies []string  `json:"technologies,omitempty"`
	Featured     bool      `json:"featured,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// User is an administrator account. The password column never crosses this
// boundary; the users config narrows its select list.
type User struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email,omitempty"`
	Handle      string    `json:"handle,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type Category struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Setting is a single key/value configuration entry grouped by section.
type Setting struct {
	ID        string    `json:"id,omitempty"`
	Key       string    `json:"key,omitempty"`
	Value     string    `json:"value,omitempty"`
	Section   string    `json:"section,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type TeamMember struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	SortOrder int       `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type Testimonial struct {
	ID        string    `json:"id,omitempty"`
	Author    string    `json:"author,omitempty"`
	Company   string    `json:"company,omitempty"`
	Quote     string    `json:"quote,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type Partner struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name,omitempty"`
	LogoURL    string    `json:"logo_url,omitempty"`
	WebsiteURL string    `json:"website_url,omitempty"`
	SortOrder  int       `json:"sort_order,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

type NewsItem struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// APIKey is an outbound integration credential managed from the back office.
type APIKey struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Key        string    `json:"key,omitempty"`
	Active     bool      `json:"active,omitempty"`
	LastUsedAt time.Time `json:"last_used_at,omitzero"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

// Statistic is a headline number shown on the landing page.
type Statistic struct {
	ID        string    `json:"id,omitempty"`
	Label     string    `json:"label,omitempty"`
	Value     int       `json:"value,omitempty"`
	Suffix    string    `json:"suffix,omitempty"`
	SortOrder int       `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type Feature struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int       `json:"sort_order,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type FAQ struct {
	ID        string    `json:"id,omitempty"`
	Question  string    `json:"question,omitempty"`
	Answer    string    `json:"answer,omitempty"`
	Category  string    `json:"category,omitempty"`
	SortOrder int       `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Technology is a stack entry; Tools is stored as one comma-joined column.
type Technology struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name,omitempty"`
	CategoryID string    `json:"category_id,omitempty"`
	IconURL    string    `json:"icon_url,omitempty"`
	Tools      []string  `json:"tools,omitempty"`
	SortOrder  int       `json:"sort_order,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

type TechnologyCategory struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	SortOrder int       `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type ProcessStep struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	StepNumber  int       `json:"step_number,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type BlogCategory struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type BlogPost struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Slug        string    `json:"slug,omitempty"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Published   bool      `json:"published,omitempty"`
	PublishedAt time.Time `json:"published_at,omitzero"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// PricingPlan models a tier; Features is stored as one newline-joined column.
type PricingPlan struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Price       int       `json:"price,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Interval    string    `json:"interval,omitempty"`
	Features    []string  `json:"features,omitempty"`
	Highlighted bool      `json:"highlighted,omitempty"`
	SortOrder   int       `json:"sort_order,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type Notification struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"read,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type ContactMessage struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message,omitempty"`
	Read      bool      `json:"read,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

type Service struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int       `json:"sort_order,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

type HeroSlide struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CTALabel  string    `json:"cta_label,omitempty"`
	CTAURL    string    `json:"cta_url,omitempty"`
	SortOrder int       `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
