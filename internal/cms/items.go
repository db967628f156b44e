package cms

// BlogPost is an article of the marketing blog.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200"`
	Excerpt     string   `json:"excerpt" validate:"max=500"`
	Content     string   `json:"content"`
	CoverImage  string   `json:"coverImage" validate:"omitempty,url"`
	Author      string   `json:"author" validate:"max=200"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
	PublishedAt string   `json:"publishedAt,omitempty"`
}

func (p BlogPost) Key() string {
	return p.ID
}

func (p BlogPost) WithKey(id string) BlogPost {
	p.ID = id

	return p
}

// FAQ is a question and answer pair.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category" validate:"max=100"`
}

func (f FAQ) Key() string {
	return f.ID
}

func (f FAQ) WithKey(id string) FAQ {
	f.ID = id

	return f
}

// Testimonial is a client quote.
type Testimonial struct {
	ID      string `json:"id"`
	Author  string `json:"author" validate:"required,max=200"`
	Role    string `json:"role" validate:"max=200"`
	Company string `json:"company" validate:"max=200"`
	Quote   string `json:"quote" validate:"required"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Avatar  string `json:"avatar" validate:"omitempty,url"`
}

func (t Testimonial) Key() string {
	return t.ID
}

func (t Testimonial) WithKey(id string) Testimonial {
	t.ID = id

	return t
}

// NavItem is an entry of the site navigation.
type NavItem struct {
	ID       string `json:"id"`
	Label    string `json:"label" validate:"required,max=100"`
	Href     string `json:"href" validate:"required,max=500"`
	External bool   `json:"external"`
}

func (n NavItem) Key() string {
	return n.ID
}

func (n NavItem) WithKey(id string) NavItem {
	n.ID = id

	return n
}

// PricingPackage is a row of the pricing table.
type PricingPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required,max=100"`
	Price       float64  `json:"price" validate:"gte=0"`
	Currency    string   `json:"currency" validate:"omitempty,len=3"`
	Period      string   `json:"period" validate:"omitempty,oneof=once month year"`
	Features    []string `json:"features" validate:"required,min=1,dive,required"`
	Highlighted bool     `json:"highlighted"`
}

func (p PricingPackage) Key() string {
	return p.ID
}

func (p PricingPackage) WithKey(id string) PricingPackage {
	p.ID = id

	return p
}

// MediaAsset is an uploaded file referenced by the site.
type MediaAsset struct {
	ID   string `json:"id"`
	URL  string `json:"url" validate:"required,url"`
	Kind string `json:"kind" validate:"required,oneof=image video file"`
	Name string `json:"name" validate:"max=200"`
	Alt  string `json:"alt" validate:"max=300"`
}

func (m MediaAsset) Key() string {
	return m.ID
}

func (m MediaAsset) WithKey(id string) MediaAsset {
	m.ID = id

	return m
}
