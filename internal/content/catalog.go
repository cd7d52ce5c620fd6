package content

import (
	"context"
	"sort"
)

// Content type slugs.
const (
	FAQ       = "faq"
	Feedback  = "feedback"
	Projects  = "projects"
	Services  = "services"
	Team      = "team"
	Messages  = "messages"
	Inquiries = "inquiries"

	Home     = "home"
	Stats    = "stats"
	Settings = "settings"
	Terms    = "terms"
)

var (
	MessageStatuses = []string{"New", "Read", "Replied"}
	InquiryStatuses = []string{"New", "Pending", "Contacted", "Resolved", "Closed"}
	ProjectStatuses = []string{"Planning", "In Progress", "Completed", "On Hold"}
)

var byOrder = []SortKey{{Field: "order"}, {Field: fieldCreatedAt}}
var newestFirst = []SortKey{{Field: fieldCreatedAt, Desc: true}}

// Schemas lists every collection content type.
func Schemas() []*Schema {
	return []*Schema{
		{
			Type: FAQ, Collection: "faqs", Sort: byOrder,
			Fields: []Field{
				{Name: "question", Kind: String, Required: true, Rules: "max=500"},
				{Name: "answer", Kind: String, Required: true, Rules: "max=5000"},
				{Name: "category", Kind: String, Rules: "max=100"},
				{Name: "order", Kind: Int, Rules: "min=0"},
			},
		},
		{
			Type: Feedback, Collection: "feedbacks", Sort: newestFirst,
			Fields: []Field{
				{Name: "name", Kind: String, Required: true, Rules: "max=200"},
				{Name: "email", Kind: String, Required: true, Rules: "email"},
				{Name: "rating", Kind: Int, Required: true, Rules: "min=1,max=5"},
				{Name: "message", Kind: String, Required: true, Rules: "max=5000"},
				{Name: "company", Kind: String, Rules: "max=200"},
				{Name: "position", Kind: String, Rules: "max=200"},
			},
		},
		{
			Type: Projects, Collection: "projects", Sort: newestFirst,
			Fields: []Field{
				{Name: "title", Kind: String, Required: true, Rules: "max=200"},
				{Name: "description", Kind: String, Required: true, Rules: "max=10000"},
				{Name: "category", Kind: String, Rules: "max=100"},
				{Name: "client", Kind: String, Rules: "max=200"},
				{Name: "status", Kind: Enum, Required: true, Values: ProjectStatuses},
				{Name: "technologies", Kind: StringList},
				{Name: "imageUrl", Kind: String, Rules: "url"},
				{Name: "projectUrl", Kind: String, Rules: "url"},
			},
		},
		{
			Type: Services, Collection: "services", Sort: byOrder,
			Fields: []Field{
				{Name: "title", Kind: String, Required: true, Rules: "max=200"},
				{Name: "description", Kind: String, Required: true, Rules: "max=5000"},
				{Name: "icon", Kind: String, Required: true, Rules: "max=100"},
				{Name: "features", Kind: StringList},
				{Name: "order", Kind: Int, Rules: "min=0"},
			},
		},
		{
			Type: Team, Collection: "team_members", Sort: byOrder,
			Fields: []Field{
				{Name: "name", Kind: String, Required: true, Rules: "max=200"},
				{Name: "role", Kind: String, Required: true, Rules: "max=200"},
				{Name: "bio", Kind: String, Rules: "max=5000"},
				{Name: "imageUrl", Kind: String, Rules: "url"},
				{Name: "email", Kind: String, Rules: "email"},
				{Name: "linkedin", Kind: String, Rules: "url"},
				{Name: "order", Kind: Int, Rules: "min=0"},
			},
		},
		{
			Type: Messages, Collection: "messages", Sort: newestFirst,
			Fields: []Field{
				{Name: "name", Kind: String, Required: true, Rules: "max=200"},
				{Name: "email", Kind: String, Required: true, Rules: "email"},
				{Name: "subject", Kind: String, Rules: "max=300"},
				{Name: "message", Kind: String, Required: true, Rules: "max=10000"},
				{Name: "status", Kind: Enum, Values: MessageStatuses, Default: "New"},
			},
		},
		{
			Type: Inquiries, Collection: "inquiries", Sort: newestFirst,
			Fields: []Field{
				{Name: "name", Kind: String, Required: true, Rules: "max=200"},
				{Name: "email", Kind: String, Required: true, Rules: "email"},
				{Name: "phone", Kind: String, Rules: "max=50"},
				{Name: "company", Kind: String, Rules: "max=200"},
				{Name: "serviceId", Kind: String, Rules: "mongodb"},
				{Name: "serviceName", Kind: String, Rules: "max=200"},
				{Name: "message", Kind: String, Required: true, Rules: "max=10000"},
				{Name: "status", Kind: Enum, Values: InquiryStatuses, Default: "New"},
			},
		},
	}
}

// SingletonSchemas lists the four configuration documents and their defaults.
func SingletonSchemas() []*Schema {
	return []*Schema{
		{
			Type: Home, Collection: "home_content",
			Fields: []Field{
				{Name: "heroTitle", Kind: String, Rules: "max=200"},
				{Name: "heroSubtitle", Kind: String, Rules: "max=300"},
				{Name: "heroDescription", Kind: String, Rules: "max=2000"},
				{Name: "ctaText", Kind: String, Rules: "max=100"},
				{Name: "ctaLink", Kind: String, Rules: "max=500"},
				{Name: "aboutTitle", Kind: String, Rules: "max=200"},
				{Name: "aboutDescription", Kind: String, Rules: "max=5000"},
			},
			Defaults: Record{
				"heroTitle":        "Innovative IT Solutions for Your Business",
				"heroSubtitle":     "Software, cloud and support that grow with you",
				"heroDescription":  "We design, build and run the technology that keeps your business moving.",
				"ctaText":          "Get in Touch",
				"ctaLink":          "/contact",
				"aboutTitle":       "Who We Are",
				"aboutDescription": "A team of engineers and consultants delivering dependable IT services since 2014.",
			},
		},
		{
			Type: Stats, Collection: "stats",
			Fields: []Field{
				{Name: "projectsCompleted", Kind: Int, Rules: "min=0"},
				{Name: "happyClients", Kind: Int, Rules: "min=0"},
				{Name: "yearsExperience", Kind: Int, Rules: "min=0"},
				{Name: "teamMembers", Kind: Int, Rules: "min=0"},
			},
			Defaults: Record{
				"projectsCompleted": 150,
				"happyClients":      80,
				"yearsExperience":   10,
				"teamMembers":       25,
			},
		},
		{
			Type: Settings, Collection: "settings",
			Fields: []Field{
				{Name: "siteName", Kind: String, Rules: "max=100"},
				{Name: "tagline", Kind: String, Rules: "max=200"},
				{Name: "contactEmail", Kind: String, Rules: "email"},
				{Name: "contactPhone", Kind: String, Rules: "max=50"},
				{Name: "address", Kind: String, Rules: "max=500"},
				{Name: "facebook", Kind: String, Rules: "url"},
				{Name: "twitter", Kind: String, Rules: "url"},
				{Name: "linkedin", Kind: String, Rules: "url"},
				{Name: "instagram", Kind: String, Rules: "url"},
				{Name: "maintenanceMode", Kind: Bool},
			},
			Defaults: Record{
				"siteName":     "BrightPath IT",
				"tagline":      "Technology that works for you",
				"contactEmail": "info@brightpath.example.com",
				"contactPhone": "+1 (555) 010-2030",
				"address":      "100 Market Street, Suite 400, Springfield",
			},
		},
		{
			Type: Terms, Collection: "terms",
			Fields: []Field{
				{Name: "title", Kind: String, Rules: "max=200"},
				{Name: "content", Kind: String, Rules: "max=100000"},
				{Name: "effectiveDate", Kind: String, Rules: "max=50"},
			},
			Defaults: Record{
				"title":         "Terms and Conditions",
				"effectiveDate": "2024-01-01",
				"content": "## Use of this site\n\n" +
					"By using this website you agree to these terms.\n\n" +
					"## Services\n\n" +
					"Service descriptions are provided for information and do not form an offer.\n\n" +
					"## Contact\n\n" +
					"Questions about these terms can be sent through the contact form.\n",
			},
		},
	}
}

// Catalog holds one Collection or Singleton per content type, all sharing a backend.
type Catalog struct {
	backend     Backend
	collections map[string]*Collection
	singletons  map[string]*Singleton
}

// NewCatalog instantiates every content type on backend.
func NewCatalog(backend Backend, clock Clock) *Catalog {
	c := &Catalog{
		backend:     backend,
		collections: map[string]*Collection{},
		singletons:  map[string]*Singleton{},
	}
	for _, s := range Schemas() {
		c.collections[s.Type] = NewCollection(s, backend, clock)
	}
	for _, s := range SingletonSchemas() {
		c.singletons[s.Type] = NewSingleton(s, backend, clock)
	}
	return c
}

func (c *Catalog) Collection(typ string) (*Collection, bool) {
	col, ok := c.collections[typ]
	return col, ok
}

func (c *Catalog) Singleton(typ string) (*Singleton, bool) {
	s, ok := c.singletons[typ]
	return s, ok
}

// MustCollection is for call sites that name a built-in type.
func (c *Catalog) MustCollection(typ string) *Collection {
	col, ok := c.collections[typ]
	if !ok {
		panic("content: unknown collection type " + typ)
	}
	return col
}

func (c *Catalog) MustSingleton(typ string) *Singleton {
	s, ok := c.singletons[typ]
	if !ok {
		panic("content: unknown singleton type " + typ)
	}
	return s
}

// CollectionTypes returns the collection slugs in a stable order.
func (c *Catalog) CollectionTypes() []string {
	out := make([]string, 0, len(c.collections))
	for k := range c.collections {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SingletonTypes returns the singleton slugs in a stable order.
func (c *Catalog) SingletonTypes() []string {
	out := make([]string, 0, len(c.singletons))
	for k := range c.singletons {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Ping checks the storage connection.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.backend.Ping(ctx)
}
