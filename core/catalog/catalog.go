package catalog

import (
	"github.com/nopianhadi/adminkit/core/cache"
	"github.com/nopianhadi/adminkit/core/repository"
	"github.com/nopianhadi/adminkit/core/store"
)

// Registry binds every resource type to one shared store client, cache, and
// guard. Constructors are cheap; repositories hold no state of their own, so
// calling Projects() twice yields equivalent values over the same cache.
type Registry struct {
	client store.Client
	cache  *cache.Cache
	guard  repository.Guard
	opts   []repository.Option
}

// New creates the resource registry. Options are forwarded to every
// repository the registry constructs.
func New(client store.Client, c *cache.Cache, guard repository.Guard, opts ...repository.Option) *Registry {
	return &Registry{client: client, cache: c, guard: guard, opts: opts}
}

var (
	byCreatedDesc = store.Order{Column: "created_at", Descending: true}
	bySortOrder   = store.Order{Column: "sort_order"}
)

func (r *Registry) Projects() *repository.Repository[Project] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Project]{
		Table:    "projects",
		Resource: "project",
		Order:    byCreatedDesc,
		Encode:   joinColumn("technologies", ","),
		Decode:   splitColumn("technologies", ","),
	}, r.opts...)
}

// Users narrows its select list so the password hash column never leaves the
// store through this surface.
func (r *Registry) Users() *repository.Repository[User] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[User]{
		Table:     "users",
		Resource:  "user",
		Protected: true,
		Columns:   []string{"id", "email", "handle", "display_name", "role", "created_at", "updated_at"},
		Order:     byCreatedDesc,
	}, r.opts...)
}

func (r *Registry) Categories() *repository.Repository[Category] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Category]{
		Table:    "categories",
		Resource: "category",
		Order:    store.Order{Column: "name"},
		Encode:   ensureSlug("name"),
	}, r.opts...)
}

func (r *Registry) Settings() *repository.Repository[Setting] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Setting]{
		Table:     "settings",
		Resource:  "setting",
		Protected: true,
		Order:     store.Order{Column: "key"},
	}, r.opts...)
}

func (r *Registry) TeamMembers() *repository.Repository[TeamMember] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[TeamMember]{
		Table:    "team_members",
		Resource: "team_member",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) Testimonials() *repository.Repository[Testimonial] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Testimonial]{
		Table:    "testimonials",
		Resource: "testimonial",
		Order:    byCreatedDesc,
	}, r.opts...)
}

func (r *Registry) Partners() *repository.Repository[Partner] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Partner]{
		Table:    "partners",
		Resource: "partner",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) NewsItems() *repository.Repository[NewsItem] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[NewsItem]{
		Table:    "news_items",
		Resource: "news_item",
		Order:    store.Order{Column: "published_at", Descending: true},
	}, r.opts...)
}

func (r *Registry) APIKeys() *repository.Repository[APIKey] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[APIKey]{
		Table:     "api_keys",
		Resource:  "api_key",
		Protected: true,
		Order:     byCreatedDesc,
	}, r.opts...)
}

func (r *Registry) Statistics() *repository.Repository[Statistic] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Statistic]{
		Table:    "statistics",
		Resource: "statistic",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) Features() *repository.Repository[Feature] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Feature]{
		Table:    "features",
		Resource: "feature",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) FAQs() *repository.Repository[FAQ] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[FAQ]{
		Table:    "faqs",
		Resource: "faq",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) Technologies() *repository.Repository[Technology] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Technology]{
		Table:    "technologies",
		Resource: "technology",
		Order:    bySortOrder,
		Encode:   joinColumn("tools", ","),
		Decode:   splitColumn("tools", ","),
	}, r.opts...)
}

func (r *Registry) TechnologyCategories() *repository.Repository[TechnologyCategory] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[TechnologyCategory]{
		Table:    "technology_categories",
		Resource: "technology_category",
		Order:    bySortOrder,
		Encode:   ensureSlug("name"),
	}, r.opts...)
}

func (r *Registry) ProcessSteps() *repository.Repository[ProcessStep] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[ProcessStep]{
		Table:    "process_steps",
		Resource: "process_step",
		Order:    store.Order{Column: "step_number"},
	}, r.opts...)
}

func (r *Registry) BlogCategories() *repository.Repository[BlogCategory] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[BlogCategory]{
		Table:    "blog_categories",
		Resource: "blog_category",
		Order:    store.Order{Column: "name"},
		Encode:   ensureSlug("name"),
	}, r.opts...)
}

func (r *Registry) BlogPosts() *repository.Repository[BlogPost] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[BlogPost]{
		Table:    "blog_posts",
		Resource: "blog_post",
		Order:    store.Order{Column: "published_at", Descending: true},
		Encode:   ensureSlug("title"),
	}, r.opts...)
}

func (r *Registry) PricingPlans() *repository.Repository[PricingPlan] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[PricingPlan]{
		Table:    "pricing_plans",
		Resource: "pricing_plan",
		Order:    bySortOrder,
		Encode:   joinColumn("features", "\n"),
		Decode:   splitColumn("features", "\n"),
	}, r.opts...)
}

func (r *Registry) Notifications() *repository.Repository[Notification] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Notification]{
		Table:     "notifications",
		Resource:  "notification",
		Protected: true,
		Order:     byCreatedDesc,
	}, r.opts...)
}

func (r *Registry) ContactMessages() *repository.Repository[ContactMessage] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[ContactMessage]{
		Table:     "contact_messages",
		Resource:  "contact_message",
		Protected: true,
		Order:     byCreatedDesc,
	}, r.opts...)
}

func (r *Registry) Services() *repository.Repository[Service] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[Service]{
		Table:    "services",
		Resource: "service",
		Order:    bySortOrder,
	}, r.opts...)
}

func (r *Registry) HeroSlides() *repository.Repository[HeroSlide] {
	return repository.New(r.client, r.cache, r.guard, repository.Config[HeroSlide]{
		Table:    "hero_slides",
		Resource: "hero_slide",
		Order:    bySortOrder,
	}, r.opts...)
}
