package router_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storecatalog/internal/auth"
	"storecatalog/internal/model"
)

// memStore is an in-memory stand-in for MySQL honouring the unique slug,
// unique email and category foreign key constraints.
type memStore struct {
	mu          sync.Mutex
	clock       time.Time
	nextImageID uint
	users       map[uuid.UUID]model.User
	creds       map[uuid.UUID]model.Credential
	categories  map[uuid.UUID]model.Category
	products    map[uuid.UUID]model.Product
	images      []model.ProductImage
}

func newMemStore() *memStore {
	return &memStore{
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:      map[uuid.UUID]model.User{},
		creds:      map[uuid.UUID]model.Credential{},
		categories: map[uuid.UUID]model.Category{},
		products:   map[uuid.UUID]model.Product{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.tick()
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

type memCredentials struct{ s *memStore }

func (r memCredentials) Create(ctx context.Context, cred *model.Credential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.creds {
		if c.Email == cred.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.creds[cred.ID] = *cred
	return nil
}

func (r memCredentials) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.creds {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memCredentials) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.creds, id)
	return nil
}

type memCategories struct{ s *memStore }

func (r memCategories) Create(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	category.ID = uuid.New()
	category.CreatedAt = r.s.tick()
	category.UpdatedAt = category.CreatedAt
	r.s.categories[category.ID] = *category
	return nil
}

func (r memCategories) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil
	}
	if v, ok := fields["name"].(string); ok {
		c.Name = v
	}
	if v, ok := fields["slug"].(string); ok {
		for _, other := range r.s.categories {
			if other.ID != id && other.Slug == v {
				return gorm.ErrDuplicatedKey
			}
		}
		c.Slug = v
	}
	c.UpdatedAt = r.s.tick()
	r.s.categories[id] = c
	return nil
}

func (r memCategories) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r memCategories) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memCategories) List(ctx context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memCategories) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(r.s.categories, id)
	return nil
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[product.CategoryID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	product.ID = uuid.New()
	product.CreatedAt = r.s.tick()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	stored.Category = nil
	r.s.products[product.ID] = stored
	return nil
}

func (r memProducts) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(decimal.Decimal)
		case "category_id":
			cid := v.(uuid.UUID)
			if _, ok := r.s.categories[cid]; !ok {
				return gorm.ErrForeignKeyViolated
			}
			p.CategoryID = cid
		}
	}
	p.UpdatedAt = r.s.tick()
	r.s.products[id] = p
	return nil
}

func (r memProducts) withCategory(p model.Product) model.Product {
	if c, ok := r.s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return p
}

func (r memProducts) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p = r.withCategory(p)
	return &p, nil
}

func (r memProducts) List(ctx context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, r.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memProducts) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r memProducts) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

type memImages struct{ s *memStore }

func (r memImages) CreateBatch(ctx context.Context, images []model.ProductImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range images {
		r.s.nextImageID++
		images[i].ID = r.s.nextImageID
		images[i].CreatedAt = r.s.tick()
		r.s.images = append(r.s.images, images[i])
	}
	return nil
}

func (r memImages) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	return r.ListByProducts(ctx, []uuid.UUID{productID})
}

// ListByProducts returns rows in insertion order, which is created_at, id ascending.
func (r memImages) ListByProducts(ctx context.Context, productIDs []uuid.UUID) ([]model.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		want[id] = true
	}
	var out []model.ProductImage
	for _, img := range r.s.images {
		if want[img.ProductID] {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r memImages) DeleteByURLs(ctx context.Context, productID uuid.UUID, urls []string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	drop := make(map[string]bool, len(urls))
	for _, u := range urls {
		drop[u] = true
	}
	var n int64
	kept := r.s.images[:0]
	for _, img := range r.s.images {
		if img.ProductID == productID && drop[img.ImageURL] {
			n++
			continue
		}
		kept = append(kept, img)
	}
	r.s.images = kept
	return n, nil
}

func (r memImages) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.images[:0]
	for _, img := range r.s.images {
		if img.ProductID != productID {
			kept = append(kept, img)
		}
	}
	r.s.images = kept
	return nil
}

func (s *memStore) imageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// memTokens implements auth.TokenStoreInterface without expiry.
type memTokens struct {
	mu      sync.Mutex
	refresh map[string]uuid.UUID
	revoked map[string]bool
}

var _ auth.TokenStoreInterface = (*memTokens)(nil)

func newMemTokens() *memTokens {
	return &memTokens{refresh: map[string]uuid.UUID{}, revoked: map[string]bool{}}
}

func (m *memTokens) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh[tokenID] = userID
	return nil
}

func (m *memTokens) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.refresh[tokenID]
	if !ok {
		return uuid.Nil, auth.ErrTokenNotFound
	}
	return id, nil
}

func (m *memTokens) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.refresh, tokenID)
	return nil
}

func (m *memTokens) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = true
	return nil
}

func (m *memTokens) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[tokenID], nil
}

// stubPinger reports a fixed health result.
type stubPinger struct {
	name string
	err  error
}

func (p stubPinger) Name() string                   { return p.name }
func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + strings.TrimSpace(token)
}
