package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Strob0t/ProcureDesk/internal/domain"
	"github.com/Strob0t/ProcureDesk/internal/domain/cart"
	"github.com/Strob0t/ProcureDesk/internal/domain/catalog"
	"github.com/Strob0t/ProcureDesk/internal/domain/credit"
	"github.com/Strob0t/ProcureDesk/internal/domain/homepage"
	"github.com/Strob0t/ProcureDesk/internal/domain/order"
	"github.com/Strob0t/ProcureDesk/internal/domain/staff"
	"github.com/Strob0t/ProcureDesk/internal/domain/support"
	"github.com/Strob0t/ProcureDesk/internal/domain/tenant"
	"github.com/Strob0t/ProcureDesk/internal/domain/user"
	"github.com/Strob0t/ProcureDesk/internal/port/cache"
	"github.com/Strob0t/ProcureDesk/internal/port/database"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is an in-memory implementation of database.Store for testing.
// The mutex gives it the same per-tenant serialization guarantees the real
// store provides with row locks, so concurrency tests are meaningful.
type mockStore struct {
	mu sync.Mutex

	tenants    map[string]*tenant.Tenant
	users      []user.User
	staffers   []staff.Staff
	categories []catalog.Category
	products   map[string]*catalog.Product
	carts      map[string]*cart.Cart // keyed by tenant ID
	orders     []order.Order
	creditReqs []credit.Request
	tickets    []support.Ticket
	home       *homepage.Homepage

	seq int

	// Error hooks — set these to inject failures.
	getProductErr error
	checkoutErr   error
	touchLoginErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		tenants:  make(map[string]*tenant.Tenant),
		products: make(map[string]*catalog.Product),
		carts:    make(map[string]*cart.Cart),
	}
}

// nextID must be called with the mutex held.
func (m *mockStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// --- Tenants ---

func (m *mockStore) CreateTenantWithAdmin(_ context.Context, t *tenant.Tenant, admin *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.tenants {
		if existing.CompanyLegalName == t.CompanyLegalName || existing.AdminEmail == t.AdminEmail {
			return fmt.Errorf("company or admin email already registered: %w", domain.ErrConflict)
		}
	}
	t.ID = m.nextID("tenant")
	t.CreatedAt = time.Now()
	m.tenants[t.ID] = t
	admin.ID = m.nextID("user")
	admin.TenantID = t.ID
	m.users = append(m.users, *admin)
	return nil
}

func (m *mockStore) GetTenant(_ context.Context, id string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockStore) ListTenants(_ context.Context) ([]tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tenant.Tenant, 0, len(m.tenants))
	for _, t := range m.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockStore) SetTenantVerified(_ context.Context, id string, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Verified = verified
	return nil
}

// --- Corporate users ---

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
	}
	u.ID = m.nextID("user")
	m.users = append(m.users, *u)
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			cp := m.users[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			cp := m.users[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListUsersByTenant(_ context.Context, tenantID string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []user.User
	for _, u := range m.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockStore) TouchUserLogin(_ context.Context, id string) error {
	if m.touchLoginErr != nil {
		return m.touchLoginErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].LastLogin = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Staff ---

func (m *mockStore) CreateStaff(_ context.Context, s *staff.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.staffers {
		if existing.Email == s.Email {
			return fmt.Errorf("email already registered: %w", domain.ErrConflict)
		}
	}
	s.ID = m.nextID("staff")
	s.Active = true
	m.staffers = append(m.staffers, *s)
	return nil
}

func (m *mockStore) GetStaff(_ context.Context, id string) (*staff.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.staffers {
		if m.staffers[i].ID == id {
			cp := m.staffers[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetStaffByEmail(_ context.Context, email string) (*staff.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.staffers {
		if m.staffers[i].Email == email {
			cp := m.staffers[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) TouchStaffLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.staffers {
		if m.staffers[i].ID == id {
			m.staffers[i].LastLogin = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- Catalog ---

func (m *mockStore) CreateCategory(_ context.Context, c *catalog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.Slug == c.Slug {
			return fmt.Errorf("category %q already exists: %w", c.Slug, domain.ErrConflict)
		}
	}
	c.ID = m.nextID("cat")
	c.Active = true
	if c.Subcategories == nil {
		c.Subcategories = []catalog.Subcategory{}
	}
	m.categories = append(m.categories, *c)
	return nil
}

func (m *mockStore) GetCategory(_ context.Context, id string) (*catalog.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == id {
			cp := m.categories[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListCategories(_ context.Context, activeOnly bool) ([]catalog.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []catalog.Category
	for _, c := range m.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockStore) UpdateCategory(_ context.Context, c *catalog.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == c.ID {
			m.categories[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, p := range m.products {
		if p.CategoryID == id {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("category has %d products: %w", n, domain.ErrConflict)
	}
	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) AddSubcategory(_ context.Context, categoryID string, sc *catalog.Subcategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.categories {
		if m.categories[i].ID == categoryID {
			sc.ID = m.nextID("sub")
			sc.CategoryID = categoryID
			m.categories[i].Subcategories = append(m.categories[i].Subcategories, *sc)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) CreateProduct(_ context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.nextID("prod")
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockStore) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	if m.getProductErr != nil {
		return nil, m.getProductErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) UpdateProduct(_ context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockStore) SearchProducts(_ context.Context, req catalog.SearchRequest) (*catalog.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []catalog.Product
	for _, p := range m.products {
		if !p.Active {
			continue
		}
		if req.CategoryID != "" && p.CategoryID != req.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	return &catalog.SearchResult{Products: out, Page: 1, Limit: len(out), Total: len(out), Pages: 1}, nil
}

// --- Cart ---

// cartCopy must be called with the mutex held.
func (m *mockStore) cartCopy(tenantID string) (*cart.Cart, error) {
	c, ok := m.carts[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp, nil
}

func (m *mockStore) GetOrCreateCart(_ context.Context, tenantID, userID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCart(tenantID, userID)
	return m.cartCopy(tenantID)
}

// ensureCart must be called with the mutex held.
func (m *mockStore) ensureCart(tenantID, userID string) *cart.Cart {
	c, ok := m.carts[tenantID]
	if !ok {
		c = &cart.Cart{ID: m.nextID("cart"), TenantID: tenantID, UserID: userID, Items: []cart.Item{}}
		m.carts[tenantID] = c
	}
	return c
}

func (m *mockStore) UpsertCartItem(_ context.Context, tenantID, userID string, item cart.Item) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.ensureCart(tenantID, userID)
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = item.Quantity
			c.Items[i].UnitPrice = item.UnitPrice
			c.Items[i].MOQ = item.MOQ
			return m.cartCopy(tenantID)
		}
	}
	item.ID = m.nextID("item")
	c.Items = append(c.Items, item)
	return m.cartCopy(tenantID)
}

func (m *mockStore) IncrementCartItem(_ context.Context, tenantID, itemID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity++
			return m.cartCopy(tenantID)
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DecrementCartItem(_ context.Context, tenantID, itemID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			floor := c.Items[i].MOQ
			if floor < 1 {
				floor = 1
			}
			if c.Items[i].Quantity-1 < floor {
				return nil, fmt.Errorf("quantity cannot go below MOQ (%d): %w", floor, domain.ErrInvalidState)
			}
			c.Items[i].Quantity--
			return m.cartCopy(tenantID)
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) RemoveCartItem(_ context.Context, tenantID, itemID string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return m.cartCopy(tenantID)
		}
	}
	return nil, domain.ErrNotFound
}

// --- Checkout ---

func (m *mockStore) CheckoutCart(_ context.Context, tenantID, userID string) (*order.Order, error) {
	if m.checkoutErr != nil {
		return nil, m.checkoutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.carts[tenantID]
	if !ok || len(c.Items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", domain.ErrInvalidState)
	}

	lines, total, err := order.BuildFromCart(c.Items, m.products)
	if err != nil {
		return nil, err
	}

	t, ok := m.tenants[tenantID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if t.CreditUsed+total > t.CreditLimit {
		return nil, fmt.Errorf("insufficient credit (available %d, needed %d): %w",
			t.CreditLimit-t.CreditUsed, total, domain.ErrInvalidState)
	}

	o := order.Order{
		ID:          m.nextID("order"),
		TenantID:    tenantID,
		PlacedBy:    userID,
		Items:       lines,
		TotalAmount: total,
		Status:      order.StatusPlaced,
		CreatedAt:   time.Now(),
	}
	m.orders = append(m.orders, o)
	t.CreditUsed += total
	c.Items = c.Items[:0]

	cp := o
	return &cp, nil
}

// --- Orders ---

func (m *mockStore) GetOrder(_ context.Context, id string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			cp := m.orders[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetTenantOrder(_ context.Context, tenantID, id string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id && m.orders[i].TenantID == tenantID {
			cp := m.orders[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListOrdersByTenant(_ context.Context, tenantID string) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []order.Order
	for _, o := range m.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockStore) ListOrders(_ context.Context, status order.Status) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []order.Order
	for _, o := range m.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *mockStore) UpdateOrderStatus(_ context.Context, id string, target order.Status) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			if err := order.CanTransition(m.orders[i].Status, target); err != nil {
				return nil, err
			}
			m.orders[i].Status = target
			cp := m.orders[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Credit requests ---

func (m *mockStore) CreateCreditRequest(_ context.Context, r *credit.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.creditReqs {
		if existing.TenantID == r.TenantID && existing.Status == credit.StatusPending {
			return fmt.Errorf("tenant already has a pending credit request: %w", domain.ErrConflict)
		}
	}
	r.ID = m.nextID("credit")
	r.Status = credit.StatusPending
	r.CreatedAt = time.Now()
	m.creditReqs = append(m.creditReqs, *r)
	return nil
}

func (m *mockStore) GetCreditRequest(_ context.Context, id string) (*credit.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.creditReqs {
		if m.creditReqs[i].ID == id {
			cp := m.creditReqs[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) ListCreditRequestsByTenant(_ context.Context, tenantID string) ([]credit.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []credit.Request
	for _, r := range m.creditReqs {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) ListCreditRequests(_ context.Context, status credit.Status) ([]credit.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []credit.Request
	for _, r := range m.creditReqs {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockStore) DecideCreditRequest(_ context.Context, id string, approve bool, deciderID, note string) (*credit.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.creditReqs {
		if m.creditReqs[i].ID != id {
			continue
		}
		r := &m.creditReqs[i]
		if r.Status != credit.StatusPending {
			return nil, fmt.Errorf("credit request is already %s: %w", r.Status, domain.ErrInvalidState)
		}
		if approve {
			t, ok := m.tenants[r.TenantID]
			if !ok {
				return nil, domain.ErrNotFound
			}
			t.CreditLimit += r.Amount
			r.Status = credit.StatusApproved
		} else {
			r.Status = credit.StatusRejected
		}
		r.DecidedBy = deciderID
		r.DecisionNote = note
		r.DecidedAt = time.Now()
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// --- Support tickets ---

func (m *mockStore) CreateTicket(_ context.Context, t *support.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID("ticket")
	t.Status = support.StatusOpen
	t.CreatedAt = time.Now()
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *mockStore) ListTicketsByTenant(_ context.Context, tenantID string) ([]support.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []support.Ticket
	for _, t := range m.tickets {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockStore) ListTickets(_ context.Context, status support.Status) ([]support.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []support.Ticket
	for _, t := range m.tickets {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockStore) CloseTicket(_ context.Context, id string) (*support.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			if m.tickets[i].Status == support.StatusClosed {
				return nil, fmt.Errorf("ticket %s is already closed: %w", id, domain.ErrInvalidState)
			}
			m.tickets[i].Status = support.StatusClosed
			cp := m.tickets[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Homepage ---

func (m *mockStore) GetHomepage(_ context.Context) (*homepage.Homepage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.home == nil {
		return nil, domain.ErrNotFound
	}
	cp := *m.home
	return &cp, nil
}

func (m *mockStore) UpsertHomepage(_ context.Context, h *homepage.Homepage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = "1"
	cp := *h
	m.home = &cp
	return nil
}

// --- Supporting fakes for auth tests ---

// mockOTPStore is an in-memory OTP store with consume-once semantics.
type mockOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMockOTPStore() *mockOTPStore {
	return &mockOTPStore{codes: make(map[string]string)}
}

func (m *mockOTPStore) Set(_ context.Context, email, code string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *mockOTPStore) Consume(_ context.Context, email string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[email]
	if ok {
		delete(m.codes, email)
	}
	return code, ok, nil
}

func (m *mockOTPStore) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}

// mockMailer records sent mail instead of delivering it.
type mockMailer struct {
	mu      sync.Mutex
	sent    []string // recipient addresses
	bodies  []string
	sendErr error
}

func (m *mockMailer) Send(_ context.Context, to, _, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	m.bodies = append(m.bodies, body)
	return nil
}

// mockCache is a TTL-less in-memory catalog cache.
type mockCache struct {
	mu            sync.Mutex
	categories    []catalog.Category
	hasCategories bool
	products      map[string]*catalog.Product
}

var _ cache.Catalog = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{products: make(map[string]*catalog.Product)}
}

func (m *mockCache) GetCategories(_ context.Context) ([]catalog.Category, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasCategories {
		return nil, false
	}
	return append([]catalog.Category(nil), m.categories...), true
}

func (m *mockCache) SetCategories(_ context.Context, categories []catalog.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = append([]catalog.Category(nil), categories...)
	m.hasCategories = true
}

func (m *mockCache) DropCategories(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = nil
	m.hasCategories = false
}

func (m *mockCache) GetProduct(_ context.Context, id string) (*catalog.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

func (m *mockCache) SetProduct(_ context.Context, p *catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
}

func (m *mockCache) DropProduct(_ context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
}
