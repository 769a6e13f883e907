package service

import (
	"context"

	"gorm.io/gorm"

	"lawdesk/internal/model"
)

// stubTx satisfies repository.TransactionManager without a database; the
// callback runs against the same stores either way.
type stubTx struct{}

func (stubTx) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// ---- users ----

type stubUserRepo struct {
	nextID uint
	users  map[uint]*model.User
	// lookupErr, when set, fails the uniqueness lookups the way a broken
	// connection would.
	lookupErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) add(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = &u
	return r.users[u.ID]
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ListActiveByRole(_ context.Context, role model.Role, page, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range r.users {
		if u.Role == role && !u.IsDeleted {
			matched = append(matched, *u)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []model.User{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) FindActiveByRole(_ context.Context, id uint, role model.Role) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != role || u.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindAnyByRole(_ context.Context, id uint, role model.Role) (*model.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != role {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *model.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) SetDeleted(_ context.Context, id uint, deleted bool) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsDeleted = deleted
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

// ---- clients ----

type stubClientRepo struct {
	nextID  uint
	clients map[uint]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{nextID: 1, clients: make(map[uint]*model.Client)}
}

func (r *stubClientRepo) add(c model.Client) *model.Client {
	if c.ID == 0 {
		c.ID = r.nextID
	}
	if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	r.clients[c.ID] = &c
	return r.clients[c.ID]
}

func (r *stubClientRepo) Create(_ context.Context, client *model.Client) error {
	client.ID = r.nextID
	r.nextID++
	clone := *client
	r.clients[client.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uint) (*model.Client, error) {
	if c, ok := r.clients[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) FindActiveByID(_ context.Context, id uint) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) FindByUsername(_ context.Context, username string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.Username == username {
			clone := *c
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClientRepo) ListActive(_ context.Context, page, limit int) ([]model.Client, int64, error) {
	var matched []model.Client
	for _, c := range r.clients {
		if !c.IsDeleted {
			matched = append(matched, *c)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []model.Client{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubClientRepo) Update(_ context.Context, client *model.Client) error {
	clone := *client
	r.clients[client.ID] = &clone
	return nil
}

func (r *stubClientRepo) SetDeleted(_ context.Context, id uint, deleted bool) error {
	c, ok := r.clients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsDeleted = deleted
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uint) error {
	delete(r.clients, id)
	return nil
}

// ---- cases ----

type stubCaseRepo struct {
	nextID  uint
	cases   map[uint]*model.Case
	staff   map[uint][]model.User
	users   *stubUserRepo
	clients *stubClientRepo
	// numberErr, when set, fails FindByNumber the way a broken connection
	// would.
	numberErr error
}

func newStubCaseRepo(users *stubUserRepo, clients *stubClientRepo) *stubCaseRepo {
	return &stubCaseRepo{
		nextID:  1,
		cases:   make(map[uint]*model.Case),
		staff:   make(map[uint][]model.User),
		users:   users,
		clients: clients,
	}
}

// withAssociations mirrors the real repository's preloads: the staff set plus
// the lawyer and client rows resolved from their stores.
func (r *stubCaseRepo) withAssociations(c model.Case) *model.Case {
	clone := c
	clone.StaffMembers = append([]model.User(nil), r.staff[c.ID]...)
	if u, ok := r.users.users[c.LawyerID]; ok {
		clone.Lawyer = *u
	}
	if cl, ok := r.clients.clients[c.ClientID]; ok {
		clone.Client = *cl
	}
	return &clone
}

func (r *stubCaseRepo) assigned(caseID, staffID uint) bool {
	for _, u := range r.staff[caseID] {
		if u.ID == staffID {
			return true
		}
	}
	return false
}

func (r *stubCaseRepo) Create(_ context.Context, c *model.Case) error {
	c.ID = r.nextID
	r.nextID++
	r.staff[c.ID] = append([]model.User(nil), c.StaffMembers...)
	clone := *c
	clone.StaffMembers = nil
	r.cases[c.ID] = &clone
	return nil
}

func (r *stubCaseRepo) FindByNumber(_ context.Context, caseNumber string) (*model.Case, error) {
	if r.numberErr != nil {
		return nil, r.numberErr
	}
	for _, c := range r.cases {
		if c.CaseNumber == caseNumber {
			return r.withAssociations(*c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaseRepo) FindByID(_ context.Context, id uint) (*model.Case, error) {
	if c, ok := r.cases[id]; ok {
		return r.withAssociations(*c), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaseRepo) FindActiveByID(_ context.Context, id uint) (*model.Case, error) {
	c, ok := r.cases[id]
	if !ok || c.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withAssociations(*c), nil
}

func (r *stubCaseRepo) FindActiveByIDForStaff(_ context.Context, id, staffID uint) (*model.Case, error) {
	c, ok := r.cases[id]
	if !ok || c.IsDeleted || !r.assigned(id, staffID) {
		return nil, gorm.ErrRecordNotFound
	}
	return r.withAssociations(*c), nil
}

func (r *stubCaseRepo) ListActive(_ context.Context, page, limit int) ([]model.Case, int64, error) {
	var matched []model.Case
	for _, c := range r.cases {
		if !c.IsDeleted {
			matched = append(matched, *r.withAssociations(*c))
		}
	}
	return pageOf(matched, page, limit)
}

func (r *stubCaseRepo) ListActiveForStaff(_ context.Context, staffID uint, page, limit int) ([]model.Case, int64, error) {
	var matched []model.Case
	for _, c := range r.cases {
		if !c.IsDeleted && r.assigned(c.ID, staffID) {
			matched = append(matched, *r.withAssociations(*c))
		}
	}
	return pageOf(matched, page, limit)
}

func pageOf(matched []model.Case, page, limit int) ([]model.Case, int64, error) {
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []model.Case{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubCaseRepo) Update(_ context.Context, c *model.Case) error {
	clone := *c
	clone.StaffMembers = nil
	r.cases[c.ID] = &clone
	return nil
}

func (r *stubCaseRepo) ReplaceStaff(_ context.Context, c *model.Case, staff []model.User) error {
	r.staff[c.ID] = append([]model.User(nil), staff...)
	return nil
}

func (r *stubCaseRepo) SetDeleted(_ context.Context, id uint, deleted bool) error {
	c, ok := r.cases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsDeleted = deleted
	return nil
}

func (r *stubCaseRepo) Delete(_ context.Context, id uint) error {
	delete(r.cases, id)
	delete(r.staff, id)
	return nil
}
