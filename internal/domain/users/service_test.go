package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportdesk/internal/domain/auth"
)

type fakeStore struct {
	users       map[string]User
	passwords   map[string]string
	departments map[string]Department
	units       map[string]Unit
	seq         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]User),
		passwords:   make(map[string]string),
		departments: make(map[string]Department),
		units:       make(map[string]Unit),
	}
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) CreateUser(_ context.Context, u User, passwordHash string) (User, error) {
	u.ID = f.nextID("user")
	f.users[u.ID] = u
	f.passwords[u.ID] = passwordHash
	return u, nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, u User) (User, error) {
	if _, ok := f.users[u.ID]; !ok {
		return User{}, ErrNotFound
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) SetPassword(_ context.Context, id, passwordHash string) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	f.passwords[id] = passwordHash
	return nil
}

func (f *fakeStore) Deactivate(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	f.users[id] = u
	return nil
}

func (f *fakeStore) ListUsers(_ context.Context, filters ListFilters) ([]User, int, error) {
	var out []User
	for _, u := range f.users {
		if filters.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filters.DepartmentID) {
			continue
		}
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateDepartment(_ context.Context, d Department) (Department, error) {
	d.ID = f.nextID("dept")
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeStore) UpdateDepartment(_ context.Context, d Department) (Department, error) {
	if _, ok := f.departments[d.ID]; !ok {
		return Department{}, ErrDepartmentNotFound
	}
	f.departments[d.ID] = d
	return d, nil
}

func (f *fakeStore) DeleteDepartment(_ context.Context, id string) error {
	if _, ok := f.departments[id]; !ok {
		return ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeStore) GetDepartment(_ context.Context, id string) (Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return Department{}, ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeStore) ListDepartments(_ context.Context) ([]Department, error) {
	var out []Department
	for _, d := range f.departments {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) CreateUnit(_ context.Context, u Unit) (Unit, error) {
	u.ID = f.nextID("unit")
	f.units[u.ID] = u
	return u, nil
}

func (f *fakeStore) ListUnits(_ context.Context, departmentID string) ([]Unit, error) {
	var out []Unit
	for _, u := range f.units {
		if u.DepartmentID == departmentID {
			out = append(out, u)
		}
	}
	return out, nil
}

var (
	hrActor    = auth.UserContext{UserID: "user-hr", Role: auth.RoleHR}
	adminActor = auth.UserContext{UserID: "user-admin", Role: auth.RoleAdmin}
)

func TestCreateNormalisesEmailAndHashesPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	created, err := svc.Create(context.Background(), hrActor, CreateInput{
		Email:    "  Alice@Example.COM ",
		Name:     "Alice",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, auth.RoleStaff, created.Role)
	assert.True(t, created.IsActive)

	hash := store.passwords[created.ID]
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret", hash)
	assert.NoError(t, auth.CheckPassword(hash, "s3cret"))
}

func TestCreateDeniedBelowHR(t *testing.T) {
	svc := NewService(newFakeStore())
	for _, role := range []string{auth.RoleStaff, auth.RoleHOD} {
		actor := auth.UserContext{UserID: "u", Role: role}
		_, err := svc.Create(context.Background(), actor, CreateInput{Email: "x@y.z", Password: "p"})
		assert.ErrorIs(t, err, ErrForbidden, role)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "bob@example.com", Password: "p"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), hrActor, CreateInput{Email: "BOB@example.com", Password: "p"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "c@d.e", Password: "p", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateStaffSelfOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "s@e.f", Password: "p"})
	require.NoError(t, err)

	other := auth.UserContext{UserID: "someone-else", Role: auth.RoleStaff}
	_, err = svc.Update(context.Background(), other, created.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrForbidden)

	self := auth.UserContext{UserID: created.ID, Role: auth.RoleStaff}
	name := "New Name"
	updated, err := svc.Update(context.Background(), self, created.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}

func TestUpdateDropsPrivilegedFieldsForStaff(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "s@e.f", Password: "p"})
	require.NoError(t, err)

	self := auth.UserContext{UserID: created.ID, Role: auth.RoleStaff}
	role := auth.RoleAdmin
	inactive := false
	updated, err := svc.Update(context.Background(), self, created.ID, UpdateInput{Role: &role, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStaff, updated.Role)
	assert.True(t, updated.IsActive)
}

func TestUpdateHRMayChangeRoleAndPlacement(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "s@e.f", Password: "p"})
	require.NoError(t, err)

	role := auth.RoleHOD
	dept := "dept-9"
	updated, err := svc.Update(context.Background(), hrActor, created.ID, UpdateInput{Role: &role, DepartmentID: &dept})
	require.NoError(t, err)
	assert.Equal(t, auth.RoleHOD, updated.Role)
	require.NotNil(t, updated.DepartmentID)
	assert.Equal(t, "dept-9", *updated.DepartmentID)
}

func TestDeactivateAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created, err := svc.Create(context.Background(), hrActor, CreateInput{Email: "s@e.f", Password: "p"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), hrActor, created.ID), ErrForbidden)
	require.NoError(t, svc.Deactivate(context.Background(), adminActor, created.ID))

	after, err := svc.Get(context.Background(), adminActor, created.ID)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
}

func TestCreateUnitRequiresDepartment(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.CreateUnit(context.Background(), "missing", "Backend")
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	dept, err := svc.CreateDepartment(context.Background(), DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)
	unit, err := svc.CreateUnit(context.Background(), dept.ID, "Backend")
	require.NoError(t, err)
	assert.Equal(t, dept.ID, unit.DepartmentID)
}
