package comments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportdesk/internal/domain/auth"
)

type fakeStore struct {
	comments map[string]Comment
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{comments: map[string]Comment{}}
}

func (f *fakeStore) CreateComment(_ context.Context, c Comment) (Comment, error) {
	f.nextID++
	c.ID = string(rune('a' + f.nextID - 1))
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetComment(_ context.Context, id string) (Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) UpdateComment(_ context.Context, id, content string) (Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return Comment{}, ErrNotFound
	}
	c.Content = content
	f.comments[id] = c
	return c, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeStore) ListForReport(_ context.Context, reportID string) ([]Comment, error) {
	var out []Comment
	for _, c := range f.comments {
		if c.ReportID == reportID && c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) AuthorName(_ context.Context, userID string) (string, error) {
	return "Author " + userID, nil
}

type fakeReports struct {
	ownerID string
	date    time.Time
}

func (f *fakeReports) OwnerAndDate(context.Context, string) (string, time.Time, error) {
	return f.ownerID, f.date, nil
}

type fakeNotifier struct {
	feedback int
	lastAuthor string
}

func (f *fakeNotifier) FeedbackAdded(_ context.Context, _, _, authorName string, _ time.Time) error {
	f.feedback++
	f.lastAuthor = authorName
	return nil
}

var (
	owner    = auth.UserContext{UserID: "owner", Role: auth.RoleStaff}
	reviewer = auth.UserContext{UserID: "hod-1", Role: auth.RoleHOD}
	hrUser   = auth.UserContext{UserID: "hr-1", Role: auth.RoleHR}
)

func newTestService() (*Service, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	reports := &fakeReports{ownerID: "owner", date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	return NewService(store, reports, notifier), store, notifier
}

func TestCreateNotifiesReportOwner(t *testing.T) {
	svc, _, notifier := newTestService()

	_, err := svc.Create(context.Background(), reviewer, "r1", "needs detail", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, notifier.feedback)
	assert.Equal(t, "Author hod-1", notifier.lastAuthor)
}

func TestCreateOwnReportSkipsNotification(t *testing.T) {
	svc, _, notifier := newTestService()

	_, err := svc.Create(context.Background(), owner, "r1", "my own note", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, notifier.feedback)
}

func TestCreateRejectsNestedReply(t *testing.T) {
	svc, _, _ := newTestService()

	top, err := svc.Create(context.Background(), reviewer, "r1", "top", nil)
	require.NoError(t, err)
	reply, err := svc.Create(context.Background(), reviewer, "r1", "reply", &top.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), reviewer, "r1", "too deep", &reply.ID)
	assert.ErrorIs(t, err, ErrNestedReply)
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), reviewer, "r1", "   ", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestUpdateRequiresAuthorOrHR(t *testing.T) {
	svc, _, _ := newTestService()

	c, err := svc.Create(context.Background(), owner, "r1", "original", nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), reviewer, c.ID, "edited by hod")
	assert.ErrorIs(t, err, ErrNotAuthor)

	updated, err := svc.Update(context.Background(), hrUser, c.ID, "edited by hr")
	require.NoError(t, err)
	assert.Equal(t, "edited by hr", updated.Content)

	updated, err = svc.Update(context.Background(), owner, c.ID, "edited by author")
	require.NoError(t, err)
	assert.Equal(t, "edited by author", updated.Content)
}

func TestDeleteRequiresAuthorOrHR(t *testing.T) {
	svc, store, _ := newTestService()

	c, err := svc.Create(context.Background(), owner, "r1", "to delete", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), reviewer, c.ID), ErrNotAuthor)
	require.NoError(t, svc.Delete(context.Background(), hrUser, c.ID))
	assert.Empty(t, store.comments)
}
