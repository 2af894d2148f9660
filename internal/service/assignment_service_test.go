package service

import (
	"context"
	"testing"
	"time"

	"physio-service/internal/dbtest"
	"physio-service/internal/model"
	"physio-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type assignmentFixture struct {
	db          *gorm.DB
	svc         *AssignmentService
	users       *repository.UserRepository
	exercices   *repository.ExerciceRepository
	assignments *repository.UserExerciceRepository
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	db := dbtest.Open(t)
	f := &assignmentFixture{
		db:          db,
		users:       repository.NewUserRepository(db),
		exercices:   repository.NewExerciceRepository(db),
		assignments: repository.NewUserExerciceRepository(db),
	}
	f.svc = NewAssignmentService(f.assignments, f.exercices, f.users)
	return f
}

func (f *assignmentFixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Password: "h", Role: model.RolePatient}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *assignmentFixture) exercice(t *testing.T, name string) *model.Exercice {
	t.Helper()
	e := &model.Exercice{Name: name, Description: name + " description", Difficulty: "easy", VideoLink: "https://video/" + name}
	require.NoError(t, f.exercices.Create(context.Background(), e))
	return e
}

func TestAssignAppliesDefaults(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	e := f.exercice(t, "Squats")

	ue, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID, Date: model.NewDate(2024, time.January, 1)})
	require.NoError(t, err)
	assert.NotZero(t, ue.ID)
	assert.Equal(t, model.DefaultSeries, ue.Series)
	assert.Equal(t, model.DefaultRepetitions, ue.Repetitions)
	assert.False(t, ue.Checked)
	assert.False(t, ue.Optional)
}

func TestAssignValidatesReferences(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	e := f.exercice(t, "Squats")
	day := model.NewDate(2024, time.January, 1)

	_, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID + 100, ExerciceID: e.ID, Date: day})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID + 100, Date: day})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID, Date: day, Series: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExercisesForUserOnDate(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	other := f.user(t, "b@x.com")
	squats := f.exercice(t, "Squats")
	plank := f.exercice(t, "Plank")
	day := model.NewDate(2024, time.January, 1)
	nextDay := model.NewDate(2024, time.January, 2)

	first, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: squats.ID, Date: day, Series: 3, Repetitions: 10})
	require.NoError(t, err)
	second, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: plank.ID, Date: day, Optional: true, Series: 1, Repetitions: 1})
	require.NoError(t, err)
	// same exercice twice on the same day is allowed
	third, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: squats.ID, Date: day, Series: 2, Repetitions: 15})
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: plank.ID, Date: nextDay})
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, AssignInput{UserID: other.ID, ExerciceID: plank.ID, Date: day})
	require.NoError(t, err)

	views, err := f.svc.ExercisesForUserOnDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, model.AssignmentView{
		AssignmentID: first.ID,
		ExerciceID:   squats.ID,
		Name:         "Squats",
		Description:  "Squats description",
		Date:         day,
		Series:       3,
		Repetitions:  10,
		VideoLink:    "https://video/Squats",
	}, views[0])
	assert.Equal(t, second.ID, views[1].AssignmentID)
	assert.Equal(t, "Plank", views[1].Name)
	assert.True(t, views[1].Optional)
	assert.Equal(t, third.ID, views[2].AssignmentID)
	assert.Equal(t, 15, views[2].Repetitions)
}

func TestExercisesForUserOnDateSkipsDanglingExercice(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	squats := f.exercice(t, "Squats")
	day := model.NewDate(2024, time.January, 1)

	_, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: squats.ID, Date: day})
	require.NoError(t, err)
	// planted directly: the service refuses unknown exercices
	require.NoError(t, f.assignments.Create(ctx, &model.UserExercice{UserID: u.ID, ExerciceID: 999, Date: day, Series: 1, Repetitions: 10}))

	views, err := f.svc.ExercisesForUserOnDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, squats.ID, views[0].ExerciceID)
}

func TestExercisesForUserOnDateEmpty(t *testing.T) {
	f := newAssignmentFixture(t)

	views, err := f.svc.ExercisesForUserOnDate(context.Background(), 1, model.NewDate(2024, time.January, 1))
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

type countingCatalog struct {
	CatalogStore
	listCalls int
	lastIDs   []uint
}

func (c *countingCatalog) ListByIDs(ctx context.Context, ids []uint) ([]model.Exercice, error) {
	c.listCalls++
	c.lastIDs = ids
	return c.CatalogStore.ListByIDs(ctx, ids)
}

func TestExercisesForUserOnDateFetchesCatalogOnce(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	squats := f.exercice(t, "Squats")
	plank := f.exercice(t, "Plank")
	day := model.NewDate(2024, time.January, 1)
	for _, id := range []uint{squats.ID, plank.ID, squats.ID} {
		_, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: id, Date: day})
		require.NoError(t, err)
	}

	catalog := &countingCatalog{CatalogStore: f.exercices}
	svc := NewAssignmentService(f.assignments, catalog, f.users)

	views, err := svc.ExercisesForUserOnDate(ctx, u.ID, day)
	require.NoError(t, err)
	assert.Len(t, views, 3)
	assert.Equal(t, 1, catalog.listCalls)
	assert.Equal(t, []uint{squats.ID, plank.ID}, catalog.lastIDs)
}

func TestListAndMarkChecked(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()
	u := f.user(t, "a@x.com")
	e := f.exercice(t, "Squats")
	day := model.NewDate(2024, time.January, 1)

	ue, err := f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID, Date: day})
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, AssignInput{UserID: u.ID, ExerciceID: e.ID, Date: model.NewDate(2024, time.January, 3)})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onDay, err := f.svc.List(ctx, u.ID, &day)
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, ue.ID, onDay[0].ID)

	checked, err := f.svc.MarkChecked(ctx, ue.ID, true)
	require.NoError(t, err)
	assert.True(t, checked.Checked)

	views, err := f.svc.ExercisesForUserOnDate(ctx, u.ID, day)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Checked)

	_, err = f.svc.MarkChecked(ctx, 999, true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
