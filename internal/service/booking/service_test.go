package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository/jsonfile"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

func setupService(t *testing.T) (*Service, *jsonfile.CustomerRepository, *jsonfile.ServiceRepository) {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	appointments := jsonfile.NewAppointmentRepository(store)
	customers := jsonfile.NewCustomerRepository(store)
	services := jsonfile.NewServiceRepository(store)
	return NewService(appointments, customers, services, nil), customers, services
}

func seedCatalog(t *testing.T, services *jsonfile.ServiceRepository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, services.Create(ctx, &model.Service{
		ID: "svc-cut", Name: "カット", DurationMinutes: 40, Price: 4500, IsActive: true,
	}))
	require.NoError(t, services.Create(ctx, &model.Service{
		ID: "svc-color", Name: "カラー", DurationMinutes: 90, Price: 8000, IsActive: true,
	}))
}

func intPtr(v int) *int { return &v }

func TestCreateDerivesTotalsAndTitle(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      start,
		ClientName: "佐藤",
		Services: []model.AppointmentServiceRequest{
			{ID: "svc-cut"},
			{ID: "svc-color"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "カット & カラー", apt.Title)
	assert.Equal(t, 12500, apt.TotalPrice)
	assert.Equal(t, 130, apt.TotalDuration)
	assert.Equal(t, start.Add(130*time.Minute), apt.End)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.NotEmpty(t, apt.ID)
}

func TestCreateRoundTripKeepsSubmittedSnapshots(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	// adjusted values submitted by the booking flow
	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		ClientName: "佐藤",
		Services: []model.AppointmentServiceRequest{
			{ID: "svc-cut", Duration: intPtr(50), Price: intPtr(4000)},
		},
	})
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, apt.ID)
	require.NoError(t, err)

	require.Len(t, fetched.Services, 1)
	assert.Equal(t, model.AppointmentService{
		ID: "svc-cut", Name: "カット", Duration: 50, Price: 4000,
	}, fetched.Services[0])
	assert.Equal(t, 4000, fetched.TotalPrice)
	assert.Equal(t, 50, fetched.TotalDuration)
}

func TestCreateResolvesClient(t *testing.T) {
	svc, customers, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	require.NoError(t, customers.Create(ctx, &model.Customer{
		ID: "cust-1", Name: "田中", Phone: "090-0000-1111",
	}))

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:    time.Now().Add(24 * time.Hour),
		ClientID: "cust-1",
		Services: []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "田中", apt.ClientName)
	assert.Equal(t, "090-0000-1111", apt.Phone)
}

func TestCreateRequiresClientName(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)

	_, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		Start:    time.Now(),
		Services: []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})

	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateUnknownServiceFails(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		Start:      time.Now(),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "missing"}},
	})

	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{
		Services: []model.AppointmentServiceRequest{
			{ID: "svc-cut"},
			{ID: "svc-color"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "カット & カラー", updated.Title)
	assert.Equal(t, 12500, updated.TotalPrice)
	assert.Equal(t, 130, updated.TotalDuration)
	assert.Equal(t, updated.Start.Add(130*time.Minute), updated.End)
	assert.Equal(t, apt.ID, updated.ID)
}

func TestUpdateKeepsOverriddenTitle(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Title:      "常連様予約",
		Start:      time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "常連様予約", apt.Title)

	updated, err := svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{
		Services: []model.AppointmentServiceRequest{{ID: "svc-color"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "常連様予約", updated.Title)
}

func TestCompleteThenEditRejected(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Now(),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	_, err = svc.Update(ctx, apt.ID, &model.UpdateAppointmentRequest{
		Note: strPtr("late edit"),
	})
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestCancelledToCompletedRejected(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Now(),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, apt.ID)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, apt.ID)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestTransitionIsNotIdempotent(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Now(),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, apt.ID)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, apt.ID)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestDeleteIsHard(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	apt, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      time.Now(),
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, apt.ID))

	_, err = svc.Get(ctx, apt.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListFilters(t *testing.T) {
	svc, _, services := setupService(t)
	seedCatalog(t, services)
	ctx := context.Background()

	base := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	first, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      base,
		ClientName: "佐藤",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-cut"}},
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &model.CreateAppointmentRequest{
		Start:      base.AddDate(0, 0, 1),
		ClientName: "田中",
		Services:   []model.AppointmentServiceRequest{{ID: "svc-color"}},
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, second.ID)
	require.NoError(t, err)

	scheduled, err := svc.List(ctx, model.AppointmentFilter{Status: model.AppointmentStatusScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, first.ID, scheduled[0].ID)

	all, err := svc.List(ctx, model.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// ascending by start
	assert.Equal(t, first.ID, all[0].ID)
}

func strPtr(s string) *string { return &s }
