package customer

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

func setupService(t *testing.T) (*Service, *jsonfile.AppointmentRepository) {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	customers := jsonfile.NewCustomerRepository(store)
	appointments := jsonfile.NewAppointmentRepository(store)
	return NewService(customers, appointments), appointments
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateCustomerRequest{
		Name:  "佐藤 花子",
		Kana:  "さとう はなこ",
		Phone: "090-1234-5678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	detail, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "佐藤 花子", detail.Name)
	assert.Zero(t, detail.Stats.TotalVisits)
	assert.Empty(t, detail.Appointments)
}

func TestCreateDuplicatePhoneRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "佐藤", Phone: "090-1111-2222"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateCustomerRequest{Name: "田中", Phone: "090-1111-2222"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePhoneUniquenessExcludesSelf(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "佐藤", Phone: "090-1111-2222"})
	require.NoError(t, err)

	// re-saving the same phone on the same customer is fine
	phone := "090-1111-2222"
	_, err = svc.Update(ctx, created.ID, &model.UpdateCustomerRequest{Phone: &phone})
	assert.NoError(t, err)
}

func TestGetIncludesProjectionAndHistory(t *testing.T) {
	svc, appointments := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "佐藤", Phone: "090-1111-2222"})
	require.NoError(t, err)

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	seed := func(id string, start time.Time, status model.AppointmentStatus, price int) {
		apt := &model.Appointment{
			ID: id, ClientID: created.ID, ClientName: created.Name,
			Start: start, Status: status, TotalPrice: price,
			Services: []model.AppointmentService{{ID: "svc-cut", Name: "カット", Duration: 40, Price: price}},
		}
		require.NoError(t, appointments.Create(ctx, apt))
	}
	seed("a1", now, model.AppointmentStatusCompleted, 8000)
	seed("a2", now.AddDate(0, 0, 2), model.AppointmentStatusCancelled, 5000)

	detail, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, detail.Stats.TotalVisits)
	assert.Equal(t, 8000, detail.Stats.TotalSpent)
	assert.Equal(t, 8000, detail.Stats.AverageSpent)
	// history still lists everything, most recent first
	require.Len(t, detail.Appointments, 2)
	assert.Equal(t, "a2", detail.Appointments[0].ID)
}

func TestListSearchAndSort(t *testing.T) {
	svc, appointments := setupService(t)
	ctx := context.Background()

	sato, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "佐藤", Kana: "さとう", Phone: "090-1111-0001"})
	require.NoError(t, err)
	tanaka, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "田中", Kana: "たなか", Phone: "090-1111-0002"})
	require.NoError(t, err)

	require.NoError(t, appointments.Create(ctx, &model.Appointment{
		ID: "a1", ClientID: tanaka.ID, Start: time.Now().AddDate(0, 0, -1),
		Status: model.AppointmentStatusCompleted, TotalPrice: 9000,
		Services: []model.AppointmentService{{ID: "svc-color", Name: "カラー", Duration: 90, Price: 9000}},
	}))

	bySpent, err := svc.List(ctx, model.CustomerFilter{Sort: model.CustomerSortSpent})
	require.NoError(t, err)
	require.Len(t, bySpent, 2)
	assert.Equal(t, tanaka.ID, bySpent[0].ID)
	assert.Equal(t, 9000, bySpent[0].Stats.TotalSpent)

	found, err := svc.List(ctx, model.CustomerFilter{Search: "さとう"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, sato.ID, found[0].ID)

	byPhone, err := svc.List(ctx, model.CustomerFilter{Search: "0002"})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, tanaka.ID, byPhone[0].ID)
}

func TestDeleteReturnsRemovedCustomer(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateCustomerRequest{Name: "佐藤", Phone: "090-1111-2222"})
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
