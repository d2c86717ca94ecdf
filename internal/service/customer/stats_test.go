package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksaito/salon-api/internal/model"
)

func apt(status model.AppointmentStatus, start time.Time, price int, serviceNames ...string) *model.Appointment {
	services := make([]model.AppointmentService, len(serviceNames))
	for i, name := range serviceNames {
		services[i] = model.AppointmentService{ID: name, Name: name, Duration: 30, Price: price / len(serviceNames)}
	}
	return &model.Appointment{
		Status:     status,
		Start:      start,
		TotalPrice: price,
		Services:   services,
	}
}

func TestProjectStatsCompletedOnly(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	appointments := []*model.Appointment{
		apt(model.AppointmentStatusCompleted, now, 8000, "カット"),
		apt(model.AppointmentStatusCancelled, now.AddDate(0, 0, 1), 5000, "カラー"),
		apt(model.AppointmentStatusScheduled, now.AddDate(0, 0, 7), 4500, "カット"),
	}

	stats := ProjectStats(appointments)

	assert.Equal(t, 1, stats.TotalVisits)
	assert.Equal(t, 8000, stats.TotalSpent)
	assert.Equal(t, 8000, stats.AverageSpent)
	require.NotNil(t, stats.LastVisit)
	assert.True(t, stats.LastVisit.Equal(now))
	assert.Equal(t, []string{"カット"}, stats.FavoriteServices)
}

func TestProjectStatsAverageRounds(t *testing.T) {
	now := time.Now()
	appointments := []*model.Appointment{
		apt(model.AppointmentStatusCompleted, now, 4500, "カット"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -30), 4000, "カット"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -60), 4000, "カット"),
	}

	stats := ProjectStats(appointments)

	assert.Equal(t, 3, stats.TotalVisits)
	assert.Equal(t, 12500, stats.TotalSpent)
	// round(12500 / 3)
	assert.Equal(t, 4167, stats.AverageSpent)
}

func TestProjectStatsEmpty(t *testing.T) {
	stats := ProjectStats(nil)

	assert.Zero(t, stats.TotalVisits)
	assert.Zero(t, stats.TotalSpent)
	assert.Zero(t, stats.AverageSpent)
	assert.Nil(t, stats.LastVisit)
	assert.Empty(t, stats.FavoriteServices)
}

func TestProjectStatsFavoriteServices(t *testing.T) {
	now := time.Now()
	appointments := []*model.Appointment{
		apt(model.AppointmentStatusCompleted, now, 4000, "カット", "トリートメント"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -10), 4000, "カット"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -20), 8000, "カラー", "トリートメント"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -30), 4000, "カット", "パーマ"),
		apt(model.AppointmentStatusCompleted, now.AddDate(0, 0, -40), 3000, "ヘッドスパ", "眉カット"),
	}

	stats := ProjectStats(appointments)

	// カット:3, トリートメント:2, カラー:1, パーマ:1, ヘッドスパ:1, 眉カット:1
	// top 5 only, ties kept in first-encountered order
	assert.Equal(t, []string{"カット", "トリートメント", "カラー", "パーマ", "ヘッドスパ"}, stats.FavoriteServices)
}

func TestProjectStatsLastVisitIgnoresCancelled(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 0, 5)
	appointments := []*model.Appointment{
		apt(model.AppointmentStatusCompleted, now, 4000, "カット"),
		apt(model.AppointmentStatusCancelled, later, 4000, "カット"),
	}

	stats := ProjectStats(appointments)

	require.NotNil(t, stats.LastVisit)
	assert.True(t, stats.LastVisit.Equal(now))
}
