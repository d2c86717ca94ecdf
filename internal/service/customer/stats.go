package customer

import (
	"math"
	"sort"

	"github.com/ksaito/salon-api/internal/model"
)

// favoriteServiceLimit caps the favorite-services list.
const favoriteServiceLimit = 5

// ProjectStats derives a customer's statistics from their appointments. Only
// completed appointments contribute; scheduled and cancelled never do. This
// is the single projection used by every read path — list view, detail view
// and history — so the numbers cannot drift between screens. It is
// recomputed on every call, never cached.
func ProjectStats(appointments []*model.Appointment) model.CustomerStats {
	stats := model.CustomerStats{FavoriteServices: []string{}}

	serviceCounts := make(map[string]int)
	var serviceOrder []string

	for _, apt := range appointments {
		if apt.Status != model.AppointmentStatusCompleted {
			continue
		}

		stats.TotalVisits++
		stats.TotalSpent += apt.TotalPrice
		if stats.LastVisit == nil || apt.Start.After(*stats.LastVisit) {
			visit := apt.Start
			stats.LastVisit = &visit
		}

		for _, svc := range apt.Services {
			if _, seen := serviceCounts[svc.Name]; !seen {
				serviceOrder = append(serviceOrder, svc.Name)
			}
			serviceCounts[svc.Name]++
		}
	}

	if stats.TotalVisits > 0 {
		stats.AverageSpent = int(math.Round(float64(stats.TotalSpent) / float64(stats.TotalVisits)))
	}

	// Ties keep first-encountered order.
	sort.SliceStable(serviceOrder, func(i, j int) bool {
		return serviceCounts[serviceOrder[i]] > serviceCounts[serviceOrder[j]]
	})
	if len(serviceOrder) > favoriteServiceLimit {
		serviceOrder = serviceOrder[:favoriteServiceLimit]
	}
	stats.FavoriteServices = append(stats.FavoriteServices, serviceOrder...)

	return stats
}
