package model

// HistoricalAdjustment aggregates a customer's completed-appointment usage of
// one service, alongside the current catalog base values for comparison.
type HistoricalAdjustment struct {
	ServiceID           string `json:"serviceId"`
	ServiceName         string `json:"serviceName"`
	Frequency           int    `json:"frequency"`
	AverageDuration     int    `json:"averageDuration"`
	AveragePrice        int    `json:"averagePrice"`
	MostCommonDuration  int    `json:"mostCommonDuration"`
	MostCommonPrice     int    `json:"mostCommonPrice"`
	LatestDuration      int    `json:"latestDuration"`
	LatestPrice         int    `json:"latestPrice"`
	RecentTrendDuration int    `json:"recentTrendDuration"`
	RecentTrendPrice    int    `json:"recentTrendPrice"`
	BaseDuration        int    `json:"baseDuration"`
	BasePrice           int    `json:"basePrice"`
}
