package services

import (
	"sort"

	"github.com/ghuser/smartfridge/services/fridge/domain/models"
)

// AverageFillFactor is the mean fill factor of the non-empty items. Empty
// items count toward neither sum nor count; with none left the result is 0.
func AverageFillFactor(items []*models.FridgeItem) float64 {
	var sum float64
	var n int
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		sum += item.FillFactor
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BucketsAtOrBelow keeps the items filled no more than threshold and groups
// them by type. Buckets are ordered by ascending type id; items inside a
// bucket keep their input order.
func BucketsAtOrBelow(items []*models.FridgeItem, threshold float64) []models.Bucket {
	byType := make(map[int64]models.Bucket)
	for _, item := range items {
		if !item.AtOrBelow(threshold) {
			continue
		}
		byType[item.TypeID] = append(byType[item.TypeID], models.FillFactorResult{
			TypeID:     item.TypeID,
			FillFactor: item.FillFactor,
		})
	}

	buckets := make([]models.Bucket, 0, len(byType))
	for _, b := range byType {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].TypeID() < buckets[j].TypeID() })
	return buckets
}
