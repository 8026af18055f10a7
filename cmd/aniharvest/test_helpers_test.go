package main

import (
	"fmt"

	"aniharvest/internal/harvest"
)

func sampleRecords(n int) []harvest.SeriesRecord {
	records := make([]harvest.SeriesRecord, 0, n)
	for i := 1; i <= n; i++ {
		id := int64(1000 + i)
		year := 2010 + i
		records = append(records, harvest.SeriesRecord{
			SerialNo:      i,
			Name:          fmt.Sprintf("show-%d?", i),
			Title:         fmt.Sprintf("Title %d", i),
			CatalogID:     &id,
			Year:          &year,
			Episodes:      fmt.Sprintf("1-%d", i+11),
			EpisodeOffset: 0,
		})
	}
	return records
}
