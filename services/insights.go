package services

import (
	"fmt"
	"sort"
	"strings"

	"listing-cleaner/models"
	"listing-cleaner/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(records []*models.CleanRecord) *models.InsightReport {
	report := &models.InsightReport{
		ListingsByBrand:  make(map[string]int),
		ListingsByEnergy: make(map[string]int),
		ListingsByMarket: make(map[string]int),
	}

	if len(records) == 0 {
		return report
	}

	report.TotalListings = len(records)

	var (
		totalPrice   int64
		totalMileage int64
		electrified  int
	)
	for _, r := range records {
		totalPrice += r.Price
		totalMileage += r.Mileage
		if r.Battery != nil {
			electrified++
		}
		report.ListingsByBrand[r.Brand]++
		if r.Energy != "" {
			report.ListingsByEnergy[r.Energy]++
		}
		if r.MarketPosition != "" {
			report.ListingsByMarket[r.MarketPosition]++
		}

		if report.Cheapest == nil || r.Price < report.Cheapest.Price {
			report.Cheapest = r
		}
		if report.MostExpensive == nil || r.Price > report.MostExpensive.Price {
			report.MostExpensive = r
		}
	}

	n := float64(len(records))
	report.MinPrice = report.Cheapest.Price
	report.MaxPrice = report.MostExpensive.Price
	report.AveragePrice = round2(float64(totalPrice) / n)
	report.AverageMileage = round2(float64(totalMileage) / n)
	report.ElectrifiedShare = round2(float64(electrified) / n)

	s.logger.Debug("[insights] %d listings across %d brands", report.TotalListings, len(report.ListingsByBrand))
	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  VEHICLE LISTING INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Clean listings   : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Average mileage  : \033[1m%.0f km\033[0m\n", r.AverageMileage)
	fmt.Printf("  Electrified      : \033[1m%.0f%%\033[0m\n", r.ElectrifiedShare*100)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalListings > 0 {
		fmt.Printf("  Average price : \033[1;32m%.2f €\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%d €\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%d €\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(describe(r.MostExpensive), 50))
		fmt.Printf("  Price : \033[1;31m%d €\033[0m\n", r.MostExpensive.Price)
		fmt.Println()
	}

	printCounts("Listings by Brand", thin, r.ListingsByBrand)
	printCounts("Listings by Energy", thin, r.ListingsByEnergy)
	printCounts("Market Position", thin, r.ListingsByMarket)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printCounts(title, thin string, counts map[string]int) {
	fmt.Printf("\033[1;33m  %s\033[0m\n", title)
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  No data\n\n")
		return
	}
	for _, kc := range sortedCounts(counts) {
		fmt.Printf("  %-30s %6d\n", truncate(kc.key, 28), kc.count)
	}
	fmt.Println()
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders by count descending, then key, so output is stable.
func sortedCounts(counts map[string]int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func describe(r *models.CleanRecord) string {
	parts := []string{r.Brand, r.Model}
	if r.Generation != GenerationNA {
		parts = append(parts, r.Generation)
	}
	return strings.Join(parts, " ")
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
