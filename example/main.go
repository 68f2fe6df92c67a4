package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/shopplan/pkg/application/services/backlog"
	"github.com/vsinha/shopplan/pkg/application/services/duration"
	"github.com/vsinha/shopplan/pkg/application/services/replenishment"
	"github.com/vsinha/shopplan/pkg/domain/entities"
	"github.com/vsinha/shopplan/pkg/domain/services/calendar"
	"github.com/vsinha/shopplan/pkg/domain/services/datetime"
	"github.com/vsinha/shopplan/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC) }

	cal := calendar.New()
	parser := datetime.NewParser(time.UTC)

	// Holidays and working days
	fmt.Println("📅 Holidays 2024")
	for _, h := range cal.HolidaysFor(2024).Holidays() {
		fmt.Printf("  %s  %s\n", h.Date.Format("02.01.2006"), h.Name)
	}
	fmt.Printf("  Working days in June: %d\n\n",
		cal.WorkingDaysBetween(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)))

	// Working duration between two shop-floor timestamps
	calc, err := duration.New(cal, parser)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}
	fmt.Println("⏱  Working time")
	fmt.Printf("  13.06.2024 14:00 -> 14.06.2024 10:00: %s\n",
		calc.WorkingDuration("13.06.2024 14:00", "14.06.2024 10:00"))
	fmt.Printf("  14.06.2024 14:30 -> 17.06.2024 7:45:  %s\n\n",
		calc.WorkingDuration("14.06.2024 14:30", "17.06.2024 7:45"))

	// Backlog forecast from an order table
	orders := memory.NewTable([]string{"Broj naloga", "Datum isporuke", "Količina", "Površina", "Neto vrijednost", "Status", "Vrijeme završetka"})
	orders.AddRow("N1", "10.06.2024", 10, 12.5, "1.250,50", "Završeno", "10.06.2024 12:00")
	orders.AddRow("N2", "11.06.2024", 4, 7.5, "800", "gotovo", "11.06.2024 09:15")
	orders.AddRow("N3", "20.06.2024", 6, 30, "2 000,00", "U izradi", nil)
	orders.AddRow("N4", "21.06.2024", 2, 10, "450", "", nil)

	snapshot, err := backlog.New(cal, parser, backlog.WithClock(now)).Summarize(orders, 10)
	if err != nil {
		fmt.Printf("❌ Backlog failed: %v\n", err)
		return
	}
	fmt.Println("🏭 Backlog")
	fmt.Printf("  Pending area: %s m² of %s m²\n", snapshot.Pending.Area, snapshot.Total.Area)
	fmt.Printf("  Daily rate:   %s m² (%s)\n", snapshot.DailyRate.StringFixed(2), snapshot.RateSource)
	fmt.Printf("  Remaining:    %s working days, %s calendar days\n",
		snapshot.RemainingWorkingDays, snapshot.RemainingCalendarDays)
	fmt.Printf("  Delivery:     %s\n\n", snapshot.PlannedDelivery.Format("02.01.2006"))

	// Replenishment plans
	items := memory.NewItemRepository(2)
	board, _ := entities.NewItem("PLOCA-18", "Iverica 18 mm", 5, entities.LotForLot, 0, 0, 20, "kom")
	board.AnnualConsumption = 3650
	board.CurrentStock = 100
	edge, _ := entities.NewItem("RUB-2", "Rubna traka 2 mm", 10, entities.StandardPack, 500, 250, 200, "m")
	edge.AnnualConsumption = 12000
	edge.CurrentStock = 450
	if err := items.LoadItems([]*entities.Item{board, edge}); err != nil {
		fmt.Printf("❌ %v\n", err)
		return
	}

	plans, err := replenishment.NewPlanner(replenishment.DefaultConfig(), replenishment.WithClock(now)).PlanAll(ctx, items)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}
	fmt.Println("📦 Replenishment")
	for _, p := range plans {
		when := "now"
		if !p.OrderNow {
			when = p.PlannedOrderDate.Format("02.01.2006")
		}
		fmt.Printf("  %-9s ROP %7.1f  max %7.1f  order %7.1f on %s, arriving %s\n",
			p.PartNumber, p.ReorderPoint, p.TargetMaxLevel, p.RecommendedQuantity,
			when, p.ExpectedArrival.Format("02.01.2006"))
	}
}
