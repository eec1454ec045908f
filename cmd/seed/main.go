package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"club-booking/backend/internal/config"
	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/firebase"
)

// Seeds reference data for a fresh project: membership levels, a couple
// of facilities and a demo member. Pass -with-booking to also create one
// confirmed booking through the service so the member's counter stays
// consistent.
func main() {
	withBooking := flag.Bool("with-booking", false, "also create a demo confirmed booking")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	defer fs.Close()

	levelRepo := levels.NewRepo(fs.Client)
	memberRepo := members.NewRepo(fs.Client, levelRepo)
	facilityRepo := facilities.NewRepo(fs.Client)
	bookingRepo := bookings.NewRepo(fs.Client)
	bookingSvc := bookings.NewService(bookingRepo, memberRepo, facilityRepo, levelRepo)

	basic, err := levelRepo.Create(ctx, levels.CreateLevelInput{
		Name:                     "Basic",
		MaxBookingsPerDay:        1,
		AdvanceBookingWindowDays: 7,
		AccessibleFacilityTypes:  []string{"gym"},
		Price:                    29.90,
	})
	if err != nil {
		log.Fatalf("seed level Basic: %v", err)
	}
	premium, err := levelRepo.Create(ctx, levels.CreateLevelInput{
		Name:                     "Premium",
		MaxBookingsPerDay:        3,
		AdvanceBookingWindowDays: 30,
		AccessibleFacilityTypes:  []string{"gym", "pool", "court", "studio"},
		Price:                    79.90,
	})
	if err != nil {
		log.Fatalf("seed level Premium: %v", err)
	}

	gym, err := facilityRepo.Create(ctx, facilities.CreateFacilityInput{
		Name:   "Gym A",
		Type:   facilities.TypeGym,
		Status: facilities.StatusAvailable,
		AssignedStaff: []facilities.StaffAssignment{
			{Name: "Sara Lee", Role: "trainer", Contact: "sara@club.example"},
		},
		OpeningHours: []facilities.OpeningWindow{
			{Day: "Mon", Open: "06:00", Close: "22:00"},
			{Day: "Tue", Open: "06:00", Close: "22:00"},
			{Day: "Wed", Open: "06:00", Close: "22:00"},
			{Day: "Thu", Open: "06:00", Close: "22:00"},
			{Day: "Fri", Open: "06:00", Close: "22:00"},
			{Day: "Sat", Open: "08:00", Close: "20:00"},
		},
	})
	if err != nil {
		log.Fatalf("seed facility Gym A: %v", err)
	}
	if _, err := facilityRepo.Create(ctx, facilities.CreateFacilityInput{
		Name:   "Pool 1",
		Type:   facilities.TypePool,
		Status: facilities.StatusAvailable,
		AssignedStaff: []facilities.StaffAssignment{
			{Name: "Ken Adams", Role: "lifeguard", Contact: "ken@club.example"},
		},
		OpeningHours: []facilities.OpeningWindow{
			{Day: "Mon", Open: "07:00", Close: "21:00"},
			{Day: "Wed", Open: "07:00", Close: "21:00"},
			{Day: "Fri", Open: "07:00", Close: "21:00"},
			{Day: "Sun", Open: "09:00", Close: "18:00"},
		},
	}); err != nil {
		log.Fatalf("seed facility Pool 1: %v", err)
	}

	demo, err := memberRepo.Create(ctx, members.CreateMemberInput{
		FirstName:         "Alice",
		LastName:          "Nguyen",
		Email:             "alice@club.example",
		Phone:             "+1-555-0100",
		MembershipLevelID: premium.ID,
		Status:            members.StatusActive,
	})
	if err != nil {
		log.Fatalf("seed member: %v", err)
	}

	if *withBooking {
		start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)
		b, err := bookingSvc.Create(ctx, bookings.CreateBookingInput{
			MemberID:   demo.ID,
			FacilityID: gym.ID,
			StartTime:  start,
			EndTime:    start.Add(time.Hour),
			Status:     bookings.StatusConfirmed,
		})
		if err != nil {
			log.Fatalf("seed booking: %v", err)
		}
		fmt.Println("ok: demo booking", b.ID)
	}

	fmt.Println("ok: seeded levels", basic.ID, premium.ID)
	fmt.Println("ok: seeded member", demo.ID)
}
