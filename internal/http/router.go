package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"club-booking/backend/internal/config"
	"club-booking/backend/internal/domain/bookings"
	"club-booking/backend/internal/domain/facilities"
	"club-booking/backend/internal/domain/levels"
	"club-booking/backend/internal/domain/members"
	"club-booking/backend/internal/domain/notifications"
	"club-booking/backend/internal/domain/reports"
	"club-booking/backend/internal/domain/usagelogs"
	"club-booking/backend/internal/fault"
	"club-booking/backend/internal/httpjson"
	"club-booking/backend/internal/middleware"
	"club-booking/backend/internal/utils"
)

type RouterDeps struct {
	Cfg              config.Config
	Logger           *logrus.Logger
	LevelRepo        *levels.Repo
	MemberRepo       *members.Repo
	FacilityRepo     *facilities.Repo
	BookingSvc       *bookings.Service
	UsageLogRepo     *usagelogs.Repo
	NotificationsSvc *notifications.Service
	ReportsSvc       *reports.Service
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	r.Use(storeTimeout(d.Cfg.StoreTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	// ===== Membership level routes =====
	r.Post("/v1/levels", func(w http.ResponseWriter, r *http.Request) {
		var in levels.CreateLevelInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.LevelRepo.Create(r.Context(), in)
		if err != nil {
			status, _ := mapLevelsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Get("/v1/levels", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.LevelRepo.List(r.Context(), queryInt(r, "limit"))
		if err != nil {
			status, _ := mapLevelsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/levels/{levelId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.LevelRepo.Get(r.Context(), chi.URLParam(r, "levelId"))
		if err != nil {
			status, _ := mapLevelsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Patch("/v1/levels/{levelId}", func(w http.ResponseWriter, r *http.Request) {
		var in levels.UpdateLevelInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.LevelRepo.Update(r.Context(), chi.URLParam(r, "levelId"), in)
		if err != nil {
			status, _ := mapLevelsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Delete("/v1/levels/{levelId}", func(w http.ResponseWriter, r *http.Request) {
		if err := d.LevelRepo.Delete(r.Context(), chi.URLParam(r, "levelId")); err != nil {
			status, _ := mapLevelsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"deleted": true})
	})

	// ===== Member routes =====
	r.Post("/v1/members", func(w http.ResponseWriter, r *http.Request) {
		var in members.CreateMemberInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.MemberRepo.Create(r.Context(), in)
		if err != nil {
			status, _ := mapMembersError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Get("/v1/members", func(w http.ResponseWriter, r *http.Request) {
		in := members.ListMembersInput{
			Email:  strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email"))),
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:  queryInt(r, "limit"),
		}
		out, err := d.MemberRepo.List(r.Context(), in)
		if err != nil {
			status, _ := mapMembersError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.MemberRepo.Get(r.Context(), chi.URLParam(r, "memberId"))
		if err != nil {
			status, _ := mapMembersError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Patch("/v1/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
		var in members.UpdateMemberInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.MemberRepo.Update(r.Context(), chi.URLParam(r, "memberId"), in)
		if err != nil {
			status, _ := mapMembersError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Delete("/v1/members/{memberId}", func(w http.ResponseWriter, r *http.Request) {
		if err := d.MemberRepo.Delete(r.Context(), chi.URLParam(r, "memberId")); err != nil {
			status, _ := mapMembersError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"deleted": true})
	})

	// ===== Facility routes =====
	r.Post("/v1/facilities", func(w http.ResponseWriter, r *http.Request) {
		var in facilities.CreateFacilityInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.FacilityRepo.Create(r.Context(), in)
		if err != nil {
			status, _ := mapFacilitiesError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Get("/v1/facilities", func(w http.ResponseWriter, r *http.Request) {
		in := facilities.ListFacilitiesInput{
			Type:   strings.TrimSpace(r.URL.Query().Get("type")),
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:  queryInt(r, "limit"),
		}
		out, err := d.FacilityRepo.List(r.Context(), in)
		if err != nil {
			status, _ := mapFacilitiesError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/facilities/{facilityId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.FacilityRepo.Get(r.Context(), chi.URLParam(r, "facilityId"))
		if err != nil {
			status, _ := mapFacilitiesError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Patch("/v1/facilities/{facilityId}", func(w http.ResponseWriter, r *http.Request) {
		var in facilities.UpdateFacilityInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.FacilityRepo.Update(r.Context(), chi.URLParam(r, "facilityId"), in)
		if err != nil {
			status, _ := mapFacilitiesError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Delete("/v1/facilities/{facilityId}", func(w http.ResponseWriter, r *http.Request) {
		if err := d.FacilityRepo.Delete(r.Context(), chi.URLParam(r, "facilityId")); err != nil {
			status, _ := mapFacilitiesError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"deleted": true})
	})

	// ===== Booking routes =====
	r.Post("/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		var in bookings.CreateBookingInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.BookingSvc.Create(r.Context(), in)
		if err != nil {
			status, _ := mapBookingsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Get("/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		in := bookings.ListBookingsInput{
			MemberID:   strings.TrimSpace(r.URL.Query().Get("memberId")),
			FacilityID: strings.TrimSpace(r.URL.Query().Get("facilityId")),
			Status:     strings.TrimSpace(r.URL.Query().Get("status")),
			Limit:      queryInt(r, "limit"),
		}
		out, err := d.BookingSvc.List(r.Context(), in)
		if err != nil {
			status, _ := mapBookingsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.BookingSvc.Get(r.Context(), chi.URLParam(r, "bookingId"))
		if err != nil {
			status, _ := mapBookingsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	transition := func(fn func(context.Context, string) (*bookings.Booking, error)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			out, err := fn(r.Context(), chi.URLParam(r, "bookingId"))
			if err != nil {
				status, _ := mapBookingsError(err)
				FailErr(w, status, err)
				return
			}
			WriteJSON(w, 200, out)
		}
	}
	r.Post("/v1/bookings/{bookingId}/confirm", transition(d.BookingSvc.Confirm))
	r.Post("/v1/bookings/{bookingId}/cancel", transition(d.BookingSvc.Cancel))
	r.Post("/v1/bookings/{bookingId}/complete", transition(d.BookingSvc.Complete))

	r.Post("/v1/bookings/{bookingId}/payment", func(w http.ResponseWriter, r *http.Request) {
		var in bookings.AttachPaymentInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.BookingSvc.AttachPayment(r.Context(), chi.URLParam(r, "bookingId"), in)
		if err != nil {
			status, _ := mapBookingsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Usage log routes =====
	r.Post("/v1/usage-logs", func(w http.ResponseWriter, r *http.Request) {
		var in usagelogs.CheckInInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.UsageLogRepo.CheckIn(r.Context(), in)
		if err != nil {
			status, _ := mapUsageLogsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Post("/v1/usage-logs/{logId}/checkout", func(w http.ResponseWriter, r *http.Request) {
		var in usagelogs.CheckOutInput
		if r.ContentLength > 0 {
			if err := httpjson.Read(r, &in); err != nil {
				Fail(w, 400, "invalid json")
				return
			}
		}
		out, err := d.UsageLogRepo.CheckOut(r.Context(), chi.URLParam(r, "logId"), in)
		if err != nil {
			status, _ := mapUsageLogsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/usage-logs", func(w http.ResponseWriter, r *http.Request) {
		in := usagelogs.ListUsageLogsInput{
			MemberID:   strings.TrimSpace(r.URL.Query().Get("memberId")),
			FacilityID: strings.TrimSpace(r.URL.Query().Get("facilityId")),
			Limit:      queryInt(r, "limit"),
		}
		if raw := r.URL.Query().Get("since"); raw != "" {
			t, err := utils.ParseTime(raw)
			if err != nil {
				Fail(w, 400, "invalid since timestamp")
				return
			}
			in.CheckInAfter = &t
		}
		out, err := d.UsageLogRepo.List(r.Context(), in)
		if err != nil {
			status, _ := mapUsageLogsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Notification routes =====
	r.Post("/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		var in notifications.CreateNotificationInput
		if err := httpjson.Read(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		out, err := d.NotificationsSvc.Create(r.Context(), in)
		if err != nil {
			status, _ := mapNotificationsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 201, out)
	})

	r.Get("/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		in := notifications.ListNotificationsInput{
			MemberID:   strings.TrimSpace(r.URL.Query().Get("memberId")),
			UnreadOnly: r.URL.Query().Get("unreadOnly") == "true",
			Limit:      queryInt(r, "limit"),
		}
		out, err := d.NotificationsSvc.List(r.Context(), in)
		if err != nil {
			status, _ := mapNotificationsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/v1/notifications/{notificationId}/read", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.NotificationsSvc.SetStatus(r.Context(), chi.URLParam(r, "notificationId"), notifications.StatusRead)
		if err != nil {
			status, _ := mapNotificationsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/v1/notifications/{notificationId}/unread", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.NotificationsSvc.SetStatus(r.Context(), chi.URLParam(r, "notificationId"), notifications.StatusUnread)
		if err != nil {
			status, _ := mapNotificationsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Post("/v1/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		memberID := strings.TrimSpace(r.URL.Query().Get("memberId"))
		count, err := d.NotificationsSvc.MarkAllRead(r.Context(), memberID)
		if err != nil {
			status, _ := mapNotificationsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"marked": count})
	})

	// ===== Report routes =====
	r.Get("/v1/reports/booking-totals", func(w http.ResponseWriter, r *http.Request) {
		total, err := d.ReportsSvc.BookingTotals(r.Context())
		if err != nil {
			status, _ := mapReportsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, map[string]any{"total": total})
	})

	r.Get("/v1/reports/bookings-by-status", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ReportsSvc.BookingsByStatus(r.Context())
		if err != nil {
			status, _ := mapReportsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/reports/revenue-by-method", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ReportsSvc.RevenueByPaymentMethod(r.Context())
		if err != nil {
			status, _ := mapReportsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/reports/member-usage", func(w http.ResponseWriter, r *http.Request) {
		topN := queryInt(r, "topN")
		if topN <= 0 {
			topN = 10
		}
		windowDays := queryInt(r, "windowDays")
		if windowDays <= 0 {
			windowDays = 30
		}
		out, err := d.ReportsSvc.MemberUsageStats(r.Context(), topN, windowDays)
		if err != nil {
			status, _ := mapReportsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/v1/reports/facility-usage", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ReportsSvc.FacilityUsageDistribution(r.Context())
		if err != nil {
			status, _ := mapReportsError(err)
			FailErr(w, status, err)
			return
		}
		WriteJSON(w, 200, out)
	})

	return r
}

// storeTimeout bounds every request context so no store round-trip can
// block past the configured limit.
func storeTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func queryInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(key))
	return v
}

// mapFault maps the shared fault kinds to HTTP statuses; returns 0 when
// err is not a fault.
func mapFault(err error) int {
	switch {
	case fault.IsValidation(err):
		return 400
	case fault.IsReferentialIntegrity(err):
		return 409
	case fault.IsConflict(err):
		return 409
	case fault.IsInvalidTransition(err):
		return 409
	case fault.IsUnavailable(err):
		return 503
	default:
		return 0
	}
}

func mapLevelsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case levels.IsErrNotFound(err):
		return 404, err.Error()
	case levels.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapMembersError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case members.IsErrNotFound(err):
		return 404, err.Error()
	case members.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapFacilitiesError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case facilities.IsErrNotFound(err):
		return 404, err.Error()
	case facilities.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapBookingsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case bookings.IsErrNotFound(err):
		return 404, err.Error()
	case bookings.IsErrBadRequest(err):
		return 400, err.Error()
	case bookings.IsErrForbidden(err):
		return 403, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapUsageLogsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case usagelogs.IsErrNotFound(err):
		return 404, err.Error()
	case usagelogs.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapNotificationsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case notifications.IsErrNotFound(err):
		return 404, err.Error()
	case notifications.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}

func mapReportsError(err error) (int, string) {
	if err == nil {
		return 500, "unknown error"
	}
	if status := mapFault(err); status != 0 {
		return status, err.Error()
	}
	switch {
	case reports.IsErrBadRequest(err):
		return 400, err.Error()
	default:
		return 500, err.Error()
	}
}
