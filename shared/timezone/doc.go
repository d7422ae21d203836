// Package timezone keeps every timestamp the service produces in one configured location.
//
// Booking days and the turnover arithmetic on check-in and check-out times are computed
// with these helpers so that "today" and "tomorrow" mean the same thing to the HTTP
// layer, the reservation engine and the scheduled status sync.
//
//	now := timezone.Now()
//	day := timezone.StartOfDay(now)
//	t, err := timezone.Parse(time.DateOnly, "2025-03-01")
//
// The location is read from APP_TIMEZONE when the package is imported and must be an
// IANA name such as "Asia/Ho_Chi_Minh" or "UTC".
package timezone
