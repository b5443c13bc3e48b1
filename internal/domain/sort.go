package domain

// Comparators for ordering session listings. All three are pure; callers
// sort with sort.SliceStable so that ties keep their original order.

// LessByTitle orders sessions lexicographically by title.
func LessByTitle(a, b *Session) bool {
	return a.Title() < b.Title()
}

// LessByStart orders sessions chronologically by scheduled start.
func LessByStart(a, b *Session) bool {
	return a.StartsAt().Before(b.StartsAt())
}

// LessBySeatsDesc orders sessions by available seats, most first.
func LessBySeatsDesc(a, b *Session) bool {
	return a.AvailableSeats() > b.AvailableSeats()
}
