package employee

import "fmt"

// BadgeNumber derives the public employee identifier from the numeric
// user id: a fixed prefix plus the id zero-padded to four digits
// (user 7 becomes EMP0007). Ids beyond 9999 widen naturally.
func BadgeNumber(prefix string, userID int64) string {
	return fmt.Sprintf("%s%04d", prefix, userID)
}
