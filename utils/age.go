package utils

import "time"

const daysPerYear = 365.25

// CalculateAge derives whole years from a date of birth using the
// 365.25-day year. Derived fresh on every use; age is never stored.
func CalculateAge(birthday time.Time) int {
	return AgeAt(birthday, time.Now())
}

func AgeAt(birthday, now time.Time) int {
	if birthday.IsZero() || birthday.After(now) {
		return 0
	}
	days := now.Sub(birthday).Hours() / 24
	return int(days / daysPerYear)
}
