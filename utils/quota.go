package utils

import "time"

// OTPWindow is the rolling period bounding OTP requests per user.
const OTPWindow = 24 * time.Hour

// EffectiveOTPCount applies the lazy window reset: if the most recent OTP
// request is more than 24 hours old (or there has never been one), the
// counter starts over at zero. Pure function; the forgot-password handler
// persists the result.
func EffectiveOTPCount(now time.Time, lastRequest *time.Time, count int) int {
	if lastRequest == nil || now.Sub(*lastRequest) > OTPWindow {
		return 0
	}
	return count
}
