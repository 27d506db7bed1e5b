// Package timezone anchors booking days and slot clocks to the configured
// APP_TIMEZONE (an IANA name such as "Asia/Jakarta"). Availability rows and
// booking dates are calendar days in this location, and time slots are HH:MM
// wall clocks on those days. Unknown or empty names fall back to UTC.
package timezone
