// Package zones classifies joint angles against per-discipline target
// ranges.
//
// The range table is static data keyed by (BikeType, Joint). Each entry has a
// physiological envelope, a broader cycling ("optimal") range, and optional
// pedal-down (extension) and pedal-up (flexion) bands. Classification checks
// them in fixed precedence:
//
//	outside physiological → extreme
//	pedal-down → pedal-up → cycling-range → physiological
//
// A missing table entry is reported as ZoneUnknown together with an error
// wrapping ErrMissingRangeConfig; it never falls back to a default zone.
package zones
