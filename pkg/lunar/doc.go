// Package lunar converts dates between the Gregorian calendar and the Chinese
// lunisolar calendar for lunar years 1891 through 2100.
//
// All functions are pure and safe for concurrent use. Errors wrap one of the
// package's sentinel errors and can be matched with errors.Is.
package lunar
