package cache

import "time"

// Mode is the freshness rule a policy applies.
type Mode uint8

const (
	// ModeRollingTTL considers an entry fresh while now-fetchedAt < TTL.
	ModeRollingTTL Mode = iota
	// ModeCalendarDay considers an entry fresh while fetchedAt and now fall
	// on the same local calendar date. An entry written at 23:59 goes stale
	// one minute later at midnight, regardless of elapsed time.
	ModeCalendarDay
	// ModeAlways considers every entry stale, forcing a refetch each request.
	ModeAlways
)

// Policy decides whether a cached entry is still fresh.
type Policy struct {
	Mode Mode
	// TTL applies only to ModeRollingTTL.
	TTL time.Duration
}

// RollingTTL returns a policy that expires entries after the given duration.
func RollingTTL(ttl time.Duration) Policy {
	return Policy{Mode: ModeRollingTTL, TTL: ttl}
}

// CalendarDay returns a policy that expires entries at local midnight.
func CalendarDay() Policy {
	return Policy{Mode: ModeCalendarDay}
}

// AlwaysRefetch returns a policy under which nothing is ever fresh.
func AlwaysRefetch() Policy {
	return Policy{Mode: ModeAlways}
}

// Fresh reports whether an entry fetched at fetchedAt is still fresh at now.
func (p Policy) Fresh(fetchedAt, now time.Time) bool {
	switch p.Mode {
	case ModeRollingTTL:
		age := now.Sub(fetchedAt)
		return age >= 0 && age < p.TTL
	case ModeCalendarDay:
		fy, fm, fd := fetchedAt.Local().Date()
		ny, nm, nd := now.Local().Date()
		return fy == ny && fm == nm && fd == nd
	case ModeAlways:
		return false
	default:
		return false
	}
}

// PolicySet binds each content kind to its freshness policy.
type PolicySet map[Kind]Policy

// Fresh reports whether the entry is fresh under the kind's policy.
// A kind without a bound policy is always stale.
func (ps PolicySet) Fresh(kind Kind, fetchedAt, now time.Time) bool {
	p, ok := ps[kind]
	if !ok {
		return false
	}
	return p.Fresh(fetchedAt, now)
}
