// Package latency injects artificial round-trip delays in front of store
// operations so clients can exercise their loading states.
package latency

import (
	"context"
	"math/rand"
	"time"
)

// Op names a repository operation for delay lookup.
type Op string

const (
	OpSessionGet    Op = "auth.me"
	OpLogin         Op = "auth.login"
	OpSignup        Op = "auth.signup"
	OpLogout        Op = "auth.logout"
	OpDeleteAccount Op = "auth.deleteAccount"

	OpProductsList  Op = "products.getAll"
	OpProductGet    Op = "products.get"
	OpProductCreate Op = "products.create"
	OpProductUpdate Op = "products.update"
	OpProductDelete Op = "products.delete"
	OpOrdersList    Op = "orders.getAll"
	OpUserOrders    Op = "orders.getUserOrders"
	OpOrderCreate   Op = "orders.create"
	OpOrderStats    Op = "orders.stats"
	OpUsersList     Op = "users.getAll"
	OpUserDelete    Op = "users.delete"
	OpBankGet       Op = "settings.getBankDetails"
	OpBankSave      Op = "settings.saveBankDetails"
	OpResetDatabase Op = "settings.resetDatabase"
)

// Simulator delays an operation before it touches the store.
type Simulator interface {
	Wait(ctx context.Context, op Op) error
}

// Profile describes how long each operation is held back.
type Profile struct {
	// Min and Max bound the uniform random delay of operations not in Fixed.
	Min, Max time.Duration
	// Fixed overrides the random delay for specific operations.
	Fixed map[Op]time.Duration
	// Scale multiplies every delay; 0 disables them.
	Scale float64
}

// DefaultProfile models a network round trip of 300-800ms, a 1.5s payment
// step on checkout and a 1s database reset.
func DefaultProfile() Profile {
	return Profile{
		Min: 300 * time.Millisecond,
		Max: 800 * time.Millisecond,
		Fixed: map[Op]time.Duration{
			OpOrderCreate:   1500 * time.Millisecond,
			OpResetDatabase: 1000 * time.Millisecond,
		},
		Scale: 1,
	}
}

// Random is the Simulator used outside tests.
type Random struct {
	profile Profile
}

// New returns a Simulator for p. A zero Scale yields a Simulator that never
// waits.
func New(p Profile) Simulator {
	if p.Scale <= 0 {
		return None
	}
	return &Random{profile: p}
}

// Delay returns how long op will be held back.
func (r *Random) Delay(op Op) time.Duration {
	d, ok := r.profile.Fixed[op]
	if !ok {
		d = r.profile.Min
		if spread := r.profile.Max - r.profile.Min; spread > 0 {
			d += time.Duration(rand.Int63n(int64(spread)))
		}
	}
	return time.Duration(float64(d) * r.profile.Scale)
}

// Wait sleeps for Delay(op). Cancelling ctx ends the wait early with the
// context's error; the caller must then not run the operation.
func (r *Random) Wait(ctx context.Context, op Op) error {
	d := r.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type none struct{}

func (none) Wait(ctx context.Context, _ Op) error { return ctx.Err() }

// None never waits. Tests use it.
var None Simulator = none{}
