// Package permission decides whether the local participant may pin media in
// a channel.
package permission

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/phanxgames/folio/menu"
)

// Policy is the pin policy of one channel. Role is the local participant's
// role in the channel; pinning is allowed when it is one of PinRoles.
type Policy struct {
	PinRoles []string `yaml:"pin_roles"`
	Role     string   `yaml:"role"`
}

// Allows reports whether the policy lets its role pin.
func (p Policy) Allows() bool {
	return p.Role != "" && slices.Contains(p.PinRoles, p.Role)
}

// Oracle answers pin permission queries. It implements
// menu.PermissionOracle. Channels without a policy deny. Not safe for
// concurrent use.
type Oracle struct {
	policies map[string]Policy
	locked   map[menu.EntityID]bool
	log      zerolog.Logger
}

// NewOracle returns an oracle with the given channel policies.
func NewOracle(policies map[string]Policy) *Oracle {
	o := &Oracle{
		policies: make(map[string]Policy, len(policies)),
		locked:   make(map[menu.EntityID]bool),
		log:      zerolog.Nop(),
	}
	for ch, p := range policies {
		o.policies[ch] = p
	}
	return o
}

// SetLogger sets the logger used for policy changes.
func (o *Oracle) SetLogger(l zerolog.Logger) {
	o.log = l
}

// SetPolicy replaces the policy of channel.
func (o *Oracle) SetPolicy(channel string, p Policy) {
	o.policies[channel] = p
	o.log.Debug().Str("channel", channel).Str("role", p.Role).Bool("allows", p.Allows()).Msg("pin policy set")
}

// SetRole changes the local participant's role in channel.
func (o *Oracle) SetRole(channel, role string) {
	p := o.policies[channel]
	p.Role = role
	o.SetPolicy(channel, p)
}

// Lock forbids pinning id regardless of role.
func (o *Oracle) Lock(id menu.EntityID) {
	o.locked[id] = true
}

// Unlock reverts Lock.
func (o *Oracle) Unlock(id menu.EntityID) {
	delete(o.locked, id)
}

// CanPin reports whether the media root id may be pinned in channel.
func (o *Oracle) CanPin(channel string, id menu.EntityID) bool {
	if id == menu.None || o.locked[id] {
		return false
	}
	p, ok := o.policies[channel]
	return ok && p.Allows()
}
