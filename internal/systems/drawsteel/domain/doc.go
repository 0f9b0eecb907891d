// Package domain contains the Draw Steel roll mechanics.
//
// This package provides:
//
//   - Edge and bane states, their cycle and their composition from counts
//   - Power roll resolution into tiers
//   - A Resolver that rolls dice from an injected source and keeps a bounded,
//     newest-first roll history
//
// Dice come from the generic primitives in internal/core/dice.
package domain
