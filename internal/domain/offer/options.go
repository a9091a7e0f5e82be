// Package offer renders personalized offer letters.
package offer

import "strings"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSignature sets the team name printed under "Warm regards,".
func WithSignature(signature string) Option {
	return func(r *Renderer) {
		if s := strings.TrimSpace(signature); s != "" {
			r.signature = s
		}
	}
}
