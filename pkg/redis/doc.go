// Package redis provides a small connection bootstrap for go-redis:
// environment-driven Config, Connect with retry and a Healthcheck closure.
// The billing catalog uses it to back its plan-listing cache.
package redis
