// Package environment carries the deployment stage through request contexts
// so handlers and log records can tell development from production.
package environment
