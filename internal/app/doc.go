// Package app wires configuration, logging and the selected storage
// backends into a ready copilot.Service and its HTTP handler.
package app
