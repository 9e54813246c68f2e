// Package entities provides the core records exchanged between the VLN extension
// and its host: episodes, goals, instructions, observation spaces and observation
// bundles. These types carry no behaviour beyond small accessors; validation lives
// in the application layer.
package entities
