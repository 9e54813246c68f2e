// Package ports defines the capability contracts between the VLN extension and
// its host: sensors, tasks, episodes, registries and parsers. Host code depends
// on these interfaces; the application layer implements them.
package ports
