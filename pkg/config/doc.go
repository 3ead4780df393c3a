// Package config centralizes runtime configuration for the workflow runner.
//
// Config groups execution limits (wall-clock timeout, iteration guards),
// HTTP behavior (timeout, retry count), worker pool sizing, and the VFS/proxy
// endpoints the engine talks to. Default, Development, and Testing
// constructors return ready-to-use configurations; Validate reports invalid
// field combinations before a run starts.
package config
