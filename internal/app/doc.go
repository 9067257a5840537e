// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the ripple lifecycle (discover, plan, run),
// decoupled from any specific entrypoint like a CLI.
package app
