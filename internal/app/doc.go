// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle (load the
// scene, build the evaluation graph, report, publish, watch), decoupled from
// any specific entrypoint like a CLI or server.
package app
