// Package service assembles the hero MCP server and serves it over a
// transport.
package service
