// Package domain defines the MCP tool schemas and handlers that expose a hero
// session: hero lifecycle, resources, progression, rolls and skills.
package domain
