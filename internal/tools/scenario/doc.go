// Package scenario loads Lua scenario scripts that drive a hero session and
// runs them with optional assertions.
//
// A script builds a Scenario and returns it:
//
//	local scene = Scenario.new("damage")
//	scene:hero("Vex", "censor")
//	scene:damage(15)
//	scene:expect({stamina = 6, winded = true})
//	return scene
package scenario
