package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is an ordered list of steps built by a Lua script.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted operation and its arguments.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a Lua script and returns the Scenario it builds.
// An unnamed scenario takes the file's base name.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, []lua.RegistryFunction{{Name: "new", Function: scenarioNew}}, 0)
	state.SetGlobal("Scenario")
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "hero", Function: scenarioHero},
	{Name: "damage", Function: amountStep("damage")},
	{Name: "heal", Function: amountStep("heal")},
	{Name: "set_stamina", Function: amountStep("set_stamina")},
	{Name: "stamina_max", Function: amountStep("stamina_max")},
	{Name: "temporary", Function: amountStep("temporary")},
	{Name: "dying_threshold", Function: amountStep("dying_threshold")},
	{Name: "toggle", Function: scenarioToggle},
	{Name: "use_recovery", Function: bareStep("use_recovery")},
	{Name: "recoveries", Function: amountStep("recoveries")},
	{Name: "restore_recoveries", Function: bareStep("restore_recoveries")},
	{Name: "respite", Function: bareStep("respite")},
	{Name: "heroic", Function: amountStep("heroic")},
	{Name: "award_xp", Function: amountStep("award_xp")},
	{Name: "level_up", Function: bareStep("level_up")},
	{Name: "edge_bane", Function: scenarioEdgeBane},
	{Name: "cycle_edge_bane", Function: bareStep("cycle_edge_bane")},
	{Name: "power_roll", Function: scenarioPowerRoll},
	{Name: "die_roll", Function: scenarioDieRoll},
	{Name: "clear_history", Function: bareStep("clear_history")},
	{Name: "grant_skill", Function: scenarioGrantSkill},
	{Name: "select_skill", Function: skillChoiceStep("select_skill")},
	{Name: "release_skill", Function: skillChoiceStep("release_skill")},
	{Name: "clear_section", Function: scenarioClearSection},
	{Name: "clear_source", Function: scenarioClearSource},
	{Name: "reset_skills", Function: bareStep("reset_skills")},
	{Name: "expect", Function: scenarioExpect},
}

func scenarioHero(state *lua.State) int {
	scenario := checkScenario(state)
	name := lua.CheckString(state, 2)
	class := lua.CheckString(state, 3)
	data := optionalTable(state, 4)
	data["name"] = name
	data["class"] = class
	appendStep(scenario, "hero", data)
	return 0
}

func amountStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		amount := lua.CheckInteger(state, 2)
		appendStep(scenario, kind, map[string]any{"amount": amount})
		return 0
	}
}

func bareStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		appendStep(scenario, kind, nil)
		return 0
	}
}

func scenarioToggle(state *lua.State) int {
	scenario := checkScenario(state)
	condition := lua.CheckString(state, 2)
	appendStep(scenario, "toggle", map[string]any{"condition": condition})
	return 0
}

func scenarioEdgeBane(state *lua.State) int {
	scenario := checkScenario(state)
	value := lua.CheckString(state, 2)
	appendStep(scenario, "edge_bane", map[string]any{"edge_bane": value})
	return 0
}

func scenarioPowerRoll(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "power_roll", optionalTable(state, 2))
	return 0
}

func scenarioDieRoll(state *lua.State) int {
	scenario := checkScenario(state)
	sides := lua.CheckInteger(state, 2)
	data := optionalTable(state, 3)
	data["sides"] = sides
	appendStep(scenario, "die_roll", data)
	return 0
}

func scenarioGrantSkill(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "grant_skill", map[string]any{
		"skill":   lua.CheckString(state, 2),
		"source":  lua.CheckString(state, 3),
		"section": lua.CheckString(state, 4),
	})
	return 0
}

func skillChoiceStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		appendStep(scenario, kind, map[string]any{
			"skill":   lua.CheckString(state, 2),
			"section": lua.CheckString(state, 3),
		})
		return 0
	}
}

func scenarioClearSection(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "clear_section", map[string]any{"section": lua.CheckString(state, 2)})
	return 0
}

func scenarioClearSource(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "clear_source", map[string]any{"source": lua.CheckString(state, 2)})
	return 0
}

func scenarioExpect(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect", tableToMap(state, 2))
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo converts a sequence table to []any and any other table to a map.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
