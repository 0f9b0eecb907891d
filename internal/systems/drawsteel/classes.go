package drawsteel

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/herosheet/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// Class identifies one of the hero classes.
type Class string

const (
	ClassCensor       Class = "censor"
	ClassConduit      Class = "conduit"
	ClassElementalist Class = "elementalist"
	ClassFury         Class = "fury"
	ClassNull         Class = "null"
	ClassShadow       Class = "shadow"
	ClassSummoner     Class = "summoner"
	ClassTactician    Class = "tactician"
	ClassTalent       Class = "talent"
	ClassTroubadour   Class = "troubadour"
)

// classCount is the number of classes the table must define.
const classCount = 10

// Characteristic is the hero characteristic a heroic resource scales with.
type Characteristic string

const (
	CharacteristicMight     Characteristic = "might"
	CharacteristicAgility   Characteristic = "agility"
	CharacteristicReason    Characteristic = "reason"
	CharacteristicIntuition Characteristic = "intuition"
	CharacteristicPresence  Characteristic = "presence"
)

// ClassResourceConfig describes a class's heroic resource and the health
// coefficients used by ClassFormulas.
type ClassResourceConfig struct {
	Class           Class
	Name            string
	Abbreviation    string
	ColorToken      string
	MinValue        int
	Characteristic  Characteristic
	StartingStamina int
	StaminaPerLevel int
	Recoveries      int
}

type classFile struct {
	Classes []classEntry `yaml:"classes"`
}

type classEntry struct {
	Class    string `yaml:"class"`
	Resource struct {
		Name           string `yaml:"name"`
		Abbreviation   string `yaml:"abbreviation"`
		ColorToken     string `yaml:"color_token"`
		MinValue       int    `yaml:"min_value"`
		Characteristic string `yaml:"characteristic"`
	} `yaml:"resource"`
	StartingStamina int `yaml:"starting_stamina"`
	StaminaPerLevel int `yaml:"stamina_per_level"`
	Recoveries      int `yaml:"recoveries"`
}

//go:embed classes.yaml
var classesYAML []byte

var classTable = mustLoadClasses(classesYAML)

// LoadClasses parses and validates a class table.
func LoadClasses(data []byte) (map[Class]ClassResourceConfig, error) {
	var file classFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse class table: %w", err)
	}

	table := make(map[Class]ClassResourceConfig, len(file.Classes))
	for _, entry := range file.Classes {
		class := Class(strings.TrimSpace(entry.Class))
		if class == "" {
			return nil, fmt.Errorf("class table: entry without class")
		}
		if _, exists := table[class]; exists {
			return nil, fmt.Errorf("class table: duplicate class %q", class)
		}
		if entry.Resource.MinValue > 0 {
			return nil, fmt.Errorf("class table: %s min value %d is positive", class, entry.Resource.MinValue)
		}
		if entry.StartingStamina < 1 || entry.StaminaPerLevel < 0 || entry.Recoveries < 0 {
			return nil, fmt.Errorf("class table: %s has invalid health coefficients", class)
		}
		characteristic := Characteristic(entry.Resource.Characteristic)
		switch characteristic {
		case CharacteristicMight, CharacteristicAgility, CharacteristicReason, CharacteristicIntuition, CharacteristicPresence:
		default:
			return nil, fmt.Errorf("class table: %s has unknown characteristic %q", class, entry.Resource.Characteristic)
		}
		table[class] = ClassResourceConfig{
			Class:           class,
			Name:            entry.Resource.Name,
			Abbreviation:    entry.Resource.Abbreviation,
			ColorToken:      entry.Resource.ColorToken,
			MinValue:        entry.Resource.MinValue,
			Characteristic:  characteristic,
			StartingStamina: entry.StartingStamina,
			StaminaPerLevel: entry.StaminaPerLevel,
			Recoveries:      entry.Recoveries,
		}
	}
	if len(table) != classCount {
		return nil, fmt.Errorf("class table: expected %d classes, got %d", classCount, len(table))
	}
	return table, nil
}

func mustLoadClasses(data []byte) map[Class]ClassResourceConfig {
	table, err := LoadClasses(data)
	if err != nil {
		panic(err)
	}
	return table
}

// ClassConfig returns the resource config for class.
func ClassConfig(class Class) (ClassResourceConfig, bool) {
	cfg, ok := classTable[class]
	return cfg, ok
}

// MustClassConfig returns the resource config for class and panics when the
// class is not in the table.
func MustClassConfig(class Class) ClassResourceConfig {
	cfg, ok := classTable[class]
	if !ok {
		panic(fmt.Sprintf("drawsteel: unknown class %q", class))
	}
	return cfg
}

// Classes returns every class config ordered by class name.
func Classes() []ClassResourceConfig {
	out := make([]ClassResourceConfig, 0, len(classTable))
	for _, cfg := range classTable {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// ParseClass resolves a case-insensitive class name.
func ParseClass(value string) (Class, error) {
	class := Class(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := classTable[class]; !ok {
		return "", apperrors.WithMetadata(
			apperrors.CodeHeroUnknownClass,
			fmt.Sprintf("unknown class %q", value),
			map[string]string{"Class": value},
		)
	}
	return class, nil
}
